package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/exec"

	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
	"github.com/NVIDIA/hostid/pkg/hostid"
	"github.com/NVIDIA/hostid/pkg/probe"
	"github.com/NVIDIA/hostid/pkg/probe/probetest"
	"github.com/NVIDIA/hostid/pkg/server"
)

type stubDetector struct{}

func (stubDetector) Detect(context.Context) (*hostid.HostIdentity, error) {
	return nil, hostid.ErrNameDetection
}

type stubRelease struct{}

func (stubRelease) Read(context.Context) (map[string]string, error) {
	return map[string]string{"ID": "ubuntu"}, nil
}

func identitySteps(arch string) []probetest.Step {
	return []probetest.Step{
		probetest.OK("Ubuntu"),
		probetest.OK("22.04"),
		probetest.OK(arch),
		probetest.OK("Ubuntu"),
		probetest.OK("alu"),
	}
}

func newHandlerWith(t *testing.T, fake *probetest.Exec, timeout time.Duration) *Handler {
	t.Helper()
	tables, err := hostid.NewReferenceTables([]string{"x86_64", "aarch64"}, []string{"Ubuntu"})
	require.NoError(t, err)

	det := hostid.NewDetector(tables,
		hostid.WithPlatform(hostid.PlatformLinux),
		hostid.WithRunner(probe.NewRunner(probe.WithExecutor(fake))),
	)
	return NewHandler(det, stubRelease{}, tables, timeout)
}

func newTestHandler(t *testing.T, arch string) *Handler {
	t.Helper()
	return newHandlerWith(t, probetest.New(identitySteps(arch)...), 0)
}

func TestConstants(t *testing.T) {
	assert.Equal(t, "hostidd", name)
	assert.Equal(t, "dev", versionDefault)
	assert.NotEmpty(t, version)
	assert.NotEmpty(t, commit)
	assert.NotEmpty(t, date)
}

func TestRoutes(t *testing.T) {
	routes := newTestHandler(t, "x86_64").Routes()
	for _, path := range []string{"/v1/identity", "/v1/snapshot", "/v1/references"} {
		h, ok := routes[path]
		assert.True(t, ok, "expected route %s", path)
		assert.NotNil(t, h)
	}
}

func TestHandleIdentity(t *testing.T) {
	h := newTestHandler(t, "x86_64")

	req := httptest.NewRequest(http.MethodGet, "/v1/identity", nil)
	w := httptest.NewRecorder()
	h.HandleIdentity(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var rec hostid.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "x86_64", rec.Architecture)
	assert.Equal(t, "alu", rec.Hostname)
	assert.True(t, rec.Validated)
}

func TestHandleIdentity_IntegrityFailure(t *testing.T) {
	h := newTestHandler(t, "i386")

	req := httptest.NewRequest(http.MethodGet, "/v1/identity", nil)
	w := httptest.NewRecorder()
	h.HandleIdentity(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(cnserrors.ErrCodeDataIntegrity), resp.Code)
	assert.Contains(t, resp.Message, `"i386"`)
	assert.False(t, resp.Retryable)
}

func TestHandleIdentity_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, "x86_64")

	req := httptest.NewRequest(http.MethodPost, "/v1/identity", nil)
	w := httptest.NewRecorder()
	h.HandleIdentity(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodGet, w.Header().Get("Allow"))
}

func TestHandleIdentity_Timeout(t *testing.T) {
	first := probetest.OK("Ubuntu")
	first.Delay = 200 * time.Millisecond
	fake := probetest.New(first)
	h := newHandlerWith(t, fake, 50*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/v1/identity", nil)
	w := httptest.NewRecorder()
	h.HandleIdentity(w, req)

	require.Equal(t, http.StatusGatewayTimeout, w.Code)

	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(cnserrors.ErrCodeTimeout), resp.Code)
	assert.True(t, resp.Retryable)
	assert.Equal(t, string(cnserrors.ErrCodeVersionDetection), resp.Details["failedCode"])
	assert.Contains(t, resp.Message, "did not finish in time")
	assert.NotContains(t, resp.Message, "failed to start")
	assert.Equal(t, 1, fake.Calls())
}

func TestHandleSnapshot(t *testing.T) {
	steps := append(identitySteps("aarch64"), probetest.OK("6.8.0-45-generic"))
	h := newHandlerWith(t, probetest.New(steps...), 0)

	req := httptest.NewRequest(http.MethodGet, "/v1/snapshot", nil)
	w := httptest.NewRecorder()
	h.HandleSnapshot(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "HostSnapshot", doc["kind"])

	system, ok := doc["system"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "aarch64", system["architecture"])
	assert.Equal(t, "6.8.0-45-generic", system["kernel"])

	release, ok := doc["release"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ubuntu", release["ID"])
}

func TestHandleSnapshot_DetectionFailure(t *testing.T) {
	h := newTestHandler(t, "i386")

	req := httptest.NewRequest(http.MethodGet, "/v1/snapshot", nil)
	w := httptest.NewRecorder()
	h.HandleSnapshot(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandleReferences(t *testing.T) {
	h := newTestHandler(t, "x86_64")

	req := httptest.NewRequest(http.MethodGet, "/v1/references", nil)
	w := httptest.NewRecorder()
	h.HandleReferences(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var rf hostid.ReferenceFile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rf))
	assert.Equal(t, []string{"aarch64", "x86_64"}, rf.Architectures)
	assert.Equal(t, []string{"Ubuntu"}, rf.Distributions)
}

func TestReferenceTables(t *testing.T) {
	tables, err := referenceTables("")
	require.NoError(t, err)
	assert.Same(t, hostid.DefaultReferenceTables(), tables)

	_, err = referenceTables("/nonexistent/refs.yaml")
	require.Error(t, err)
	assert.Equal(t, cnserrors.ErrCodeInvalidRequest, cnserrors.CodeOf(err))
	assert.Contains(t, err.Error(), EnvReferenceFile)
}

func TestHandler_Ready(t *testing.T) {
	t.Run("commands found", func(t *testing.T) {
		fake := probetest.New()
		assert.NoError(t, newHandlerWith(t, fake, 0).Ready(context.Background()))
		assert.Zero(t, fake.Calls())
	})

	t.Run("lsb_release missing", func(t *testing.T) {
		fake := probetest.New()
		fake.LookPathFunc = func(cmd string) (string, error) {
			if cmd == "lsb_release" {
				return "", exec.ErrExecutableNotFound
			}
			return "/usr/bin/" + cmd, nil
		}

		err := newHandlerWith(t, fake, 0).Ready(context.Background())
		require.Error(t, err)
		assert.Equal(t, cnserrors.ErrCodeNameDetection, cnserrors.CodeOf(err))
		assert.Zero(t, fake.Calls())
	})

	t.Run("detector without preflight", func(t *testing.T) {
		h := NewHandler(stubDetector{}, stubRelease{}, nil, 0)
		assert.NoError(t, h.Ready(context.Background()))
		assert.Nil(t, h.kernel)
	})
}
