package hostid

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
)

func TestCurrentPlatform(t *testing.T) {
	assert.Equal(t, Platform(runtime.GOOS), CurrentPlatform())
}

func TestGates(t *testing.T) {
	linux := OnlyFamily(PlatformLinux)
	assert.True(t, linux("linux"))
	assert.False(t, linux("darwin"))
	assert.False(t, linux(""))

	unix := OnlyFamily("linux", "freebsd")
	assert.True(t, unix("freebsd"))
	assert.False(t, unix("windows"))

	for _, p := range []Platform{"linux", "darwin", "windows", ""} {
		assert.True(t, AnyPlatform(p))
	}
}

func TestDefaultProbes(t *testing.T) {
	probes := DefaultProbes()
	if assert.Len(t, probes, len(Fields)) {
		for i, p := range probes {
			assert.Equal(t, Fields[i], p.Field, "probe order")
		}
	}

	tests := []struct {
		platform Platform
		allowed  map[Field]bool
	}{
		{
			platform: "linux",
			allowed: map[Field]bool{
				FieldName: true, FieldVersion: true, FieldArchitecture: true,
				FieldDistribution: true, FieldHostname: true,
			},
		},
		{
			platform: "darwin",
			allowed: map[Field]bool{
				FieldName: false, FieldVersion: false, FieldArchitecture: true,
				FieldDistribution: false, FieldHostname: false,
			},
		},
		{
			platform: "windows",
			allowed: map[Field]bool{
				FieldName: false, FieldVersion: false, FieldArchitecture: true,
				FieldDistribution: false, FieldHostname: false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			for _, p := range probes {
				assert.Equal(t, tt.allowed[p.Field], p.Allowed(tt.platform), "field %s", p.Field)
			}
		})
	}
}

func TestProbe_NilGateAllowed(t *testing.T) {
	assert.True(t, Probe{Field: FieldHostname}.Allowed("plan9"))
}

func TestField_ErrorCode(t *testing.T) {
	want := map[Field]cnserrors.ErrorCode{
		FieldName:         cnserrors.ErrCodeNameDetection,
		FieldVersion:      cnserrors.ErrCodeVersionDetection,
		FieldArchitecture: cnserrors.ErrCodeArchDetection,
		FieldDistribution: cnserrors.ErrCodeDistroDetection,
		FieldHostname:     cnserrors.ErrCodeHostnameDetection,
	}
	for f, code := range want {
		assert.Equal(t, code, f.ErrorCode(), string(f))
	}
	assert.Equal(t, cnserrors.ErrCodeInternal, Field("kernel").ErrorCode())
}
