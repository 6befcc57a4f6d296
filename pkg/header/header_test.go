package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_IsValid(t *testing.T) {
	assert.True(t, KindHostSnapshot.IsValid())
	assert.True(t, KindHostIdentity.IsValid())
	assert.False(t, Kind("Recipe").IsValid())
	assert.False(t, Kind("").IsValid())
}

func TestNew(t *testing.T) {
	h := New(
		WithKind(KindHostIdentity),
		WithAPIVersion("hostid.nvidia.com/v1alpha1"),
		WithMetadata("source", "detect"),
	)
	assert.Equal(t, KindHostIdentity, h.Kind)
	assert.Equal(t, "hostid.nvidia.com/v1alpha1", h.APIVersion)
	assert.Equal(t, "detect", h.Metadata["source"])
}

func TestWithMetadata_NilMap(t *testing.T) {
	var h Header
	WithMetadata("k", "v")(&h)
	assert.Equal(t, map[string]string{"k": "v"}, h.Metadata)
}

func TestInit(t *testing.T) {
	h := New(WithMetadata("stale", "x"))
	h.Init(KindHostSnapshot, "v1", "v1.2.3")

	assert.Equal(t, KindHostSnapshot, h.Kind)
	assert.Equal(t, "v1", h.APIVersion)
	assert.Equal(t, "v1.2.3", h.Metadata[KeyVersion])
	assert.NotContains(t, h.Metadata, "stale")

	_, err := time.Parse(time.RFC3339, h.Metadata[KeyTimestamp])
	require.NoError(t, err)
}

func TestInit_EmptyVersion(t *testing.T) {
	var h Header
	h.Init(KindHostSnapshot, "v1", "")
	assert.NotContains(t, h.Metadata, KeyVersion)
}
