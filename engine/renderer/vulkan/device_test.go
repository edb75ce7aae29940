package vulkan

import (
	"os"
	"runtime"
	"testing"

	"github.com/spaghettifunk/animageo/engine/renderer"
	"github.com/spaghettifunk/animageo/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Opt in with ANIMAGEO_VULKAN=1 on a host with a Vulkan driver.
func newTestDevice(t *testing.T) *VulkanContext {
	t.Helper()
	if os.Getenv("ANIMAGEO_VULKAN") != "1" {
		t.Skip("ANIMAGEO_VULKAN is not set")
	}
	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)

	if err := InitLoader(); err != nil {
		t.Skipf("vulkan loader unavailable: %s", err)
	}
	context, err := NewDevice("animageo-test")
	if err != nil {
		t.Skipf("no usable vulkan device: %s", err)
	}
	t.Cleanup(context.Destroy)
	return context
}

func TestBufferContextUpload(t *testing.T) {
	bc := NewBufferContext(newTestDevice(t))
	defer bc.Destroy()

	handle, err := bc.CreateBuffer()
	require.NoError(t, err)
	assert.NotEqual(t, renderer.InvalidBuffer, handle)

	_, ok := bc.Buffer(handle)
	assert.False(t, ok)

	bc.BindBuffer(metadata.BufferTargetVertex, handle)
	require.NoError(t, bc.BufferData(metadata.BufferTargetVertex, renderer.Float32Bytes([]float32{0, 1, 2}), metadata.UsageStatic))
	_, ok = bc.Buffer(handle)
	assert.True(t, ok)

	require.NoError(t, bc.BufferData(metadata.BufferTargetVertex, nil, metadata.UsageStatic))
	_, ok = bc.Buffer(handle)
	assert.False(t, ok)

	bc.DeleteBuffer(handle)
	assert.Error(t, bc.BufferData(metadata.BufferTargetVertex, []byte{1}, metadata.UsageStatic))
}

func TestVulkanSafeString(t *testing.T) {
	assert.Equal(t, "\x00", VulkanSafeString(""))
	assert.Equal(t, "abc\x00", VulkanSafeString("abc"))
	assert.Equal(t, "abc\x00", VulkanSafeString("abc\x00"))
	assert.Equal(t, []string{"a\x00", "b\x00"}, VulkanSafeStrings([]string{"a", "b\x00"}))
}
