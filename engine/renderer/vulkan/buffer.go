package vulkan

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/animageo/engine/core"
	"github.com/spaghettifunk/animageo/engine/renderer"
	"github.com/spaghettifunk/animageo/engine/renderer/metadata"
)

/**
 * @brief A buffer handle's Vulkan objects. Handles are created empty; the
 * VkBuffer and its memory come into existence on the first upload and are
 * re-created whenever the uploaded size changes.
 */
type vulkanBuffer struct {
	Handle    vk.Buffer
	Memory    vk.DeviceMemory
	Size      uint64
	Usage     metadata.UsageHint
	allocated bool
}

/**
 * @brief A renderer.Context backed by host-visible, host-coherent Vulkan
 * buffers. Every buffer is created usable as both vertex and index source.
 */
type BufferContext struct {
	context *VulkanContext
	id      core.ContextID
	next    renderer.BufferHandle
	buffers map[renderer.BufferHandle]*vulkanBuffer
	bound   map[metadata.BufferTarget]renderer.BufferHandle
}

var _ renderer.Context = &BufferContext{}

func NewBufferContext(context *VulkanContext) *BufferContext {
	return &BufferContext{
		context: context,
		id:      core.NewContextID(),
		buffers: make(map[renderer.BufferHandle]*vulkanBuffer),
		bound:   make(map[metadata.BufferTarget]renderer.BufferHandle),
	}
}

func (bc *BufferContext) ID() core.ContextID {
	return bc.id
}

func (bc *BufferContext) CreateBuffer() (renderer.BufferHandle, error) {
	bc.next++
	bc.buffers[bc.next] = &vulkanBuffer{}
	return bc.next, nil
}

func (bc *BufferContext) BindBuffer(target metadata.BufferTarget, handle renderer.BufferHandle) {
	bc.bound[target] = handle
}

func (bc *BufferContext) BufferData(target metadata.BufferTarget, data []byte, usage metadata.UsageHint) error {
	handle := bc.bound[target]
	buffer, ok := bc.buffers[handle]
	if !ok {
		return fmt.Errorf("no buffer bound to %s target", target)
	}
	buffer.Usage = usage

	size := uint64(len(data))
	if size == 0 {
		bc.release(buffer)
		return nil
	}
	if !buffer.allocated || buffer.Size != size {
		bc.release(buffer)
		if err := bc.allocate(buffer, size); err != nil {
			return err
		}
	}

	var pData unsafe.Pointer
	if res := vk.MapMemory(bc.context.LogicalDevice, buffer.Memory, 0, vk.DeviceSize(size), 0, &pData); res != vk.Success {
		err := fmt.Errorf("failed to map buffer memory: %s", VulkanResultString(res))
		core.LogError("%s", err)
		return err
	}
	vk.Memcopy(pData, data)
	vk.UnmapMemory(bc.context.LogicalDevice, buffer.Memory)
	return nil
}

func (bc *BufferContext) DeleteBuffer(handle renderer.BufferHandle) {
	buffer, ok := bc.buffers[handle]
	if !ok {
		return
	}
	bc.release(buffer)
	delete(bc.buffers, handle)
	for target, h := range bc.bound {
		if h == handle {
			delete(bc.bound, target)
		}
	}
}

// Buffer returns the VkBuffer behind handle for binding in command buffers.
func (bc *BufferContext) Buffer(handle renderer.BufferHandle) (vk.Buffer, bool) {
	buffer, ok := bc.buffers[handle]
	if !ok || !buffer.allocated {
		var none vk.Buffer
		return none, false
	}
	return buffer.Handle, true
}

// Destroy releases every buffer still alive in the context.
func (bc *BufferContext) Destroy() {
	for handle := range bc.buffers {
		bc.DeleteBuffer(handle)
	}
}

func (bc *BufferContext) allocate(buffer *vulkanBuffer, size uint64) error {
	device := bc.context.LogicalDevice

	bufferInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(size),
		Usage:       vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit | vk.BufferUsageIndexBufferBit | vk.BufferUsageTransferDstBit),
		SharingMode: vk.SharingModeExclusive,
	}

	var handle vk.Buffer
	if res := vk.CreateBuffer(device, &bufferInfo, bc.context.Allocator, &handle); res != vk.Success {
		err := fmt.Errorf("failed to create buffer: %s", VulkanResultString(res))
		core.LogError("%s", err)
		return err
	}

	var requirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(device, handle, &requirements)
	requirements.Deref()

	memoryFlags := uint32(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	memoryIndex := bc.context.FindMemoryIndex(requirements.MemoryTypeBits, memoryFlags)
	if memoryIndex == -1 {
		vk.DestroyBuffer(device, handle, bc.context.Allocator)
		return fmt.Errorf("unable to create buffer because the required memory type index was not found")
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: uint32(memoryIndex),
	}

	var memory vk.DeviceMemory
	if res := vk.AllocateMemory(device, &allocateInfo, bc.context.Allocator, &memory); res != vk.Success {
		vk.DestroyBuffer(device, handle, bc.context.Allocator)
		err := fmt.Errorf("unable to allocate memory for buffer: %s", VulkanResultString(res))
		core.LogError("%s", err)
		return err
	}

	if res := vk.BindBufferMemory(device, handle, memory, 0); res != vk.Success {
		vk.FreeMemory(device, memory, bc.context.Allocator)
		vk.DestroyBuffer(device, handle, bc.context.Allocator)
		err := fmt.Errorf("failed to bind buffer memory: %s", VulkanResultString(res))
		core.LogError("%s", err)
		return err
	}

	buffer.Handle = handle
	buffer.Memory = memory
	buffer.Size = size
	buffer.allocated = true
	return nil
}

func (bc *BufferContext) release(buffer *vulkanBuffer) {
	if !buffer.allocated {
		return
	}
	vk.DestroyBuffer(bc.context.LogicalDevice, buffer.Handle, bc.context.Allocator)
	vk.FreeMemory(bc.context.LogicalDevice, buffer.Memory, bc.context.Allocator)
	*buffer = vulkanBuffer{Usage: buffer.Usage}
}
