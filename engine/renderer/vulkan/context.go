package vulkan

import (
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/animageo/engine/core"
)

/**
 * @brief The device objects a buffer context allocates from. They are created
 * by NewDevice or handed over by a host renderer that owns them.
 */
type VulkanContext struct {
	Allocator      *vk.AllocationCallbacks
	Instance       vk.Instance
	PhysicalDevice vk.PhysicalDevice
	LogicalDevice  vk.Device
}

func (vc *VulkanContext) FindMemoryIndex(typeFilter, propertyFlags uint32) int32 {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(vc.PhysicalDevice, &memoryProperties)
	memoryProperties.Deref()

	for i := uint32(0); i < memoryProperties.MemoryTypeCount; i++ {
		// Check each memory type to see if its bit is set to 1.
		memoryProperties.MemoryTypes[i].Deref()
		if (typeFilter&(1<<i)) != 0 && (uint32(memoryProperties.MemoryTypes[i].PropertyFlags)&propertyFlags) == propertyFlags {
			return int32(i)
		}
	}
	core.LogWarn("Unable to find suitable memory type!")
	return -1
}
