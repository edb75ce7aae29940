package vulkan

import (
	"fmt"
	"runtime"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/animageo/engine/core"
)

/**
 * @brief Creates an instance without surface extensions and a logical
 * device on the first physical device that exposes a transfer capable queue.
 * Enough to own buffers from tooling that never presents.
 *
 * InitLoader must have succeeded before.
 */
func NewDevice(appName string) (*VulkanContext, error) {
	context := &VulkanContext{}

	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(appName),
		PEngineName:        VulkanSafeString("animageo"),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}
	extensions := []string{}
	if runtime.GOOS == "darwin" {
		extensions = append(extensions, "VK_KHR_portability_enumeration")
		createInfo.Flags |= 1
	}
	createInfo.EnabledExtensionCount = uint32(len(extensions))
	createInfo.PpEnabledExtensionNames = VulkanSafeStrings(extensions)

	if res := vk.CreateInstance(&createInfo, context.Allocator, &context.Instance); res != vk.Success {
		err := fmt.Errorf("failed in creating the Vulkan Instance with error `%s`", VulkanResultString(res))
		core.LogError("%s", err)
		return nil, err
	}
	if err := vk.InitInstance(context.Instance); err != nil {
		core.LogError("%s", err)
		vk.DestroyInstance(context.Instance, context.Allocator)
		return nil, err
	}

	queueFamily, err := context.selectPhysicalDevice()
	if err != nil {
		vk.DestroyInstance(context.Instance, context.Allocator)
		return nil, err
	}

	queueCreateInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: queueFamily,
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}}
	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: uint32(len(queueCreateInfos)),
		PQueueCreateInfos:    queueCreateInfos,
	}
	if res := vk.CreateDevice(context.PhysicalDevice, &deviceCreateInfo, context.Allocator, &context.LogicalDevice); res != vk.Success {
		err := fmt.Errorf("failed to create logical device: %s", VulkanResultString(res))
		core.LogError("%s", err)
		vk.DestroyInstance(context.Instance, context.Allocator)
		return nil, err
	}
	core.LogInfo("Logical device created.")
	return context, nil
}

func (vc *VulkanContext) selectPhysicalDevice() (uint32, error) {
	var physicalDeviceCount uint32 = 0
	if res := vk.EnumeratePhysicalDevices(vc.Instance, &physicalDeviceCount, nil); res != vk.Success {
		return 0, fmt.Errorf("failed to enumerate physical devices: %s", VulkanResultString(res))
	}
	if physicalDeviceCount == 0 {
		return 0, fmt.Errorf("no devices which support Vulkan were found")
	}
	physicalDevices := make([]vk.PhysicalDevice, physicalDeviceCount)
	if res := vk.EnumeratePhysicalDevices(vc.Instance, &physicalDeviceCount, physicalDevices); res != vk.Success {
		return 0, fmt.Errorf("failed to enumerate physical devices: %s", VulkanResultString(res))
	}

	// Graphics and compute queues implicitly support transfers.
	wanted := vk.QueueFlagBits(vk.QueueGraphicsBit | vk.QueueComputeBit | vk.QueueTransferBit)
	for _, device := range physicalDevices {
		var queueFamilyCount uint32 = 0
		vk.GetPhysicalDeviceQueueFamilyProperties(device, &queueFamilyCount, nil)
		queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
		vk.GetPhysicalDeviceQueueFamilyProperties(device, &queueFamilyCount, queueFamilies)

		for i := range queueFamilies {
			queueFamilies[i].Deref()
			if vk.QueueFlagBits(queueFamilies[i].QueueFlags)&wanted > 0 {
				vc.PhysicalDevice = device
				return uint32(i), nil
			}
		}
	}
	return 0, fmt.Errorf("no device with a transfer capable queue was found")
}

// Destroy releases the logical device and the instance.
func (vc *VulkanContext) Destroy() {
	vk.DeviceWaitIdle(vc.LogicalDevice)
	vk.DestroyDevice(vc.LogicalDevice, vc.Allocator)
	vk.DestroyInstance(vc.Instance, vc.Allocator)
}
