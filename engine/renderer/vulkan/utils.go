package vulkan

import (
	"strings"

	vk "github.com/goki/vulkan"
)

// VulkanResultString describes the results instance, device and buffer
// creation can return.
func VulkanResultString(result vk.Result) string {
	switch result {
	case vk.Success:
		return "VK_SUCCESS"
	case vk.Incomplete:
		return "VK_INCOMPLETE A return array was too small for the result."
	case vk.ErrorOutOfHostMemory:
		return "VK_ERROR_OUT_OF_HOST_MEMORY A host memory allocation has failed."
	case vk.ErrorOutOfDeviceMemory:
		return "VK_ERROR_OUT_OF_DEVICE_MEMORY A device memory allocation has failed."
	case vk.ErrorInitializationFailed:
		return "VK_ERROR_INITIALIZATION_FAILED Initialization of an object could not be completed."
	case vk.ErrorDeviceLost:
		return "VK_ERROR_DEVICE_LOST The logical or physical device has been lost."
	case vk.ErrorMemoryMapFailed:
		return "VK_ERROR_MEMORY_MAP_FAILED Mapping of a memory object has failed."
	case vk.ErrorLayerNotPresent:
		return "VK_ERROR_LAYER_NOT_PRESENT A requested layer is not present or could not be loaded."
	case vk.ErrorExtensionNotPresent:
		return "VK_ERROR_EXTENSION_NOT_PRESENT A requested extension is not supported."
	case vk.ErrorFeatureNotPresent:
		return "VK_ERROR_FEATURE_NOT_PRESENT A requested feature is not supported."
	case vk.ErrorIncompatibleDriver:
		return "VK_ERROR_INCOMPATIBLE_DRIVER The requested version of Vulkan is not supported by the driver."
	case vk.ErrorTooManyObjects:
		return "VK_ERROR_TOO_MANY_OBJECTS Too many objects of the type have already been created."
	case vk.ErrorInvalidExternalHandle:
		return "VK_ERROR_INVALID_EXTERNAL_HANDLE An external handle is not a valid handle of the specified type."
	case vk.ErrorInvalidDeviceAddress:
		return "VK_ERROR_INVALID_DEVICE_ADDRESS_EXT A buffer creation failed because the requested address is not available."
	default:
		return "VK_ERROR_UNKNOWN An unknown error has occurred."
	}
}

// VulkanSafeString returns s terminated by a NUL, as the C entry points expect.
func VulkanSafeString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// VulkanSafeStrings terminates every element of list in place.
func VulkanSafeStrings(list []string) []string {
	for i := range list {
		list[i] = VulkanSafeString(list[i])
	}
	return list
}
