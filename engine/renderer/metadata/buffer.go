package metadata

import "fmt"

/** @brief The binding point a buffer is bound to before uploading. */
type BufferTarget int

const (
	/** @brief Buffer is used for vertex attribute data. */
	BufferTargetVertex BufferTarget = iota
	/** @brief Buffer is used for index data. */
	BufferTargetIndex
)

func (t BufferTarget) String() string {
	if t == BufferTargetIndex {
		return "index"
	}
	return "vertex"
}

/** @brief Upload pattern hint guiding the driver allocation strategy. */
type UsageHint int

const (
	/** @brief Data is uploaded once and rarely changes. Default. */
	UsageStatic UsageHint = iota
	/** @brief Data changes often. */
	UsageDynamic
)

func (u UsageHint) String() string {
	if u == UsageDynamic {
		return "dynamic"
	}
	return "static"
}

// ParseUsageHint reads the configuration spelling of a usage hint.
func ParseUsageHint(s string) (UsageHint, error) {
	switch s {
	case "static", "":
		return UsageStatic, nil
	case "dynamic":
		return UsageDynamic, nil
	default:
		return UsageStatic, fmt.Errorf("unknown usage hint %q", s)
	}
}
