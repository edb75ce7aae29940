package assets

import (
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/animageo/engine/assets/loaders"
	"github.com/spaghettifunk/animageo/engine/renderer/metadata"
)

type Loader interface {
	Load(path string) (*metadata.Resource, error)
	Unload(*metadata.Resource) error
}

var _ Loader = &loaders.OBJLoader{}

func determineAssetType(path string) metadata.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return metadata.ResourceTypeMesh
	default:
		return metadata.ResourceTypeNone
	}
}
