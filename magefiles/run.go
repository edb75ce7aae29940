//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

const sampleCube = "assets/models/cube.obj"

// Loads the sample cube and prints its upload report.
func (Run) Cube() error {
	fmt.Println("Run animageo on the sample cube...")
	return goCmd(nil, "run", ".", "-normals=face", "-tangents", "-barycentric", sampleCube)
}

// Watches the sample cube and reports again on every change.
func (Run) Watch() error {
	return goCmd(nil, "run", ".", "-watch", "-normals=vertex", sampleCube)
}

// Uploads the sample cube into Vulkan device buffers.
func (Run) Vulkan() error {
	return goCmd(nil, "run", ".", "-backend=vulkan", "-normals=vertex", sampleCube)
}
