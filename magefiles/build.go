//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Tidies the module and then builds the animageo binary.
func (Build) Binary() error {
	mg.Deps(goTidy)
	return goCmd(nil, "build", "-o", "bin/animageo", ".")
}

// Runs go vet over every package.
func (Build) Vet() error {
	return goCmd(nil, "vet", "./...")
}

type Test mg.Namespace

// Runs the unit tests.
func (Test) Unit() error {
	return goCmd(nil, "test", "./...")
}

// Runs the unit tests with the race detector, the asset watcher is concurrent.
func (Test) Race() error {
	return goCmd(nil, "test", "-race", "./engine/assets/...", "./engine/systems/...")
}

// Runs the tests that need a Vulkan driver.
func (Test) Vulkan() error {
	return goCmd(map[string]string{"ANIMAGEO_VULKAN": "1"}, "test", "-count=1", "./engine/renderer/vulkan/...")
}
