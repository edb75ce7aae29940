//go:build mage

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// goCmd runs the go tool with env added to the environment. The output is
// streamed to the terminal.
func goCmd(env map[string]string, args ...string) error {
	fmt.Printf("Executing: go %s\n", strings.Join(args, " "))
	if err := sh.RunWithV(env, mg.GoCmd(), args...); err != nil {
		return fmt.Errorf("error executing go %s: %w", args[0], err)
	}
	return nil
}

func goTidy() error {
	if err := sh.Run(mg.GoCmd(), "mod", "tidy"); err != nil {
		return fmt.Errorf("failed to run go mod tidy: %w", err)
	}
	return nil
}
