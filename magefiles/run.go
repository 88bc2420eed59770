//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Run mg.Namespace

// Server builds and starts the server in debug mode.
func (Run) Server() error {
	mg.Deps(Build.Server)
	fmt.Println("Run server...")
	return sh.RunV("./bin/serverworld", "-debug")
}
