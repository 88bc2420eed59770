//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binDir = "bin"

type Build mg.Namespace

// Server compiles the server binary into bin/.
func (Build) Server() error {
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-o", filepath.Join(binDir, "serverworld"), "./cmd/serverworld")
}

// Clean removes build output.
func (Build) Clean() error {
	return sh.Rm(binDir)
}
