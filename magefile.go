//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "kanacards"

// Default target to run when none is specified
var Default = Build

// Build compiles the kanacards binary
func Build() error {
	return sh.RunV("go", "build", "-o", binary, "./cmd/kanacards")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet on all packages
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install copies the binary to ~/go/bin
func Install() error {
	mg.Deps(Build)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	binDir := filepath.Join(home, "go", "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}
	return sh.Copy(filepath.Join(binDir, binary), binary)
}

// Clean removes the built binary
func Clean() error {
	return sh.Rm(binary)
}
