//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binaryName = "pg-export"

var Default = Build

func Build() error {
	mg.Deps(Generate)
	return sh.RunV("go", "build", "-o", binaryName, ".")
}

func Lint() error {
	return sh.RunV("golangci-lint", "run")
}

// Generate пересобирает моки (mockery).
func Generate() error {
	return sh.RunV("go", "generate", "./...")
}

func Update() error {
	if err := sh.RunV("go", "get", "-u", "-v"); err != nil {
		return err
	}
	return Tidy()
}

func Tidy() error {
	return sh.RunV("go", "mod", "tidy", "-v")
}

func Clean() error {
	return sh.Rm(binaryName)
}

type Test mg.Namespace

func (Test) All() error {
	return sh.RunV("go", "test", "-v", "./...")
}

func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

func (Test) Cover() error {
	if err := sh.RunV("go", "test", "-coverprofile=cover.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=cover.out")
}
