// Package sturdio reads and writes binary sample files and YAML
// configuration.
//
// The engines live in their own packages: binfile for binary files,
// parse, ir and encode for YAML documents and config for typed access to
// configuration files. This package names the common entry points.
package sturdio

import (
	"github.com/sturdio/sturdio/binfile"
	"github.com/sturdio/sturdio/config"
	"github.com/sturdio/sturdio/iotools"
	"github.com/sturdio/sturdio/parse"
)

const Version = "1.0.0"

const Doc = "sturdio: binary sample files and YAML configuration"

type (
	BinaryFile = binfile.File
	YamlParser = config.Parser
)

// OpenBinary opens the file name in directory dir for reading.
func OpenBinary(name, dir string, opts ...binfile.Option) (*BinaryFile, error) {
	return binfile.Open(iotools.JoinPath(dir, name), binfile.ReadOnly, opts...)
}

// OpenYaml parses the file name in directory dir.
func OpenYaml(name, dir string, opts ...parse.ParseOption) (*YamlParser, error) {
	return config.NewAt(dir, name, opts...)
}

// EnsurePathExists creates directory path and its parents if missing.
func EnsurePathExists(path string) error {
	return iotools.EnsurePathExists(path)
}
