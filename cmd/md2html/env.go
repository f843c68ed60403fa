package main

import (
	"io"
	"os"

	md2html "github.com/alnah/go-md2html"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// NewPool creates the converter pool for a batch.
	NewPool func(size int, opts ...md2html.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newConverterPool,
	}
}
