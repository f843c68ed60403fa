package main

import (
	"context"

	md2html "github.com/alnah/go-md2html"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2html.Input) (*md2html.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2html.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// poolAdapter adapts md2html.ConverterPool to the Pool interface.
type poolAdapter struct {
	pool *md2html.ConverterPool
}

// newConverterPool creates the production Pool.
func newConverterPool(size int, opts ...md2html.Option) Pool {
	return &poolAdapter{pool: md2html.NewConverterPool(size, opts...)}
}

var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire() (CLIConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release ignores converters the pool did not hand out.
func (a *poolAdapter) Release(c CLIConverter) {
	if conv, ok := c.(*md2html.Converter); ok {
		a.pool.Release(conv)
	}
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
