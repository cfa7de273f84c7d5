package main

import (
	"io"
	"os"
	"time"

	mdlocal "github.com/alnah/go-mdlocal"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Fetcher mdlocal.Fetcher // nil = HTTP fetcher built from config
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
