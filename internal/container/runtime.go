// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs the PDF conversion image under docker or podman,
// so the toolchain does not need a local Python installation. Conversion
// containers get no network access; a PDF goes in on stdin and Markdown
// comes out on stdout.
package container

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// stderrTail caps how much converter diagnostic output is folded into an
// error message. pymupdf4llm failures print full Python tracebacks; the
// last lines carry the actual exception.
const stderrTail = 512

// Runtime provides the container operations conversion needs: checking
// availability, verifying the conversion image, and running it.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available() bool

	// ImageExists checks whether the named image exists locally.
	// Returns nil when the image is found, or an error describing the failure.
	ImageExists(image string) error

	// Run executes the conversion image with the PDF on stdin and the
	// Markdown on stdout. On failure the error carries the tail of the
	// converter's stderr.
	Run(image string, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// cli implements Runtime for a specific container binary. Docker and
// Podman share the invocation; they differ only in binary name and the
// subcommand used to check image existence.
type cli struct {
	bin        string
	imageCheck []string // e.g. ["image", "inspect"] for docker
	exec       executor
}

func (c *cli) Name() string { return c.bin }

func (c *cli) Available() bool {
	if _, err := c.exec.LookPath(c.bin); err != nil {
		return false
	}
	return c.exec.RunSilent(c.bin, "info") == nil
}

func (c *cli) ImageExists(image string) error {
	args := make([]string, 0, len(c.imageCheck)+1)
	args = append(args, c.imageCheck...)
	args = append(args, image)

	if err := c.exec.RunSilent(c.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, c.bin, err)
	}
	return nil
}

func (c *cli) Run(image string, stdin io.Reader, stdout io.Writer) error {
	// Conversion is purely local; denying network keeps a hung registry
	// or a chatty image from stalling the batch.
	args := []string{"run", "--rm", "-i", "--network=none", image}

	var diag bytes.Buffer
	if err := c.exec.RunPiped(c.bin, args, stdin, stdout, &diag); err != nil {
		if msg := diagTail(diag.String()); msg != "" {
			return fmt.Errorf("running %s container %s: %w: %s", c.bin, image, err, msg)
		}
		return fmt.Errorf("running %s container %s: %w", c.bin, image, err)
	}
	return nil
}

// diagTail trims converter stderr to the last stderrTail bytes, where the
// exception message sits.
func diagTail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrTail {
		s = s[len(s)-stderrTail:]
	}
	return s
}

func newDockerRuntime(exec executor) *cli {
	return &cli{
		bin:        binDocker,
		imageCheck: []string{"image", "inspect"},
		exec:       exec,
	}
}

func newPodmanRuntime(exec executor) *cli {
	return &cli{
		bin:        binPodman,
		imageCheck: []string{"image", "exists"},
		exec:       exec,
	}
}

var defaultExec = &osExecutor{}

// DetectRuntime tries docker first, falls back to podman. Returns an error
// if neither runtime is available.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(defaultExec)
}

func detectRuntime(exec executor) (Runtime, error) {
	docker := newDockerRuntime(exec)
	if docker.Available() {
		return docker, nil
	}

	podman := newPodmanRuntime(exec)
	if podman.Available() {
		return podman, nil
	}

	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
