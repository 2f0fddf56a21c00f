package main

import (
	"errors"
	"fmt"
	"strings"
)

// Expected format: v1.30.0+k3s1
const (
	k3sVersion       = "v1.30.0+k3s1"
	k3sVersionPrefix = "v"
	k3sVersionMarker = "+k3s"
)

// ResourceRequirements are the resources of a lab node.
type ResourceRequirements struct {
	CPU      int // vCPU
	MemoryMB int
}

var (
	// labMinimum is what the lab environment needs to run k3s.
	labMinimum = ResourceRequirements{CPU: 2, MemoryMB: 8192}

	// labResources are the resources provisioned for lab nodes. They are
	// fixed values, not read from the inventory or role defaults.
	labResources = ResourceRequirements{CPU: 2, MemoryMB: 8192}
)

func validateK3sVersion(version string) error {
	if !strings.HasPrefix(version, k3sVersionPrefix) {
		return &ShapeError{Reason: fmt.Sprintf("k3s version %q should start with %q", version, k3sVersionPrefix)}
	}
	if !strings.Contains(version, k3sVersionMarker) {
		return &ShapeError{Reason: fmt.Sprintf("k3s version %q should contain %q suffix", version, k3sVersionMarker)}
	}
	return nil
}

// Satisfies reports every resource of r that is below minimum.
func (r ResourceRequirements) Satisfies(minimum ResourceRequirements) error {
	var errs []error
	if r.CPU < minimum.CPU {
		errs = append(errs, &ShapeError{Reason: fmt.Sprintf("lab environment requires at least %d vCPU, got %d", minimum.CPU, r.CPU)})
	}
	if r.MemoryMB < minimum.MemoryMB {
		errs = append(errs, &ShapeError{Reason: fmt.Sprintf("lab environment requires at least %d MB RAM, got %d", minimum.MemoryMB, r.MemoryMB)})
	}
	return errors.Join(errs...)
}

func checkVersionFormat(version string) CheckFunc {
	return func(c *CheckContext) error {
		c.Checked()
		return validateK3sVersion(version)
	}
}

func checkResources(resources ResourceRequirements) CheckFunc {
	return func(c *CheckContext) error {
		c.Checked()
		return resources.Satisfies(labMinimum)
	}
}
