// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package waveerr implements the typed error kinds of the solver: fatal
// configuration errors (raised before any allocation), the two
// recoverable run-time outcomes of the iteration driver, divergence and
// stagnation, and compute-device failures. Each type carries a Kind
// string naming the error class plus enough context to identify the
// offending input or subdomain. ConfigError, DivergenceError and
// StagnationError are returned values, not panics, so a caller can branch
// on the kind with errors.As; multidomain raises DeviceError as a panic
// value.
package waveerr

import "github.com/cpmech/gosl/chk"

// ConfigError reports a configuration problem detected before any
// allocation: non-3-D index map, n_boundary too large, inconsistent tuple
// lengths.
type ConfigError struct {
	Kind   string
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return chk.Err("wavesim: %s error in %q: %s", e.Kind, e.Field, e.Reason).Error()
}

// NewConfigError builds a ConfigError.
func NewConfigError(field, reason string) *ConfigError {
	return &ConfigError{Kind: "configuration", Field: field, Reason: reason}
}

// DivergenceError reports that the normalized residual exceeded
// the divergence limit before convergence.
type DivergenceError struct {
	Kind      string
	Iteration int
	Residual  float64
	Limit     float64
}

func (e *DivergenceError) Error() string {
	return chk.Err("wavesim: %s: diverged at iteration %d: residual %.3e exceeded limit %.3e",
		e.Kind, e.Iteration, e.Residual, e.Limit).Error()
}

// NewDivergenceError builds a DivergenceError.
func NewDivergenceError(iteration int, residual, limit float64) *DivergenceError {
	return &DivergenceError{Kind: "divergence", Iteration: iteration, Residual: residual, Limit: limit}
}

// StagnationError reports that max_iterations was reached without
// convergence.
type StagnationError struct {
	Kind      string
	Iteration int
	Residual  float64
	Threshold float64
}

func (e *StagnationError) Error() string {
	return chk.Err("wavesim: %s: stagnated after %d iterations: residual %.3e above threshold %.3e",
		e.Kind, e.Iteration, e.Residual, e.Threshold).Error()
}

// NewStagnationError builds a StagnationError.
func NewStagnationError(iteration int, residual, threshold float64) *StagnationError {
	return &StagnationError{Kind: "stagnation", Iteration: iteration, Residual: residual, Threshold: threshold}
}

// DeviceError surfaces a compute-device failure together with the device
// identity and the offending subdomain; there is no failover across
// devices mid-run.
type DeviceError struct {
	Kind      string
	Device    string
	Subdomain [3]int
	Cause     error
}

func (e *DeviceError) Error() string {
	return chk.Err("wavesim: %s failure: device %q failed for subdomain %v: %v",
		e.Kind, e.Device, e.Subdomain, e.Cause).Error()
}

// NewDeviceError builds a DeviceError wrapping the underlying cause.
func NewDeviceError(device string, subdomain [3]int, cause error) *DeviceError {
	return &DeviceError{Kind: "device", Device: device, Subdomain: subdomain, Cause: cause}
}

func (e *DeviceError) Unwrap() error { return e.Cause }
