// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import "errors"

// ErrUnavailable reports that no rendering backend can run here.
// Callers that merely decorate their output with charts should warn
// and move on rather than fail.
var ErrUnavailable = errors.New("chart rendering unavailable")

// A Renderer draws a chart description to a file.
type Renderer interface {
	Render(spec *Spec, path string) error
}

// Nop is a Renderer that always reports ErrUnavailable. It stands in
// wherever charts were switched off or no real backend can be used.
type Nop struct{}

func (Nop) Render(*Spec, string) error { return ErrUnavailable }
