// SPDX-License-Identifier: MPL-2.0

// Package cueutil wraps the cuelang.org/go API behind a small surface:
// compiling a schema, unifying user data against it, and turning CUE's
// error lists into messages a person can act on.
package cueutil
