// SPDX-License-Identifier: MPL-2.0

// Package config loads seqingress settings: defaults, then an optional
// CUE config file validated against an embedded schema, then explicit
// overrides from flags. The file lives in a platform-appropriate
// config directory and every field in it is optional.
package config
