// SPDX-License-Identifier: MPL-2.0

// Package issue turns the errors the discovery pipeline can raise into
// actionable guidance pages, rendered as terminal markdown.
package issue
