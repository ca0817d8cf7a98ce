// SPDX-License-Identifier: MPL-2.0

// seqingress discovers sequencing input on disk and emits a metadata
// catalogue for it.
package main

func main() {
	Execute()
}
