// SPDX-License-Identifier: MPL-2.0

// Package ingress discovers, validates, and catalogs sequencing-data inputs
// (FASTQ read files and BAM/uBAM alignment files) supplied to a pipeline
// test harness.
//
// Discovery classifies an input path as a single file, a flat directory of
// target files, or a directory of per-barcode subdirectories; extracts
// identifying metadata by scanning file contents; reconciles discovered
// inputs against an optional sample sheet; and enforces structural rules
// about directory layout and header consistency. The result is an in-memory
// catalog of per-sample metadata records paired with resolved input paths.
package ingress
