// SPDX-License-Identifier: MPL-2.0

package ingress

import "strings"

const (
	// KindFastq selects sequence-read input (FASTQ, optionally gzipped).
	KindFastq Kind = "fastq"
	// KindBAM selects alignment input (BAM or uBAM).
	KindBAM Kind = "bam"
)

type (
	// Kind identifies the input format a discovery call targets.
	Kind string
)

// extensions maps each kind to its recognized filename suffixes.
var extensions = map[Kind][]string{
	KindFastq: {".fastq", ".fastq.gz", ".fq", ".fq.gz"},
	KindBAM:   {".bam", ".ubam"},
}

// ParseKind validates s as an input kind. Unknown values fail with an
// UnsupportedKindError before any I/O happens.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.valid() {
		return "", &UnsupportedKindError{Value: s}
	}
	return k, nil
}

// Extensions returns the kind's recognized filename suffixes.
func (k Kind) Extensions() []string {
	return extensions[k]
}

// Matches reports whether name carries one of the kind's suffixes.
func (k Kind) Matches(name string) bool {
	for _, ext := range extensions[k] {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func (k Kind) valid() bool {
	_, ok := extensions[k]
	return ok
}

// upper is the kind name as it appears in layout error messages.
func (k Kind) upper() string {
	return strings.ToUpper(string(k))
}
