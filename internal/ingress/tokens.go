// SPDX-License-Identifier: MPL-2.0

package ingress

import "strings"

// parseTokens splits a whitespace-separated annotation string into key/value
// pairs. Two token shapes are recognized:
//
//   - `key=value` pairs, as written by basecallers into FASTQ comments and
//     into read-group DS header fields (e.g. `runid=a1b2`);
//   - SAM-style `TG:T:value` tags, as produced by `samtools fastq -T` when
//     carrying BAM tags through FASTQ headers (e.g. `RD:Z:a1b2`), keyed by
//     the two-letter tag name.
//
// Tokens matching neither shape are ignored. Later tokens win on key
// collision. The marker names themselves are not interpreted here, so new
// annotation conventions only need a new lookup key at the call site.
func parseTokens(s string) map[string]string {
	pairs := make(map[string]string)
	for _, tok := range strings.Fields(s) {
		// SAM aux tag: two-letter tag, one-letter type, value.
		if len(tok) >= 5 && tok[2] == ':' && tok[4] == ':' {
			pairs[tok[:2]] = tok[5:]
			continue
		}
		if k, v, ok := strings.Cut(tok, "="); ok && k != "" {
			pairs[k] = v
		}
	}
	return pairs
}
