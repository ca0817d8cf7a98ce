// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"seqingress/internal/ingress"
	"seqingress/internal/samplesheet"
)

func TestGetKnowsEveryId(t *testing.T) {
	ids := []Id{
		InputNotFoundId,
		UnsupportedKindId,
		MixedLayoutId,
		EmptyInputId,
		NestingTooDeepId,
		MissingAliasId,
		InconsistentHeaderId,
		SampleSheetInvalidId,
		ConfigLoadFailedId,
	}
	for _, id := range ids {
		iss := Get(id)
		if iss == nil {
			t.Errorf("Get(%d) = nil", id)
			continue
		}
		if iss.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, iss.Id())
		}
		if iss.MarkdownMsg() == "" {
			t.Errorf("issue %d has no message", id)
		}
	}
	if len(Values()) != len(ids) {
		t.Errorf("Values() has %d issues, want %d", len(Values()), len(ids))
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Id
	}{
		{
			name: "mixed layout",
			err:  &ingress.LayoutError{Dir: "in", Kind: ingress.KindFastq, Problem: ingress.LayoutMixed},
			want: MixedLayoutId,
		},
		{
			name: "empty input",
			err:  &ingress.LayoutError{Dir: "in", Kind: ingress.KindFastq, Problem: ingress.LayoutEmpty},
			want: EmptyInputId,
		},
		{
			name: "too deep",
			err:  &ingress.LayoutError{Dir: "in", Kind: ingress.KindBAM, Problem: ingress.LayoutTooDeep},
			want: NestingTooDeepId,
		},
		{
			name: "unsupported kind",
			err:  &ingress.UnsupportedKindError{Value: "cram"},
			want: UnsupportedKindId,
		},
		{
			name: "missing alias",
			err:  &ingress.MissingAliasError{Barcode: "barcode01"},
			want: MissingAliasId,
		},
		{
			name: "inconsistent header",
			err:  &ingress.InconsistentHeaderError{Path: "in/barcode01"},
			want: InconsistentHeaderId,
		},
		{
			name: "path kind",
			err:  &ingress.PathKindError{Path: "/dev/null"},
			want: InputNotFoundId,
		},
		{
			name: "sheet without barcode column",
			err:  &samplesheet.NoBarcodeColumnError{Path: "sheet.csv", Columns: []string{"alias"}},
			want: SampleSheetInvalidId,
		},
		{
			name: "wrapped error still maps",
			err:  fmt.Errorf("discovering: %w", &ingress.MissingAliasError{Barcode: "barcode02"}),
			want: MissingAliasId,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iss := FromError(tt.err)
			if iss == nil {
				t.Fatal("FromError = nil")
			}
			if iss.Id() != tt.want {
				t.Errorf("FromError().Id() = %d, want %d", iss.Id(), tt.want)
			}
		})
	}

	if iss := FromError(errors.New("unrelated")); iss != nil {
		t.Errorf("FromError(unrelated) = %v, want nil", iss)
	}
}

func TestRenderIncludesLinks(t *testing.T) {
	orig := render
	render = func(in, stylePath string) (string, error) { return in, nil }
	t.Cleanup(func() { render = orig })

	iss := &Issue{
		id:       UnsupportedKindId,
		mdMsg:    "# heading",
		docLinks: []HttpLink{"https://example.org/docs"},
	}
	out, err := iss.Render("auto")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "See also") {
		t.Errorf("output %q missing link section", out)
	}
	if !strings.Contains(out, "https://example.org/docs") {
		t.Errorf("output %q missing doc link", out)
	}
}
