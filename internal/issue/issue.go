// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"seqingress/internal/ingress"
	"seqingress/internal/samplesheet"
)

type Id int

const (
	InputNotFoundId Id = iota + 1
	UnsupportedKindId
	MixedLayoutId
	EmptyInputId
	NestingTooDeepId
	MissingAliasId
	InconsistentHeaderId
	SampleSheetInvalidId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to look up the issue
	mdMsg    MarkdownMsg // markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	inputNotFoundIssue = &Issue{
		id: InputNotFoundId,
		mdMsg: `
# Input not found!

The input path does not exist, or is neither a regular file nor a
directory.

## Things you can try:
- Check the path for typos
- If the path is a symlink, check that its target exists
- Pass either a single FASTQ/(u)BAM file, a directory of such files,
  or a directory of per-barcode sub-directories`,
	}

	unsupportedKindIssue = &Issue{
		id: UnsupportedKindId,
		mdMsg: `
# Unsupported input kind!

Only two input kinds are recognised.

## Supported kinds:
- **fastq**: files ending in ` + "`.fastq`, `.fastq.gz`, `.fq`, `.fq.gz`" + `
- **bam**: files ending in ` + "`.bam`, `.ubam`" + `

## Things you can try:
- Pass one of the kinds above to the --kind flag:
~~~
$ seqingress discover --kind fastq /path/to/input
~~~`,
	}

	mixedLayoutIssue = &Issue{
		id: MixedLayoutId,
		mdMsg: `
# Mixed input directory!

The input directory contains sequencing files at the top level as well
as sub-directories with more sequencing files. A directory must hold
one or the other, never both.

## Things you can try:
- Move the top-level files into their own sub-directory
- Or point the command at the sub-directory you actually want:
~~~
$ seqingress discover /path/to/input/barcode01
~~~`,
	}

	emptyInputIssue = &Issue{
		id: EmptyInputId,
		mdMsg: `
# No sequencing files found!

The input directory contains neither sequencing files of the requested
kind nor sub-directories holding any.

## Things you can try:
- Check that the files carry a recognised extension for the kind
  (e.g. ` + "`.fastq.gz`" + ` for fastq, ` + "`.bam`" + ` for bam)
- Check the --kind flag matches the files actually present:
~~~
$ seqingress discover --kind bam /path/to/input
~~~`,
	}

	nestingTooDeepIssue = &Issue{
		id: NestingTooDeepId,
		mdMsg: `
# Input nested too deeply!

Sequencing files were found more than one directory level below the
input path. Only one level of per-barcode sub-directories is allowed.

## Expected layouts:
~~~
input/reads.fastq.gz            # single file
input/*.fastq.gz                # flat directory
input/barcode*/*.fastq.gz       # one level of barcode dirs
~~~

## Things you can try:
- Flatten the extra directory levels
- Or point the command at the directory holding the barcode dirs`,
	}

	missingAliasIssue = &Issue{
		id: MissingAliasId,
		mdMsg: `
# Sample sheet row without an alias!

A barcode matched a sample sheet row whose alias column is empty.
Every reconciled sample needs a non-empty alias.

## Things you can try:
- Fill in the alias column for the affected barcode
- Remove the row if the barcode should fall back to its directory name`,
	}

	inconsistentHeaderIssue = &Issue{
		id: InconsistentHeaderId,
		mdMsg: `
# Mixed (u)BAM headers!

The (u)BAM files for one sample do not share the same reference
sequences in their headers, so the sample cannot be treated as
uniformly aligned or unaligned.

## Things you can try:
- Check whether aligned and unaligned files got mixed into one
  directory
- Re-align all files of the sample against the same reference
- Split the files into separate samples`,
	}

	sampleSheetInvalidIssue = &Issue{
		id: SampleSheetInvalidId,
		mdMsg: `
# Invalid sample sheet!

The sample sheet could not be used to reconcile the barcoded input.

## A valid sample sheet:
- is a CSV file with a header row
- has a ` + "`barcode`" + ` column
- has the same number of fields in every row

## Example:
~~~csv
barcode,alias,type
barcode01,patient_a,test_sample
barcode02,control,negative_control
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the seqingress configuration file.

## Configuration file locations:
- Linux: ~/.config/seqingress/config.cue
- macOS: ~/Library/Application Support/seqingress/config.cue
- Windows: %AppData%\seqingress\config.cue

## Things you can try:
- Check the configuration syntax against the schema
- Remove the config file to fall back to defaults

## Example configuration:
~~~cue
ingress: {
	sample_sheet: "sheet.csv"
	chunk_size:   1000
}

ui: verbose: true
~~~`,
	}

	issues = map[Id]*Issue{
		inputNotFoundIssue.Id():      inputNotFoundIssue,
		unsupportedKindIssue.Id():    unsupportedKindIssue,
		mixedLayoutIssue.Id():        mixedLayoutIssue,
		emptyInputIssue.Id():         emptyInputIssue,
		nestingTooDeepIssue.Id():     nestingTooDeepIssue,
		missingAliasIssue.Id():       missingAliasIssue,
		inconsistentHeaderIssue.Id(): inconsistentHeaderIssue,
		sampleSheetInvalidIssue.Id(): sampleSheetInvalidIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}

// FromError maps a pipeline error to its guidance page, or nil when no
// page applies.
func FromError(err error) *Issue {
	var layoutErr *ingress.LayoutError
	if errors.As(err, &layoutErr) {
		switch layoutErr.Problem {
		case ingress.LayoutMixed:
			return Get(MixedLayoutId)
		case ingress.LayoutEmpty:
			return Get(EmptyInputId)
		case ingress.LayoutTooDeep:
			return Get(NestingTooDeepId)
		}
	}
	switch {
	case errors.Is(err, ingress.ErrUnsupportedKind):
		return Get(UnsupportedKindId)
	case errors.Is(err, ingress.ErrMissingAlias):
		return Get(MissingAliasId)
	case errors.Is(err, ingress.ErrInconsistentHeader):
		return Get(InconsistentHeaderId)
	case errors.Is(err, ingress.ErrPathKind):
		return Get(InputNotFoundId)
	case errors.Is(err, samplesheet.ErrNoBarcodeColumn),
		errors.Is(err, samplesheet.ErrEmptySheet):
		return Get(SampleSheetInvalidId)
	}
	return nil
}
