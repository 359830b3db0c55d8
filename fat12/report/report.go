// Package report accumulates the repair notices and anomalies produced by a
// scan into a single console-renderable report, built on go-multierror so
// every independent defect found during a pass survives to the final
// output instead of aborting the scan.
package report

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	fatfsckerrors "github.com/fat12fsck/fat12fsck/fat12/errors"
)

// Entry is a single repair notice or anomaly, tied to the directory entry or
// cluster it was found on.
type Entry struct {
	Kind    fatfsckerrors.Kind
	Path    string
	Message string
	Detail  []string
}

func (e *Entry) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Report collects Entry values produced over the course of a scan.
type Report struct {
	merr *multierror.Error
}

// New returns an empty Report.
func New() *Report {
	return &Report{merr: &multierror.Error{}}
}

// Add appends one repair notice to the report.
func (r *Report) Add(kind fatfsckerrors.Kind, path, message string, detail ...string) {
	r.merr = multierror.Append(r.merr, &Entry{
		Kind:    kind,
		Path:    path,
		Message: message,
		Detail:  detail,
	})
}

// Entries returns every notice recorded so far, in the order they were added.
func (r *Report) Entries() []*Entry {
	entries := make([]*Entry, 0, len(r.merr.Errors))
	for _, err := range r.merr.Errors {
		if entry, ok := err.(*Entry); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Empty reports whether the scan found nothing to repair.
func (r *Report) Empty() bool {
	return len(r.merr.Errors) == 0
}

// String renders the report the way the console output is specified: each
// notice prefixed "*BAD:" followed by a tab, with any detail lines indented
// further. No machine-readable format is promised.
func (r *Report) String() string {
	if r.Empty() {
		return ""
	}

	var b strings.Builder
	for _, entry := range r.Entries() {
		fmt.Fprintf(&b, "*BAD:\t%s\n", entry.Error())
		for _, line := range entry.Detail {
			fmt.Fprintf(&b, "\t\t%s\n", line)
		}
	}
	return b.String()
}
