// Package report renders screening results as text, CSV, JSON, or XLSX.
package report

import (
	"io"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/location-screen/internal/model"
)

// DefaultOutput is the report file written when no output is configured.
const DefaultOutput = "unsuitable_locations_report.txt"

// Report is the input to every writer. Flagged holds only verdicts with
// at least one reason, in scan order.
type Report struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Scanned     int             `json:"scanned"`
	Flagged     []model.Verdict `json:"flagged"`
}

// Writer renders a report.
type Writer interface {
	Write(w io.Writer, rep Report) error
}

// Formats lists the supported format names.
var Formats = []string{"text", "csv", "json", "xlsx"}

// ForFormat returns the writer for a format name.
func ForFormat(name string) (Writer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "txt", "":
		return TextWriter{}, nil
	case "csv":
		return CSVWriter{}, nil
	case "json":
		return JSONWriter{}, nil
	case "xlsx":
		return XLSXWriter{}, nil
	default:
		return nil, eris.Errorf("report: unknown format %q (want one of %s)", name, strings.Join(Formats, ", "))
	}
}

// New builds a report from all verdicts, keeping the flagged ones.
func New(runID string, generatedAt time.Time, scanned int, verdicts []model.Verdict) Report {
	flagged := make([]model.Verdict, 0, len(verdicts))
	for _, v := range verdicts {
		if v.Flagged() {
			flagged = append(flagged, v)
		}
	}
	return Report{RunID: runID, GeneratedAt: generatedAt, Scanned: scanned, Flagged: flagged}
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
