package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// TextWriter writes the fixed-width plain-text report.
type TextWriter struct{}

// Write renders rep.
func (TextWriter) Write(w io.Writer, rep Report) error {
	var b strings.Builder

	b.WriteString("UNSUITABLE LOCATIONS REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Generated on: %s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total locations scanned: %d\n\n", rep.Scanned)

	if len(rep.Flagged) == 0 {
		b.WriteString("No unsuitable locations found!\n")
	} else {
		fmt.Fprintf(&b, "Found %d potentially unsuitable locations:\n\n", len(rep.Flagged))
		fmt.Fprintf(&b, "%-40s%-40s%-50s%s\n", "ID", "Name", "Address", "Reasons")
		b.WriteString(strings.Repeat("-", 130) + "\n")

		for _, v := range rep.Flagged {
			fmt.Fprintf(&b, "%-40s %-40s %-50s %s\n",
				v.ID, truncate(v.Name, 38), truncate(v.Address, 48), strings.Join(v.Reasons, ", "))
		}

		fmt.Fprintf(&b, "\nTotal: %d locations flagged as potentially unsuitable\n", len(rep.Flagged))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return eris.Wrap(err, "report: write text")
	}
	return nil
}
