package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/location-screen/internal/model"
)

var tableHeader = []string{"id", "name", "address", "reasons"}

func tableRow(v model.Verdict) []string {
	return []string{v.ID, v.Name, v.Address, strings.Join(v.Reasons, "; ")}
}

// CSVWriter writes one row per flagged location.
type CSVWriter struct{}

// Write renders rep.
func (CSVWriter) Write(w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tableHeader); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}
	for _, v := range rep.Flagged {
		if err := cw.Write(tableRow(v)); err != nil {
			return eris.Wrap(err, "report: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush csv")
}

// JSONWriter writes the report as an indented JSON object.
type JSONWriter struct{}

// Write renders rep.
func (JSONWriter) Write(w io.Writer, rep Report) error {
	if rep.Flagged == nil {
		rep.Flagged = []model.Verdict{}
	}
	out := struct {
		Report
		FlaggedCount int `json:"flagged_count"`
	}{rep, len(rep.Flagged)}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(out), "report: encode json")
}

// XLSXWriter writes a workbook with a single "Flagged" sheet.
type XLSXWriter struct{}

// Write renders rep.
func (XLSXWriter) Write(w io.Writer, rep Report) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Flagged")
	if err != nil {
		return eris.Wrap(err, "report: add xlsx sheet")
	}

	addRow := func(cells []string) {
		row := sheet.AddRow()
		for _, c := range cells {
			row.AddCell().SetString(c)
		}
	}
	addRow(tableHeader)
	for _, v := range rep.Flagged {
		addRow(tableRow(v))
	}

	return eris.Wrap(f.Write(w), "report: write xlsx")
}
