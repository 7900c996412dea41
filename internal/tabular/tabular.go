// Package tabular renders flattened records as CSV, JSON and text tables.
package tabular

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/dgallion1/xmlrecords"
)

// Columns returns the shared, ordered column set of the records. It fails
// when the records do not all carry the same keys in the same order.
func Columns(records []*xmlrecords.Record) ([]string, error) {
	if len(records) == 0 {
		return nil, nil
	}
	cols := records[0].Keys()
	if err := xmlrecords.Validate(records, cols); err != nil {
		return nil, fmt.Errorf("records are not uniform: %w", err)
	}
	return cols, nil
}

// WriteCSV writes a header row followed by one row per record. Nothing is
// written for an empty record set.
func WriteCSV(w io.Writer, records []*xmlrecords.Record) error {
	cols, err := Columns(records)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		row := lo.Map(rec.Fields(), func(f xmlrecords.Field, _ int) string { return f.Value })
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the records as a single JSON array of ordered objects.
func WriteJSON(w io.Writer, records []*xmlrecords.Record) error {
	if records == nil {
		records = []*xmlrecords.Record{}
	}
	return json.NewEncoder(w).Encode(records)
}

// WriteJSONLines writes one JSON object per line.
func WriteJSONLines(w io.Writer, records []*xmlrecords.Record) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable renders the records as an ASCII table for terminal output.
func WriteTable(w io.Writer, records []*xmlrecords.Record) error {
	cols, err := Columns(records)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return nil
	}
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader(cols)
	for _, rec := range records {
		tbl.Append(lo.Map(rec.Fields(), func(f xmlrecords.Field, _ int) string { return f.Value }))
	}
	tbl.Render()
	return nil
}
