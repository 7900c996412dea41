package tabular

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgallion1/xmlrecords"
)

func rec(pairs ...string) *xmlrecords.Record {
	r := xmlrecords.NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

func TestColumns(t *testing.T) {
	records := []*xmlrecords.Record{
		rec("Ticker", "AAPL", "Price", "300"),
		rec("Ticker", "MSFT", "Price", "180"),
	}
	cols, err := Columns(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cols) != 2 || cols[0] != "Ticker" || cols[1] != "Price" {
		t.Errorf("expected [Ticker Price], got %v", cols)
	}
}

func TestColumnsEmpty(t *testing.T) {
	cols, err := Columns(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cols != nil {
		t.Errorf("expected no columns, got %v", cols)
	}
}

func TestColumnsNonUniform(t *testing.T) {
	records := []*xmlrecords.Record{
		rec("a", "1"),
		rec("b", "2"),
	}
	if _, err := Columns(records); err == nil {
		t.Error("expected non-uniform records to fail")
	}
}

func TestWriteCSV(t *testing.T) {
	records := []*xmlrecords.Record{
		rec("Ticker", "AAPL", "Note", "has, comma"),
		rec("Ticker", "MSFT", "Note", `has "quote"`),
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Ticker,Note\nAAPL,\"has, comma\"\nMSFT,\"has \"\"quote\"\"\"\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	records := []*xmlrecords.Record{
		rec("z", "1", "a", "2"),
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `[{"z":"1","a":"2"}]` + "\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected empty array, got %q", buf.String())
	}
}

func TestWriteJSONLines(t *testing.T) {
	records := []*xmlrecords.Record{
		rec("a", "1"),
		rec("a", "2"),
	}
	var buf bytes.Buffer
	if err := WriteJSONLines(&buf, records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "{\"a\":\"1\"}\n{\"a\":\"2\"}\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestWriteTable(t *testing.T) {
	records := []*xmlrecords.Record{
		rec("Ticker", "AAPL", "Price", "300"),
	}
	var buf bytes.Buffer
	if err := WriteTable(&buf, records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"TICKER", "PRICE", "AAPL", "300"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteTableNonUniform(t *testing.T) {
	records := []*xmlrecords.Record{
		rec("a", "1"),
		rec("b", "2"),
	}
	var buf bytes.Buffer
	if err := WriteTable(&buf, records); err == nil {
		t.Error("expected non-uniform records to fail")
	}
}
