package convert

import (
	"strings"
	"testing"
)

const stocksDoc = `<Catalog>
  <Info><Date>2020-02-02</Date></Info>
  <Stocks>
    <Stock><Ticker>AAPL</Ticker><Price currency="USD">300</Price></Stock>
    <Stock><Ticker>MSFT</Ticker><Price currency="USD">180</Price></Stock>
  </Stocks>
</Catalog>`

func TestConvert(t *testing.T) {
	spec := Spec{
		RowsPath:  []string{"Stocks", "Stock"},
		MetaPaths: [][]string{{"Info"}},
	}

	res, err := Convert([]byte(stocksDoc), spec, Limits{})
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(res.Records))
	}
	if res.Fields != 8 {
		t.Errorf("expected 8 total fields, got %d", res.Fields)
	}
	if res.Words == 0 {
		t.Error("expected a nonzero word count")
	}
	if v, _ := res.Records[0].Get("Ticker"); v != "AAPL" {
		t.Errorf("expected Ticker=AAPL, got %q", v)
	}
}

func TestConvert_InvalidSpec(t *testing.T) {
	_, err := Convert([]byte(stocksDoc), Spec{}, Limits{})
	if err == nil || !strings.Contains(err.Error(), "invalid spec") {
		t.Errorf("expected invalid spec error, got %v", err)
	}
}

func TestConvert_MalformedDocument(t *testing.T) {
	_, err := Convert([]byte(`<a><b></a>`), validSpec(), Limits{})
	if err == nil || !strings.Contains(err.Error(), "parse document") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestConvert_ExpectedKeys(t *testing.T) {
	spec := Spec{
		RowsPath:     []string{"Stocks", "Stock"},
		ExpectedKeys: []string{"Ticker", "Price", "currency"},
	}
	if _, err := Convert([]byte(stocksDoc), spec, Limits{}); err != nil {
		t.Fatalf("expected keys to match, got %v", err)
	}

	spec.ExpectedKeys = []string{"Ticker", "Price"}
	_, err := Convert([]byte(stocksDoc), spec, Limits{})
	if err == nil || !strings.Contains(err.Error(), "validate records") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestConvert_RecordLimit(t *testing.T) {
	spec := Spec{RowsPath: []string{"Stocks", "Stock"}}

	if _, err := Convert([]byte(stocksDoc), spec, Limits{MaxRecords: 1}); err == nil {
		t.Error("expected record limit error")
	}
	if _, err := Convert([]byte(stocksDoc), spec, Limits{MaxRecords: 2}); err != nil {
		t.Errorf("expected 2 records to fit, got %v", err)
	}
}

func TestConvert_DepthLimit(t *testing.T) {
	spec := Spec{RowsPath: []string{"Stocks", "Stock"}}

	_, err := Convert([]byte(stocksDoc), spec, Limits{MaxDepth: 2})
	if err == nil || !strings.Contains(err.Error(), "parse document") {
		t.Errorf("expected depth limit to fail the parse, got %v", err)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"two words", 2},
		{"hyphen-split counts twice", 4},
		{"v1.2 has numbers", 3},
	}
	for _, tc := range tests {
		if got := countWords(tc.text); got != tc.want {
			t.Errorf("countWords(%q): expected %d, got %d", tc.text, tc.want, got)
		}
	}
}
