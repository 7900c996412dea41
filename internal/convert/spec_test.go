package convert

import (
	"encoding/json"
	"testing"
)

func validSpec() Spec {
	return Spec{RowsPath: []string{"Stocks", "Stock"}}
}

func TestSpecValidate(t *testing.T) {
	depth := func(n int) *int { return &n }

	tests := []struct {
		name    string
		mutate  func(*Spec)
		wantErr bool
	}{
		{"valid minimal", func(s *Spec) {}, false},
		{"valid full", func(s *Spec) {
			s.SubrowTag = "Item"
			s.MetaPaths = [][]string{{"Info"}}
			s.RowsMaxDepth = depth(2)
			s.MetaMaxDepth = depth(0)
			s.ExpectedKeys = []string{"a", "b"}
		}, false},
		{"missing rows path", func(s *Spec) { s.RowsPath = nil }, true},
		{"blank rows segment", func(s *Spec) { s.RowsPath = []string{"a", "  "} }, true},
		{"blank subrow tag", func(s *Spec) { s.SubrowTag = "  " }, true},
		{"empty meta path", func(s *Spec) { s.MetaPaths = [][]string{{}} }, true},
		{"blank meta segment", func(s *Spec) { s.MetaPaths = [][]string{{"a", ""}} }, true},
		{"negative rows depth", func(s *Spec) { s.RowsMaxDepth = depth(-1) }, true},
		{"negative meta depth", func(s *Spec) { s.MetaMaxDepth = depth(-2) }, true},
		{"zero depth allowed", func(s *Spec) { s.RowsMaxDepth = depth(0) }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := validSpec()
			tc.mutate(&spec)
			err := spec.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("expected valid spec, got %v", err)
			}
		})
	}
}

func TestSpecOptionsDepthPresence(t *testing.T) {
	spec := validSpec()
	opts := spec.Options()
	if !opts.RowsMaxDepth.Unlimited() {
		t.Error("expected absent depth to stay unlimited")
	}

	zero := 0
	spec.RowsMaxDepth = &zero
	opts = spec.Options()
	if opts.RowsMaxDepth.Unlimited() {
		t.Error("expected explicit zero depth to be bounded")
	}
}

func TestSpecJSONRoundTrip(t *testing.T) {
	raw := `{
		"rows_path": ["Stocks", "Stock"],
		"subrow_tag": "Lot",
		"meta_paths": [["Info"], ["Header", "Origin"]],
		"rows_prefix": true,
		"separator": ".",
		"rows_max_depth": 0,
		"expected_keys": ["Info", "Stocks.Stock"]
	}`

	var spec Spec
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if err := spec.Validate(); err != nil {
		t.Fatalf("expected valid spec, got %v", err)
	}
	if spec.RowsMaxDepth == nil || *spec.RowsMaxDepth != 0 {
		t.Error("expected rows_max_depth=0 to be present, not absent")
	}
	if spec.MetaMaxDepth != nil {
		t.Error("expected omitted meta_max_depth to be absent")
	}
	if len(spec.MetaPaths) != 2 || spec.MetaPaths[1][1] != "Origin" {
		t.Errorf("expected meta paths preserved, got %v", spec.MetaPaths)
	}
}
