package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEffectiveTerm(t *testing.T) {
	tests := []struct {
		name  string
		query SearchQuery
		want  string
	}{
		{"number wins over name", SearchQuery{GasSafeNumber: "G1", EngineerName: "Alice"}, "G1"},
		{"name wins over business", SearchQuery{EngineerName: "Alice", BusinessName: "Acme Ltd"}, "Alice"},
		{"business only", SearchQuery{BusinessName: "Acme Ltd"}, "Acme Ltd"},
		{"blank number falls through", SearchQuery{GasSafeNumber: "   ", EngineerName: "Alice"}, "Alice"},
		{"trims", SearchQuery{GasSafeNumber: " 123456 "}, "123456"},
		{"empty", SearchQuery{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.EffectiveTerm(); got != tt.want {
				t.Errorf("EffectiveTerm() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	q := SearchQuery{}
	err := q.Validate()
	if err == nil {
		t.Fatal("expected validation error for empty query")
	}
	if code := ErrorCode(err); code != ErrCodeInvalidInput {
		t.Errorf("ErrorCode = %q, want %q", code, ErrCodeInvalidInput)
	}
	if IsScrapeFailure(err) {
		t.Error("validation error must not be treated as a scrape failure")
	}

	for _, q := range []SearchQuery{
		{GasSafeNumber: "1"},
		{EngineerName: "Alice"},
		{BusinessName: "Acme Ltd"},
	} {
		if err := q.Validate(); err != nil {
			t.Errorf("Validate(%+v) = %v, want nil", q, err)
		}
	}
}

func TestNewScrapeResult_EmptyDataSerializesAsArray(t *testing.T) {
	b, err := json.Marshal(NewScrapeResult(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"data":[]`) {
		t.Errorf("expected empty data array, got %s", b)
	}
	if !strings.Contains(string(b), `"count":0`) {
		t.Errorf("expected count 0, got %s", b)
	}
}

func TestEngineerRecord_OmitsMissingFields(t *testing.T) {
	b, err := json.Marshal(EngineerRecord{GasSafeNumber: "123456"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"gas_safe_number":"123456"}` {
		t.Errorf("got %s", b)
	}
}
