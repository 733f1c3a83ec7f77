package scraper

import (
	"os"
	"reflect"
	"testing"

	"github.com/use-agent/gassafe/models"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(b)
}

func TestExtractHTML_DropsItemsWithoutGasSafeNumber(t *testing.T) {
	records, err := ExtractHTML(readFixture(t, "results.html"))
	if err != nil {
		t.Fatalf("ExtractHTML: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}

	want := []models.EngineerRecord{
		{
			GasSafeNumber: "123456",
			BusinessName:  "ABC Plumbing Services Ltd",
			EngineerName:  "John Smith",
			Address:       "123 High Street, London, SW1A 1AA",
			Phone:         "020 1234 5678",
			Categories:    "CCN1, CPA1, CENWAT, HTR1, WAT1",
			ExpiryDate:    "31/12/2024",
		},
		{
			GasSafeNumber: "654321",
			BusinessName:  "Boiler Bros",
			Categories:    "WAT1, CCN1",
		},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records mismatch\n got: %+v\nwant: %+v", records, want)
	}
}

func TestExtractHTML_NoItems(t *testing.T) {
	records, err := ExtractHTML(`<html><body><div class="search-results"></div></body></html>`)
	if err != nil {
		t.Fatalf("ExtractHTML: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", records)
	}
}

func TestStripLabel(t *testing.T) {
	tests := []struct {
		in, label, want string
	}{
		{"Gas Safe ID: 123456", gasIDPrefix, "123456"},
		{"  123456 ", gasIDPrefix, "123456"},
		{"Gas Safe ID:", gasIDPrefix, ""},
		{"Expires: 31/12/2024", expiryPrefix, "31/12/2024"},
		{"", expiryPrefix, ""},
	}
	for _, tt := range tests {
		if got := stripLabel(tt.in, tt.label); got != tt.want {
			t.Errorf("stripLabel(%q, %q) = %q, want %q", tt.in, tt.label, got, tt.want)
		}
	}
}
