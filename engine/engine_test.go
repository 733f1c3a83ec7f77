package engine

import (
	"context"
	"testing"

	"github.com/use-agent/gassafe/models"
)

func TestDegradedEngine_EchoesQuery(t *testing.T) {
	res, err := NewDegradedEngine().Scrape(context.Background(), &models.SearchQuery{BusinessName: "Acme Ltd"})
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}

	if !res.Success || res.Count != 1 || len(res.Data) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Data[0].BusinessName != "Acme Ltd" {
		t.Errorf("BusinessName = %q, want Acme Ltd", res.Data[0].BusinessName)
	}
	if res.Data[0].GasSafeNumber != placeholder.GasSafeNumber {
		t.Errorf("GasSafeNumber = %q, want placeholder", res.Data[0].GasSafeNumber)
	}
	if res.Note == "" {
		t.Error("expected a note disclosing synthetic data")
	}
}

func TestDegradedEngine_Deterministic(t *testing.T) {
	q := &models.SearchQuery{GasSafeNumber: "123456"}
	a, _ := NewDegradedEngine().Scrape(context.Background(), q)
	b, _ := NewDegradedEngine().Scrape(context.Background(), q)
	if a.Data[0] != b.Data[0] {
		t.Errorf("results differ: %+v vs %+v", a.Data[0], b.Data[0])
	}

	want := placeholder
	if a.Data[0] != want {
		t.Errorf("got %+v, want %+v", a.Data[0], want)
	}
}

func TestDegradedEngine_RejectsEmptyQuery(t *testing.T) {
	_, err := NewDegradedEngine().Scrape(context.Background(), &models.SearchQuery{})
	if models.ErrorCode(err) != models.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestLiveEngine_DelegatesToFetchFunc(t *testing.T) {
	var got *models.SearchQuery
	e := NewLiveEngine(func(_ context.Context, q *models.SearchQuery) (*models.ScrapeResult, error) {
		got = q
		return models.NewScrapeResult(nil), nil
	})

	q := &models.SearchQuery{EngineerName: "Alice"}
	res, err := e.Scrape(context.Background(), q)
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if got != q {
		t.Error("fetchFunc did not receive the query")
	}
	if !res.Success || res.Count != 0 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestNew(t *testing.T) {
	live := func(context.Context, *models.SearchQuery) (*models.ScrapeResult, error) { return nil, nil }

	tests := []struct {
		mode    string
		live    LiveFetchFunc
		want    string
		wantErr bool
	}{
		{ModeLive, live, ModeLive, false},
		{ModeDegraded, nil, ModeDegraded, false},
		{ModeLive, nil, "", true},
		{"mock", live, "", true},
	}

	for _, tt := range tests {
		s, err := New(tt.mode, tt.live)
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
			continue
		}
		if err == nil && s.Name() != tt.want {
			t.Errorf("New(%q).Name() = %q, want %q", tt.mode, s.Name(), tt.want)
		}
	}
}
