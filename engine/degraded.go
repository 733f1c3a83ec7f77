package engine

import (
	"context"
	"strings"

	"github.com/use-agent/gassafe/models"
)

// DegradedNote tells callers the payload is not from the register.
const DegradedNote = "Synthetic data: live browser automation is disabled in this deployment"

// placeholder fills every field the caller did not supply.
var placeholder = models.EngineerRecord{
	GasSafeNumber: "123456",
	BusinessName:  "ABC Plumbing Services Ltd",
	EngineerName:  "John Smith",
	Address:       "123 High Street, London, SW1A 1AA",
	Phone:         "020 1234 5678",
	Categories:    "CCN1, CPA1, CENWAT, HTR1, WAT1",
	ExpiryDate:    "31/12/2024",
}

// DegradedEngine answers without a browser. It returns exactly one
// deterministic record that echoes the supplied query fields.
type DegradedEngine struct{}

// NewDegradedEngine creates a DegradedEngine.
func NewDegradedEngine() *DegradedEngine {
	return &DegradedEngine{}
}

func (e *DegradedEngine) Name() string { return ModeDegraded }

func (e *DegradedEngine) Scrape(_ context.Context, query *models.SearchQuery) (*models.ScrapeResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rec := placeholder
	if v := strings.TrimSpace(query.GasSafeNumber); v != "" {
		rec.GasSafeNumber = v
	}
	if v := strings.TrimSpace(query.EngineerName); v != "" {
		rec.EngineerName = v
	}
	if v := strings.TrimSpace(query.BusinessName); v != "" {
		rec.BusinessName = v
	}

	res := models.NewScrapeResult([]models.EngineerRecord{rec})
	res.Note = DegradedNote
	return res, nil
}
