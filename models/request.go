package models

import "strings"

// SearchQuery is the payload for POST /api/gas-safe-scrape.
//
// All fields are optional but at least one must be non-empty. Only one of
// them is ever typed into the register's search box; see EffectiveTerm.
type SearchQuery struct {
	GasSafeNumber string `json:"gas_safe_number,omitempty"`
	EngineerName  string `json:"engineer_name,omitempty"`
	BusinessName  string `json:"business_name,omitempty"`
}

// MissingTermMessage is returned when a query carries no usable field.
const MissingTermMessage = "Please provide engineer_name, gas_safe_number, or business_name"

// EffectiveTerm picks the search term by priority:
// gas_safe_number > engineer_name > business_name.
func (q *SearchQuery) EffectiveTerm() string {
	for _, v := range []string{q.GasSafeNumber, q.EngineerName, q.BusinessName} {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}

// Validate rejects a query with no usable field.
func (q *SearchQuery) Validate() error {
	if q.EffectiveTerm() == "" {
		return NewScrapeError(ErrCodeInvalidInput, MissingTermMessage, nil)
	}
	return nil
}
