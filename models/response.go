package models

// EngineerRecord is one registered engineer as listed by the register.
// GasSafeNumber is always set; every other field is omitted when the
// result markup did not carry it.
type EngineerRecord struct {
	GasSafeNumber string `json:"gas_safe_number"`
	BusinessName  string `json:"business_name,omitempty"`
	EngineerName  string `json:"engineer_name,omitempty"`
	Address       string `json:"address,omitempty"`
	Phone         string `json:"phone,omitempty"`

	// Categories are the work category codes in page order, joined with ", ".
	Categories string `json:"categories,omitempty"`

	// ExpiryDate is the raw display text, e.g. "31/12/2024".
	ExpiryDate string `json:"expiry_date,omitempty"`
}

// ScrapeResult is the response for POST /api/gas-safe-scrape.
type ScrapeResult struct {
	// Success is false when the scrape ran but could not complete
	// (timeouts, navigation or extraction failures).
	Success bool `json:"success"`

	Data  []EngineerRecord `json:"data"`
	Count int              `json:"count"`

	// Error is a human readable failure description when Success is false.
	Error string `json:"error,omitempty"`

	// Message carries informational text such as "No results found".
	Message string `json:"message,omitempty"`

	// Note discloses synthetic data in degraded mode.
	Note string `json:"note,omitempty"`
}

// NewScrapeResult builds a successful result; Count always matches Data.
func NewScrapeResult(records []EngineerRecord) *ScrapeResult {
	if records == nil {
		records = []EngineerRecord{}
	}
	return &ScrapeResult{
		Success: true,
		Data:    records,
		Count:   len(records),
	}
}

// FailedScrapeResult builds a success=false result for a pipeline failure.
func FailedScrapeResult(message string) *ScrapeResult {
	return &ScrapeResult{
		Success: false,
		Data:    []EngineerRecord{},
		Count:   0,
		Error:   message,
	}
}

// ErrorResponse is the body of every non-200 API response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// PoolStats reports the state of the browser session pool.
type PoolStats struct {
	MaxSessions    int `json:"max_sessions"`
	ActiveSessions int `json:"active_sessions"`
}
