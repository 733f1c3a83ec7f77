package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/gassafe/models"
)

// Result markup of the register's search page. One .result-item per engineer.
var (
	resultItemSel   = cascadia.MustCompile(".result-item")
	gasIDSel        = cascadia.MustCompile(".gas-id")
	businessNameSel = cascadia.MustCompile(".business-name")
	engineerNameSel = cascadia.MustCompile(".engineer-name")
	addressSel      = cascadia.MustCompile(".address")
	phoneSel        = cascadia.MustCompile(".phone")
	categorySel     = cascadia.MustCompile(".work-categories li")
	expiryDateSel   = cascadia.MustCompile(".expiry-date")
)

const (
	gasIDPrefix  = "Gas Safe ID:"
	expiryPrefix = "Expires:"
)

// ExtractHTML parses a rendered results page and extracts its records.
func ExtractHTML(rawHTML string) ([]models.EngineerRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeExtraction, "failed to parse results page", err)
	}
	return Extract(doc), nil
}

// Extract reads every result item of doc in page order. Items without a
// Gas Safe number are skipped.
func Extract(doc *goquery.Document) []models.EngineerRecord {
	records := []models.EngineerRecord{}

	doc.FindMatcher(resultItemSel).Each(func(_ int, item *goquery.Selection) {
		rec := models.EngineerRecord{
			GasSafeNumber: stripLabel(text(item, gasIDSel), gasIDPrefix),
			BusinessName:  text(item, businessNameSel),
			EngineerName:  text(item, engineerNameSel),
			Address:       text(item, addressSel),
			Phone:         text(item, phoneSel),
			Categories:    categories(item),
			ExpiryDate:    stripLabel(text(item, expiryDateSel), expiryPrefix),
		}
		if rec.GasSafeNumber == "" {
			return
		}
		records = append(records, rec)
	})

	return records
}

// text returns the trimmed text of the first match, or "" when absent.
func text(item *goquery.Selection, sel cascadia.Selector) string {
	found := item.FindMatcher(sel)
	if found.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(found.First().Text())
}

// categories joins the work category list items in DOM order.
func categories(item *goquery.Selection) string {
	var codes []string
	item.FindMatcher(categorySel).Each(func(_ int, li *goquery.Selection) {
		if code := strings.TrimSpace(li.Text()); code != "" {
			codes = append(codes, code)
		}
	})
	return strings.Join(codes, ", ")
}

// stripLabel removes a display label such as "Expires:" from a value.
func stripLabel(s, label string) string {
	return strings.TrimSpace(strings.Replace(s, label, "", 1))
}
