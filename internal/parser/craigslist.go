package parser

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"craigsbot/internal/config"
	"craigsbot/internal/models"

	"github.com/PuerkitoBio/goquery"
)

var (
	// subtitleRe pulls a bedroom count, an optional size token, and a
	// parenthesized location out of the row subtitle,
	// e.g. "1br 500ft2 (nob hill)".
	subtitleRe = regexp.MustCompile(`(?i)(\S+)br\D*(\d+\S+)?.*\((.*)\)`)
	nonDigitRe = regexp.MustCompile(`\D`)
)

// Extractor turns one raw search-results document into structured listings
// for a single configured source.
type Extractor struct {
	src config.SourceConfig
	now func() time.Time // swapped in tests for year-stable dates
}

// NewExtractor creates an extractor for the given source
func NewExtractor(src config.SourceConfig) *Extractor {
	return &Extractor{src: src, now: time.Now}
}

// Extract parses the full body of a search-results page into listings,
// in document order. Rows that fail to parse are logged and skipped;
// they never abort the remaining rows.
func (e *Extractor) Extract(body string) ([]*models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	var listings []*models.Listing
	doc.Find("div.content p.row").Each(func(i int, row *goquery.Selection) {
		if e.skipRow(row) {
			return
		}
		listing, err := e.parseRow(row)
		if err != nil {
			log.Printf("Skipping row %d: %v", i, err)
			return
		}
		listings = append(listings, listing)
	})

	return listings, nil
}

// skipRow applies the source-variant row filters: repost markers and the
// subcategory link prefix.
func (e *Extractor) skipRow(row *goquery.Selection) bool {
	if e.src.SkipReposts {
		if _, ok := row.Attr("data-repost-of"); ok {
			return true
		}
	}
	if e.src.PathPrefix != "" {
		href, ok := row.Find("a").First().Attr("href")
		if !ok || !strings.HasPrefix(strings.ToLower(href), strings.ToLower(e.src.PathPrefix)) {
			return true
		}
	}
	return false
}

func (e *Extractor) parseRow(row *goquery.Selection) (*models.Listing, error) {
	pid, ok := row.Attr("data-pid")
	if !ok {
		return nil, fmt.Errorf("row has no data-pid")
	}
	id, err := strconv.Atoi(strings.TrimSpace(pid))
	if err != nil {
		return nil, fmt.Errorf("invalid listing id %q: %w", pid, err)
	}

	href, ok := row.Find("a").First().Attr("href")
	if !ok || href == "" {
		return nil, fmt.Errorf("listing %d has no link", id)
	}

	postedOn, err := e.parseDate(row.Find("span.date").Text())
	if err != nil {
		return nil, fmt.Errorf("listing %d: %w", id, err)
	}

	listing := &models.Listing{
		ID:       id,
		Title:    row.Find(fmt.Sprintf("a[data-id=%q]", pid)).First().Text(),
		URL:      e.src.BaseURL() + href,
		PostedOn: postedOn,
	}

	if price, ok := parsePrice(row.Find("span.price").Text()); ok {
		listing.Price = &price
	}

	// Bedrooms, size and location come from one subtitle match and are
	// populated together or not at all.
	if m := subtitleRe.FindStringSubmatch(row.Find("span.l2").Text()); m != nil {
		if bedrooms, err := strconv.Atoi(m[1]); err == nil {
			listing.Bedrooms = &bedrooms
			if m[2] != "" {
				size := m[2]
				listing.Size = &size
			}
			if location := strings.TrimSpace(m[3]); location != "" {
				listing.Location = &location
			}
		}
	}

	return listing, nil
}

// parsePrice reduces a price fragment like "$2,000" to its digits. A
// fragment with no digits at all has no price.
func parsePrice(text string) (int, bool) {
	digits := nonDigitRe.ReplaceAllString(text, "")
	if digits == "" {
		return 0, false
	}
	price, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return price, true
}

// parseDate reconstructs a full ISO date from a short month-day fragment
// like "Mar 5", assuming the current calendar year. The page never states
// a year, so a December fragment read during a January scan is misdated;
// that matches the source behavior.
func (e *Extractor) parseDate(text string) (string, error) {
	fragment := strings.Join(strings.Fields(text), " ")
	if fragment == "" {
		return "", fmt.Errorf("row has no posting date")
	}
	t, err := time.Parse("Jan 2 2006", fmt.Sprintf("%s %d", fragment, e.now().Year()))
	if err != nil {
		return "", fmt.Errorf("invalid posting date %q: %w", fragment, err)
	}
	return t.Format("2006-01-02"), nil
}
