package parser

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DebugDocument analyzes a fetched document's structure for debugging.
// Useful when a scan suddenly parses zero rows: it reports how many
// elements each selector in the extraction path matches, so a page
// layout change is visible in the logs without saving the body.
func DebugDocument(body string) {
	log.Printf("=== DEBUG MODE: Analyzing page structure ===")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		log.Printf("Failed to parse document: %v", err)
		return
	}

	if title := doc.Find("title").First().Text(); title != "" {
		log.Printf("Page title: %s", title)
	}

	// Selectors the extractor depends on, plus likely replacements.
	selectors := []string{
		"div.content",
		"div.content p.row",
		"p.row",
		"li.result-row",
		"span.price",
		"span.l2",
		"span.date",
		"a[data-id]",
	}

	for _, selector := range selectors {
		sel := doc.Find(selector)
		log.Printf("Selector '%s': found %d elements", selector, sel.Length())
		if sel.Length() > 0 {
			text := strings.TrimSpace(sel.First().Text())
			if len(text) > 100 {
				text = text[:100] + "..."
			}
			if text != "" {
				log.Printf("  First element text: %s", text)
			}
		}
	}

	// Check if we're blocked or redirected
	bodyText := doc.Find("body").Text()
	blockingKeywords := []string{
		"access denied",
		"captcha",
		"blocked",
		"this IP has been automatically blocked",
		"robot",
	}
	for _, keyword := range blockingKeywords {
		if strings.Contains(strings.ToLower(bodyText), strings.ToLower(keyword)) {
			log.Printf("WARNING: Page might be blocked - found keyword: %s", keyword)
		}
	}

	log.Printf("=== END DEBUG ===")
}
