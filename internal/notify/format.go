package notify

import (
	"fmt"
	"strings"

	"craigsbot/internal/models"
)

// Format renders one listing as a single human-readable notification,
// e.g. "I found a 500sqft 1br apartment in Nob Hill for $2000: <url>".
// Only bedrooms, size, location, price and url affect the message.
func Format(l *models.Listing) string {
	var b strings.Builder
	b.WriteString("I found")

	if l.Bedrooms != nil {
		b.WriteString(" a ")
		if l.Size != nil {
			b.WriteString(*l.Size + " ")
		}
		fmt.Fprintf(&b, "%dbr apartment", *l.Bedrooms)
	} else {
		b.WriteString(" an apartment")
	}

	if l.Location != nil {
		b.WriteString(" in " + *l.Location)
	}
	if l.Price != nil {
		fmt.Fprintf(&b, " for $%d", *l.Price)
	}

	b.WriteString(": " + l.URL)
	return b.String()
}
