package models

// Listing represents one posted ad extracted from a search-results page.
// The id is assigned by the source site and is unique within a source.
// Optional fields are nil when the page carried no parsable value for them;
// no optional field implies another.
type Listing struct {
	ID       int
	Title    string
	URL      string
	Price    *int
	Bedrooms *int
	Size     *string
	Location *string
	PostedOn string // ISO date, YYYY-MM-DD
}

// Record is the row shape the store persists. It matches the listings
// table columns; PostedOn travels as the posted_on column.
type Record struct {
	ID       int
	Title    string
	URL      string
	Price    *int
	Bedrooms *int
	Size     *string
	Location *string
	PostedOn string
}

// ToRecord converts a listing into its store representation.
func (l *Listing) ToRecord() Record {
	return Record{
		ID:       l.ID,
		Title:    l.Title,
		URL:      l.URL,
		Price:    l.Price,
		Bedrooms: l.Bedrooms,
		Size:     l.Size,
		Location: l.Location,
		PostedOn: l.PostedOn,
	}
}
