package model

// VideoFilter narrows the public video listing.
type VideoFilter struct {
	OwnerID  string
	Query    string
	SortBy   string
	SortType string
	// IDs, when non-nil, restricts the listing to full-text search hits.
	IDs []string
}
