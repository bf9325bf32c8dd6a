package domain

// Item is one catalog entry, reduced to the thumbnail it is displayed with
type Item struct {
	ImageURL string // 1.78 tile image
}

// Set is a named collection of catalog items (one row in the grid)
type Set struct {
	Title string
	RefID string // Set endpoint reference, empty when items were inline
	Items []Item
}

// NewSet creates an empty set with the given title
func NewSet(title string) Set {
	return Set{Title: title}
}

// ImageURLs returns the image URL of every item, in item order
func (s Set) ImageURLs() []string {
	urls := make([]string, len(s.Items))
	for i, item := range s.Items {
		urls[i] = item.ImageURL
	}
	return urls
}

// Len returns the number of items in the set
func (s Set) Len() int {
	return len(s.Items)
}
