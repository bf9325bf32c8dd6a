package feed

import (
	"github.com/tidwall/gjson"
)

// ImageRule names one place an item may carry its thumbnail URL
type ImageRule struct {
	Name string
	Path string
}

// Extract returns the URL at the rule's path, if present and non-empty
func (r ImageRule) Extract(item gjson.Result) (string, bool) {
	v := item.Get(r.Path)
	if !v.Exists() || v.String() == "" {
		return "", false
	}
	return v.String(), true
}

// DefaultImageRules returns the 1.78 tile rules in preference order.
// Series artwork wins over program artwork, which wins over the generic tile.
func DefaultImageRules() []ImageRule {
	return []ImageRule{
		{Name: "series", Path: `image.tile.1\.78.series.default.url`},
		{Name: "program", Path: `image.tile.1\.78.program.default.url`},
		{Name: "default", Path: `image.tile.1\.78.default.default.url`},
	}
}

// ExtractImageURL applies rules in order and returns the first match
func ExtractImageURL(item gjson.Result, rules []ImageRule) (string, bool) {
	for _, rule := range rules {
		if url, ok := rule.Extract(item); ok {
			return url, true
		}
	}
	return "", false
}
