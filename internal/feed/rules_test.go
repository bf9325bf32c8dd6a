package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestExtractImageURL(t *testing.T) {
	tests := []struct {
		name   string
		item   string
		want   string
		wantOK bool
	}{
		{
			name:   "series preferred",
			item:   `{"image":{"tile":{"1.78":{"series":{"default":{"url":"s"}},"default":{"default":{"url":"d"}}}}}}`,
			want:   "s",
			wantOK: true,
		},
		{
			name:   "program before default",
			item:   `{"image":{"tile":{"1.78":{"default":{"default":{"url":"d"}},"program":{"default":{"url":"p"}}}}}}`,
			want:   "p",
			wantOK: true,
		},
		{
			name:   "default only",
			item:   `{"image":{"tile":{"1.78":{"default":{"default":{"url":"d"}}}}}}`,
			want:   "d",
			wantOK: true,
		},
		{
			name:   "empty url falls through",
			item:   `{"image":{"tile":{"1.78":{"series":{"default":{"url":""}},"default":{"default":{"url":"d"}}}}}}`,
			want:   "d",
			wantOK: true,
		},
		{
			name: "other aspect ignored",
			item: `{"image":{"tile":{"0.71":{"series":{"default":{"url":"s"}}}}}}`,
		},
		{
			name: "no image",
			item: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractImageURL(gjson.Parse(tt.item), DefaultImageRules())
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractImageURL_NoRules(t *testing.T) {
	_, ok := ExtractImageURL(gjson.Parse(`{"image":{}}`), nil)
	assert.False(t, ok)
}
