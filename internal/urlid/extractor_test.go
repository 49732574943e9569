package urlid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingDecoder struct {
	tokens []string
}

func (d *recordingDecoder) DecodeSegment(token string) string {
	d.tokens = append(d.tokens, token)
	return "id:" + token
}

func TestExtractID(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
		want   string
	}{
		{"plain segment", "/en/category/widgets", "id:widgets"},
		{"trailing slash", "/en/category/widgets/", "id:widgets"},
		{"query string", "/en/category/widgets?x=1", "id:widgets"},
		{"trailing slash before query", "/en/category/widgets?x=1&y=2", "id:widgets"},
		{"single segment", "/widgets", ""},
		{"single segment with trailing slash", "/widgets/", ""},
		{"root", "/", ""},
		{"empty", "", ""},
		{"query only segment", "/en/category/?x=1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(&recordingDecoder{})
			assert.Equal(t, tt.want, e.ExtractID(tt.rawURL))
		})
	}
}

func TestExtractIDTrailingSlashEquivalent(t *testing.T) {
	e := NewExtractor(&recordingDecoder{})
	assert.Equal(t, e.ExtractID("/en/category/widgets"), e.ExtractID("/en/category/widgets/"))
}

func TestExtractIDDropsQueryBeforeDecoding(t *testing.T) {
	d := &recordingDecoder{}
	NewExtractor(d).ExtractID("/en/category/widgets?x=1")
	assert.Equal(t, []string{"widgets"}, d.tokens)
}

func TestExtractIDSkipsDecoderWithoutSegment(t *testing.T) {
	d := &recordingDecoder{}
	NewExtractor(d).ExtractID("/widgets")
	assert.Empty(t, d.tokens)
}

func TestSegmentCodec(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"w-100", "w-100"},
		{"blue-widget_w-100", "w-100"},
		{"gift_ideas_cat-7", "cat-7"},
		{"Blue%20Widget_W-100", "W-100"},
		{"habitat_resources.aspx", "resources"},
		{"bad%zzescape", "bad%zzescape"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentCodec{}.DecodeSegment(tt.token))
		})
	}
}
