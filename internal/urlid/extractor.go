package urlid

import "strings"

// Decoder turns the last URL segment into a catalog item id
type Decoder interface {
	DecodeSegment(token string) string
}

type Extractor struct {
	decoder Decoder
}

func NewExtractor(decoder Decoder) *Extractor {
	return &Extractor{decoder: decoder}
}

// ExtractID returns the catalog item id carried by the last segment of a raw
// request URL such as /en/shop/widgets_w-100?color=red. A URL without a
// segment past the root yields an empty id.
func (e *Extractor) ExtractID(rawURL string) string {
	url := strings.TrimSuffix(rawURL, "/")

	slash := strings.LastIndex(url, "/")
	if slash <= 0 {
		return ""
	}

	segment := url[slash+1:]
	if query := strings.Index(segment, "?"); query >= 0 {
		segment = segment[:query]
	}
	if segment == "" {
		return ""
	}

	return e.decoder.DecodeSegment(segment)
}
