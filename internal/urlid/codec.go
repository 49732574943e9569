package urlid

import (
	"net/url"
	"strings"
)

const pageExtension = ".aspx"

// SegmentCodec decodes storefront friendly URL segments. Segments come in
// two shapes: a bare id ("w-100") or "<name>_<id>" ("blue-widget_w-100").
type SegmentCodec struct{}

func (SegmentCodec) DecodeSegment(token string) string {
	if unescaped, err := url.PathUnescape(token); err == nil {
		token = unescaped
	}

	if len(token) > len(pageExtension) && strings.EqualFold(token[len(token)-len(pageExtension):], pageExtension) {
		token = token[:len(token)-len(pageExtension)]
	}

	if i := strings.LastIndex(token, "_"); i >= 0 {
		token = token[i+1:]
	}

	return strings.TrimSpace(token)
}
