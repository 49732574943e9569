package giftcard

import (
	"strings"

	"storefront/catalogpage/internal/domain"

	log "github.com/sirupsen/logrus"
)

const pageExtension = ".aspx"

// Request is the request-scoped view the detector reads from and memoizes into
type Request interface {
	AbsolutePath() string
	LanguageCode() string
	GiftCardPage() (isGiftCard, ok bool)
	SetGiftCardPage(isGiftCard bool)
}

type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// IsGiftCardPage reports whether the request targets the storefront's gift-card
// product page. The answer is computed once per request.
func (d *Detector) IsGiftCardPage(req Request, storefront domain.Storefront) bool {
	if isGiftCard, ok := req.GiftCardPage(); ok {
		return isGiftCard
	}

	isGiftCard := Matches(req.AbsolutePath(), req.LanguageCode(), storefront.GiftCardPageLink)
	req.SetGiftCardPage(isGiftCard)

	if isGiftCard {
		log.Debugf("🎁 %s matches gift card page %s", req.AbsolutePath(), storefront.GiftCardPageLink)
	}

	return isGiftCard
}

// Matches compares a request path with the configured gift-card page link.
// The link may carry a site-root prefix the request path lacks, so the link
// only has to end with the normalized request path.
func Matches(requestPath, languageCode, giftCardPageLink string) bool {
	link := trimPageExtension(strings.ToLower(giftCardPageLink))
	if link == "" {
		return false
	}

	path := NormalizePath(requestPath, languageCode)
	if path == "" || path == "/" {
		return false
	}

	return strings.HasSuffix(link, path)
}

// NormalizePath lowercases a request path, drops a trailing page extension and
// removes the first "/<languageCode>" segment so localized and unlocalized
// paths compare equal.
func NormalizePath(requestPath, languageCode string) string {
	path := trimPageExtension(strings.ToLower(requestPath))

	lang := strings.ToLower(strings.TrimSpace(languageCode))
	if lang == "" {
		return path
	}

	return stripSegment(path, "/"+lang)
}

func trimPageExtension(path string) string {
	return strings.TrimSuffix(path, pageExtension)
}

// stripSegment removes the first occurrence of segment that sits on a path boundary.
func stripSegment(path, segment string) string {
	for from := 0; from < len(path); {
		i := strings.Index(path[from:], segment)
		if i < 0 {
			return path
		}
		i += from
		end := i + len(segment)
		if end == len(path) || path[end] == '/' {
			return path[:i] + path[end:]
		}
		from = i + 1
	}
	return path
}
