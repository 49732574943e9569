// Package requestctx holds the state that lives for exactly one inbound request:
// what was asked for, the page being rendered, the catalog item resolved for it
// and flags memoized while resolving.
package requestctx

import (
	"context"
	"net/http"

	"storefront/catalogpage/internal/domain"
)

// Request is created once per inbound request and must not outlive it.
type Request struct {
	rawURL       string
	absolutePath string
	languageCode string

	item        *domain.ContentItem
	catalogItem *domain.CatalogItem

	giftCardPage    bool
	giftCardPageSet bool
}

// New builds the request state. rawURL keeps the query string, absolutePath does not.
func New(rawURL, absolutePath, languageCode string, item *domain.ContentItem) *Request {
	return &Request{
		rawURL:       rawURL,
		absolutePath: absolutePath,
		languageCode: languageCode,
		item:         item,
	}
}

// FromHTTP builds the request state from an incoming HTTP request.
func FromHTTP(r *http.Request, languageCode string, item *domain.ContentItem) *Request {
	return New(r.URL.RequestURI(), r.URL.Path, languageCode, item)
}

func (r *Request) RawURL() string       { return r.rawURL }
func (r *Request) AbsolutePath() string { return r.absolutePath }
func (r *Request) LanguageCode() string { return r.languageCode }

// CurrentItem returns the content item being rendered, nil when the path has none.
func (r *Request) CurrentItem() *domain.ContentItem { return r.item }

// CurrentCatalogItem returns the catalog item resolved for the page, if any.
func (r *Request) CurrentCatalogItem() *domain.CatalogItem { return r.catalogItem }

// SetCurrentCatalogItem fills the catalog item slot. Only the first write sticks.
func (r *Request) SetCurrentCatalogItem(item *domain.CatalogItem) {
	if r.catalogItem != nil {
		return
	}
	r.catalogItem = item
}

// GiftCardPage returns the memoized gift-card flag and whether it was computed.
func (r *Request) GiftCardPage() (isGiftCard, ok bool) {
	return r.giftCardPage, r.giftCardPageSet
}

func (r *Request) SetGiftCardPage(isGiftCard bool) {
	r.giftCardPage = isGiftCard
	r.giftCardPageSet = true
}

type ctxKey struct{}

// WithRequest stores the request state in ctx
func WithRequest(ctx context.Context, r *Request) context.Context {
	return context.WithValue(ctx, ctxKey{}, r)
}

// FromContext returns the request state, nil when none was attached
func FromContext(ctx context.Context) *Request {
	r, _ := ctx.Value(ctxKey{}).(*Request)
	return r
}
