package resolver

import (
	"context"
	"errors"
	"fmt"

	"storefront/catalogpage/internal/domain"
	"storefront/catalogpage/internal/giftcard"

	log "github.com/sirupsen/logrus"
)

// SiteRoot is where requests for catalog items that do not exist are sent.
const SiteRoot = "/"

// PageClassifier determines the page type of a content item
type PageClassifier interface {
	Classify(ctx context.Context, item *domain.ContentItem) (domain.ItemType, error)
}

// IDExtractor pulls a catalog item id out of a raw request URL
type IDExtractor interface {
	ExtractID(rawURL string) string
}

// GiftCardDetector decides whether the request targets the gift-card product page
type GiftCardDetector interface {
	IsGiftCardPage(req giftcard.Request, storefront domain.Storefront) bool
}

// StorefrontProvider returns the storefront of the site being served
type StorefrontProvider interface {
	CurrentStorefront(ctx context.Context) (domain.Storefront, error)
}

// Request is the per-request state the step reads and writes
type Request interface {
	giftcard.Request
	RawURL() string
	CurrentItem() *domain.ContentItem
	CurrentCatalogItem() *domain.CatalogItem
	SetCurrentCatalogItem(item *domain.CatalogItem)
}

// OutcomeKind enumerates what a resolution pass did
type OutcomeKind int

const (
	OutcomeNoOp OutcomeKind = iota
	OutcomeResolved
	OutcomeRedirected
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeResolved:
		return "resolved"
	case OutcomeRedirected:
		return "redirected"
	default:
		return "no-op"
	}
}

// Outcome is the result of one pass. Location is set for redirects, Item for
// resolved pages.
type Outcome struct {
	Kind     OutcomeKind
	Location string
	Item     *domain.CatalogItem
}

// Dependencies lists the collaborators of a Step. All of them are required.
type Dependencies struct {
	Classifier  PageClassifier
	Extractor   IDExtractor
	GiftCards   GiftCardDetector
	Search      SearchProvider
	Storefronts StorefrontProvider
}

// Step resolves the catalog item behind category and product pages
type Step struct {
	classifier  PageClassifier
	extractor   IDExtractor
	giftCards   GiftCardDetector
	resolver    *CatalogItemResolver
	storefronts StorefrontProvider
}

func NewStep(deps Dependencies) (*Step, error) {
	var missing []error
	if deps.Classifier == nil {
		missing = append(missing, errors.New("page classifier is required"))
	}
	if deps.Extractor == nil {
		missing = append(missing, errors.New("url id extractor is required"))
	}
	if deps.GiftCards == nil {
		missing = append(missing, errors.New("gift card detector is required"))
	}
	if deps.Search == nil {
		missing = append(missing, errors.New("search provider is required"))
	}
	if deps.Storefronts == nil {
		missing = append(missing, errors.New("storefront provider is required"))
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("failed to create resolution step: %w", errors.Join(missing...))
	}

	return &Step{
		classifier:  deps.Classifier,
		extractor:   deps.Extractor,
		giftCards:   deps.GiftCards,
		resolver:    NewCatalogItemResolver(deps.Search),
		storefronts: deps.Storefronts,
	}, nil
}

// Process runs one resolution pass for the request. It is a no-op for pages
// without a content item, for pages that already carry a catalog item and for
// pages that are neither categories nor products. A catalog item that cannot be
// found yields a redirect to the site root and leaves the page context alone.
func (s *Step) Process(ctx context.Context, req Request) (Outcome, error) {
	item := req.CurrentItem()
	if item == nil || req.CurrentCatalogItem() != nil {
		return Outcome{Kind: OutcomeNoOp}, nil
	}

	itemType, err := s.classifier.Classify(ctx, item)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to classify item %s: %w", item.ID, err)
	}
	if !itemType.IsCatalogPage() {
		return Outcome{Kind: OutcomeNoOp}, nil
	}

	storefront, err := s.storefronts.CurrentStorefront(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to get current storefront: %w", err)
	}

	id, isProduct := s.catalogItemID(req, storefront, itemType)
	if id == "" {
		log.Debugf("No catalog item id in %s, skipping resolution", req.RawURL())
		return Outcome{Kind: OutcomeNoOp}, nil
	}

	catalogItem, err := s.resolver.Resolve(ctx, id, storefront.Catalog, isProduct)
	if err != nil {
		return Outcome{}, err
	}

	if catalogItem == nil {
		log.Warnf("🔍 %s %s not found in catalog %s, redirecting %s to %s",
			itemType, id, storefront.Catalog, req.RawURL(), SiteRoot)
		return Outcome{Kind: OutcomeRedirected, Location: SiteRoot}, nil
	}

	req.SetCurrentCatalogItem(catalogItem)
	log.Debugf("✅ Resolved %s %s for %s", itemType, catalogItem.ID, req.RawURL())

	return Outcome{Kind: OutcomeResolved, Item: catalogItem}, nil
}

func (s *Step) catalogItemID(req Request, storefront domain.Storefront, itemType domain.ItemType) (string, bool) {
	if s.giftCards.IsGiftCardPage(req, storefront) {
		return storefront.GiftCardProductID, true
	}

	return s.extractor.ExtractID(req.RawURL()), itemType == domain.ItemTypeProduct
}
