package client

import (
	"fmt"
	"regexp"
	"strings"

	"storefront/catalogpage/internal/domain"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

var categoryIDRegex = regexp.MustCompile(`/categories/([^/?#]+)`)

type itemParser struct {
	baseURL string
}

func newItemParser(baseURL string) *itemParser {
	return &itemParser{
		baseURL: baseURL,
	}
}

// ParseItem reads a catalog item page rendered by the search backend
func (p *itemParser) ParseItem(html, id, catalogName string, isProduct bool) (*domain.CatalogItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	// The backend renders the canonical id; an item page without one is an error page
	pageID := strings.TrimSpace(doc.Find("[data-item-id]").First().AttrOr("data-item-id", ""))
	if pageID == "" {
		return nil, fmt.Errorf("no item id found on page")
	}
	if !strings.EqualFold(pageID, id) {
		log.Warnf("Catalog page for %s reports item id %s", id, pageID)
	}

	item := &domain.CatalogItem{
		ID:               pageID,
		Catalog:          catalogName,
		IsProduct:        isProduct,
		Name:             strings.TrimSpace(doc.Find("h1").First().Text()),
		ParentCategories: p.extractBreadcrumb(doc),
	}

	if href, ok := doc.Find("link[rel='canonical']").Attr("href"); ok {
		item.URL = p.absolute(href)
	}

	if src, ok := doc.Find("img.item-image").First().Attr("src"); ok {
		item.ImageURL = p.absolute(src)
	}

	log.Debugf("Parsed catalog item %s (%s) with %d parent categories", item.ID, item.Name, len(item.ParentCategories))
	return item, nil
}

func (p *itemParser) extractBreadcrumb(doc *goquery.Document) []domain.CategoryRef {
	var categories []domain.CategoryRef

	doc.Find("nav.breadcrumb a[href*='/categories/']").Each(func(i int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		name := strings.TrimSpace(link.Text())
		if name == "" {
			return
		}

		matches := categoryIDRegex.FindStringSubmatch(href)
		if len(matches) < 2 {
			return
		}

		categories = append(categories, domain.CategoryRef{
			ID:   matches[1],
			Name: name,
			URL:  p.absolute(href),
		})
	})

	return categories
}

func (p *itemParser) absolute(ref string) string {
	switch {
	case strings.HasPrefix(ref, "http"):
		return ref
	case strings.HasPrefix(ref, "//"):
		return "https:" + ref
	case strings.HasPrefix(ref, "/"):
		return p.baseURL + ref
	default:
		return ref
	}
}
