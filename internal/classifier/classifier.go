package classifier

import (
	"context"
	"fmt"

	"storefront/catalogpage/internal/domain"
)

// LineageProvider returns the template lineage of a content item
type LineageProvider interface {
	TemplateLineage(ctx context.Context, item *domain.ContentItem) (domain.TemplateLineage, error)
}

// Classify maps a template lineage to a page type. Category pages win over
// product pages when a template inherits from both.
func Classify(lineage domain.TemplateLineage, categoryTemplateID, productTemplateID string) domain.ItemType {
	switch {
	case lineage.InheritsFrom(categoryTemplateID):
		return domain.ItemTypeCategory
	case lineage.InheritsFrom(productTemplateID):
		return domain.ItemTypeProduct
	default:
		return domain.ItemTypeUnknown
	}
}

type Classifier struct {
	lineages           LineageProvider
	categoryTemplateID string
	productTemplateID  string
}

func NewClassifier(lineages LineageProvider, categoryTemplateID, productTemplateID string) *Classifier {
	return &Classifier{
		lineages:           lineages,
		categoryTemplateID: categoryTemplateID,
		productTemplateID:  productTemplateID,
	}
}

// Classify fetches the item's lineage and maps it to a page type.
func (c *Classifier) Classify(ctx context.Context, item *domain.ContentItem) (domain.ItemType, error) {
	lineage, err := c.lineages.TemplateLineage(ctx, item)
	if err != nil {
		return domain.ItemTypeUnknown, fmt.Errorf("failed to get template lineage for item %s: %w", item.ID, err)
	}

	return Classify(lineage, c.categoryTemplateID, c.productTemplateID), nil
}
