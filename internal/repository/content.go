package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/catalogpage/internal/domain"

	"github.com/jackc/pgx/v5"
)

type ContentRepository interface {
	ItemByPath(ctx context.Context, site, path string) (*domain.ContentItem, error)
}

type contentRepository struct {
	db Querier
}

func NewContentRepository(db Querier) ContentRepository {
	return &contentRepository{
		db: db,
	}
}

// ItemByPath returns the content item published at path, nil when there is none
func (r *contentRepository) ItemByPath(ctx context.Context, site, path string) (*domain.ContentItem, error) {
	query := `
	SELECT id, name, path, template_id
	FROM content_items
	WHERE site = $1 AND lower(path) = lower($2)`

	var item domain.ContentItem
	err := r.db.QueryRow(ctx, query, site, path).Scan(&item.ID, &item.Name, &item.Path, &item.TemplateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No item at this path
		}
		return nil, fmt.Errorf("failed to get content item %s for site %s: %w", path, site, err)
	}

	return &item, nil
}
