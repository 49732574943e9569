package repository

import (
	"context"
	"fmt"

	"storefront/catalogpage/internal/domain"
)

type TemplateRepository interface {
	TemplateLineage(ctx context.Context, item *domain.ContentItem) (domain.TemplateLineage, error)
}

type templateRepository struct {
	db Querier
}

func NewTemplateRepository(db Querier) TemplateRepository {
	return &templateRepository{
		db: db,
	}
}

// TemplateLineage returns the item's template followed by its base templates,
// nearest first. Templates may inherit from several bases, so a base reachable
// through more than one path is listed once at its shortest depth.
func (r *templateRepository) TemplateLineage(ctx context.Context, item *domain.ContentItem) (domain.TemplateLineage, error) {
	if item.TemplateID == "" {
		return nil, nil
	}

	query := `
	WITH RECURSIVE lineage (template_id, depth) AS (
		SELECT $1::text, 0
		UNION
		SELECT b.base_template_id, l.depth + 1
		FROM template_bases b
		JOIN lineage l ON b.template_id = l.template_id
		WHERE l.depth < 32
	)
	SELECT template_id
	FROM lineage
	GROUP BY template_id
	ORDER BY MIN(depth), template_id`

	rows, err := r.db.Query(ctx, query, domain.NormalizeTemplateID(item.TemplateID))
	if err != nil {
		return nil, fmt.Errorf("failed to query template lineage: %w", err)
	}
	defer rows.Close()

	var lineage domain.TemplateLineage
	for rows.Next() {
		var templateID string
		if err := rows.Scan(&templateID); err != nil {
			return nil, fmt.Errorf("failed to scan template lineage: %w", err)
		}
		lineage = append(lineage, templateID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read template lineage: %w", err)
	}

	return lineage, nil
}
