package storefront

import (
	"context"
	"fmt"

	"storefront/catalogpage/internal/config"
	"storefront/catalogpage/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	fieldCatalog           = "catalog"
	fieldGiftCardPageLink  = "gift_card_page_link"
	fieldGiftCardProductID = "gift_card_product_id"
)

type Provider interface {
	CurrentStorefront(ctx context.Context) (domain.Storefront, error)
}

// redisProvider reads storefront settings from the hash <prefix><site>.
// Fields missing from the hash keep their configured values.
type redisProvider struct {
	redisClient *redis.Client
	key         string
	defaults    domain.Storefront
}

func NewRedisProvider(redisClient *redis.Client, keyPrefix, site string, defaults config.StorefrontConfig) Provider {
	return &redisProvider{
		redisClient: redisClient,
		key:         keyPrefix + site,
		defaults: domain.Storefront{
			Name:              defaults.Name,
			Catalog:           defaults.Catalog,
			GiftCardPageLink:  defaults.GiftCardPageLink,
			GiftCardProductID: defaults.GiftCardProductID,
		},
	}
}

func (p *redisProvider) CurrentStorefront(ctx context.Context) (domain.Storefront, error) {
	fields, err := p.redisClient.HGetAll(ctx, p.key).Result()
	if err != nil {
		return domain.Storefront{}, fmt.Errorf("failed to get storefront %s: %w", p.key, err)
	}

	storefront := p.defaults
	if v, ok := fields[fieldCatalog]; ok && v != "" {
		storefront.Catalog = v
	}
	if v, ok := fields[fieldGiftCardPageLink]; ok {
		storefront.GiftCardPageLink = v
	}
	if v, ok := fields[fieldGiftCardProductID]; ok {
		storefront.GiftCardProductID = v
	}

	return storefront, nil
}
