package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"storefront/catalogpage/internal/config"
	"storefront/catalogpage/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

type CatalogClient interface {
	GetProduct(ctx context.Context, id, catalogName string) (*domain.CatalogItem, error)
	GetCategory(ctx context.Context, id, catalogName string) (*domain.CatalogItem, error)
	Close() error
}

type catalogClient struct {
	rl         ratelimit.Limiter
	baseURL    string
	httpClient *resty.Client
	parser     *itemParser

	// Circuit breaker for upstream quota rejections
	circuitBreakerMutex sync.RWMutex
	quotaExceededUntil  time.Time
	circuitBreakerDelay time.Duration
}

func NewCatalogClient(cfg config.CatalogConfig) CatalogClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		SetTLSClientConfig(&tls.Config{
			MinVersion: tls.VersionTLS12,
		})

	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
		log.Infof("🔗 Using catalog proxy: %s", cfg.Proxy)
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &catalogClient{
		rl:                  rl,
		baseURL:             baseURL,
		httpClient:          client,
		parser:              newItemParser(baseURL),
		circuitBreakerDelay: time.Duration(cfg.CircuitBreakerDelay) * time.Second,
	}
}

func (c *catalogClient) GetProduct(ctx context.Context, id, catalogName string) (*domain.CatalogItem, error) {
	return c.getItem(ctx, "products", id, catalogName, true)
}

func (c *catalogClient) GetCategory(ctx context.Context, id, catalogName string) (*domain.CatalogItem, error) {
	return c.getItem(ctx, "categories", id, catalogName, false)
}

func (c *catalogClient) Close() error {
	return c.httpClient.Close()
}

func (c *catalogClient) getItem(ctx context.Context, kind, id, catalogName string, isProduct bool) (*domain.CatalogItem, error) {
	itemURL := fmt.Sprintf("%s/catalogs/%s/%s/%s",
		c.baseURL, url.PathEscape(catalogName), kind, url.PathEscape(id))

	html, found, err := c.fetchHTML(ctx, itemURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch HTML for %s %s: %w", kind, id, err)
	}
	if !found {
		log.Debugf("Catalog %s has no %s %s", catalogName, kind, id)
		return nil, nil
	}

	item, err := c.parser.ParseItem(html, id, catalogName, isProduct)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s %s: %w", kind, id, err)
	}

	return item, nil
}

func (c *catalogClient) isCircuitBreakerOpen() bool {
	c.circuitBreakerMutex.RLock()
	now := time.Now()
	wasOpen := now.Before(c.quotaExceededUntil)
	wasTriggered := !c.quotaExceededUntil.IsZero()
	c.circuitBreakerMutex.RUnlock()

	if !wasOpen && wasTriggered {
		c.circuitBreakerMutex.Lock()
		// Double-check after acquiring write lock
		if !c.quotaExceededUntil.IsZero() && now.After(c.quotaExceededUntil) {
			c.quotaExceededUntil = time.Time{}
			log.Infof("✅ Catalog circuit breaker closed - requests are allowed again")
		}
		c.circuitBreakerMutex.Unlock()
	}

	return wasOpen
}

func (c *catalogClient) triggerCircuitBreaker() {
	if c.circuitBreakerDelay <= 0 {
		return
	}

	c.circuitBreakerMutex.Lock()
	defer c.circuitBreakerMutex.Unlock()

	c.quotaExceededUntil = time.Now().Add(c.circuitBreakerDelay)
	log.Warnf("🚫 Catalog circuit breaker opened until %v", c.quotaExceededUntil.Format("15:04:05"))
}

func (c *catalogClient) getRemainingCircuitBreakerTime() time.Duration {
	c.circuitBreakerMutex.RLock()
	defer c.circuitBreakerMutex.RUnlock()

	remaining := time.Until(c.quotaExceededUntil)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// fetchHTML returns the page body. found is false when the backend answers 404.
func (c *catalogClient) fetchHTML(ctx context.Context, url string) (string, bool, error) {
	if c.isCircuitBreakerOpen() {
		remaining := c.getRemainingCircuitBreakerTime()
		return "", false, fmt.Errorf("circuit breaker is open - requests disabled for %v more", remaining.Round(time.Second))
	}

	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return "", false, fmt.Errorf("failed to fetch URL: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return "", false, nil
	case resp.StatusCode() == http.StatusTooManyRequests:
		log.Warnf("🚫 Catalog quota exceeded for URL: %s", url)
		c.triggerCircuitBreaker()
		return "", false, fmt.Errorf("quota exceeded: %s", resp.Status())
	case resp.IsError():
		return "", false, fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	return resp.String(), true, nil
}
