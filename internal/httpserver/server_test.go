package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/catalogpage/internal/config"
	"storefront/catalogpage/internal/domain"
	"storefront/catalogpage/internal/resolver"
)

type fakeContents struct {
	items map[string]*domain.ContentItem
	err   error
	paths []string
}

func (f *fakeContents) ItemByPath(_ context.Context, site, path string) (*domain.ContentItem, error) {
	f.paths = append(f.paths, site+":"+path)
	if f.err != nil {
		return nil, f.err
	}
	return f.items[path], nil
}

type stepFunc func(ctx context.Context, req resolver.Request) (resolver.Outcome, error)

func (f stepFunc) Process(ctx context.Context, req resolver.Request) (resolver.Outcome, error) {
	return f(ctx, req)
}

var serverConfig = config.ServerConfig{
	Site:            "storefront",
	Languages:       []string{"en", "fr"},
	DefaultLanguage: "en",
}

func serve(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestResolvedPageIsRendered(t *testing.T) {
	page := &domain.ContentItem{ID: "page-1", Path: "/shop/w-100"}
	contents := &fakeContents{items: map[string]*domain.ContentItem{"/shop/w-100": page}}
	product := &domain.CatalogItem{ID: "w-100", Catalog: "Habitat_Master", IsProduct: true}

	var seen resolver.Request
	s := New(serverConfig, contents, stepFunc(func(_ context.Context, req resolver.Request) (resolver.Outcome, error) {
		seen = req
		req.SetCurrentCatalogItem(product)
		return resolver.Outcome{Kind: resolver.OutcomeResolved, Item: product}, nil
	}))

	rec := serve(t, s, "/fr/shop/w-100/?color=red")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"storefront:/shop/w-100"}, contents.paths)
	require.NotNil(t, seen)
	assert.Equal(t, "/fr/shop/w-100/?color=red", seen.RawURL())
	assert.Equal(t, "/fr/shop/w-100/", seen.AbsolutePath())
	assert.Equal(t, "fr", seen.LanguageCode())

	var view pageView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "fr", view.Language)
	assert.Equal(t, page, view.Item)
	assert.Equal(t, product, view.CatalogItem)
}

func TestRedirectOutcome(t *testing.T) {
	contents := &fakeContents{items: map[string]*domain.ContentItem{"/shop/w-404": {ID: "page-1"}}}
	s := New(serverConfig, contents, stepFunc(func(context.Context, resolver.Request) (resolver.Outcome, error) {
		return resolver.Outcome{Kind: resolver.OutcomeRedirected, Location: resolver.SiteRoot}, nil
	}))

	rec := serve(t, s, "/en/shop/w-404")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestStepErrorIsServerError(t *testing.T) {
	contents := &fakeContents{items: map[string]*domain.ContentItem{"/shop/w-100": {ID: "page-1"}}}
	s := New(serverConfig, contents, stepFunc(func(context.Context, resolver.Request) (resolver.Outcome, error) {
		return resolver.Outcome{}, errors.New("search backend unavailable")
	}))

	rec := serve(t, s, "/shop/w-100")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestContentErrorIsServerError(t *testing.T) {
	called := false
	s := New(serverConfig, &fakeContents{err: errors.New("db down")}, stepFunc(func(context.Context, resolver.Request) (resolver.Outcome, error) {
		called = true
		return resolver.Outcome{}, nil
	}))

	rec := serve(t, s, "/shop/w-100")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, called)
}

func TestUnknownPathIsNotFound(t *testing.T) {
	s := New(serverConfig, &fakeContents{}, stepFunc(func(_ context.Context, req resolver.Request) (resolver.Outcome, error) {
		assert.Nil(t, req.CurrentItem())
		return resolver.Outcome{Kind: resolver.OutcomeNoOp}, nil
	}))

	rec := serve(t, s, "/en/nowhere")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	s := New(serverConfig, &fakeContents{}, stepFunc(func(context.Context, resolver.Request) (resolver.Outcome, error) {
		t.Fatal("health checks must not run resolution")
		return resolver.Outcome{}, nil
	}))

	assert.Equal(t, http.StatusOK, serve(t, s, "/healthz").Code)
}

func TestSplitLanguage(t *testing.T) {
	s := New(serverConfig, &fakeContents{}, nil)

	tests := []struct {
		path     string
		wantLang string
		wantPath string
	}{
		{"/en/shop/w-100", "en", "/shop/w-100"},
		{"/FR/shop/", "fr", "/shop"},
		{"/shop/w-100", "en", "/shop/w-100"},
		{"/entertainment", "en", "/entertainment"},
		{"/en", "en", "/"},
		{"/", "en", "/"},
		{"/en/giftcard.aspx", "en", "/giftcard"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lang, path := s.splitLanguage(tt.path)
			assert.Equal(t, tt.wantLang, lang)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}
