package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/catalogpage/internal/domain"
)

type stubRows struct {
	vals    []string
	idx     int
	scanErr error
	err     error
	closed  bool
}

func (r *stubRows) Close()                                       { r.closed = true }
func (r *stubRows) Err() error                                   { return r.err }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return nil, nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	if r.idx >= len(r.vals) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	*dest[0].(*string) = r.vals[r.idx-1]
	return nil
}

type stubRow struct {
	vals []string
	err  error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i := range dest {
		*dest[i].(*string) = r.vals[i]
	}
	return nil
}

type stubQuerier struct {
	rows     *stubRows
	queryErr error
	row      stubRow
	args     []any
}

func (q *stubQuerier) Query(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
	q.args = args
	if q.queryErr != nil {
		return nil, q.queryErr
	}
	return q.rows, nil
}

func (q *stubQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	q.args = args
	return q.row
}

func TestTemplateLineage(t *testing.T) {
	q := &stubQuerier{rows: &stubRows{vals: []string{"product-detail", "product-page", "standard-page"}}}

	lineage, err := NewTemplateRepository(q).TemplateLineage(context.Background(),
		&domain.ContentItem{ID: "page-1", TemplateID: "{PRODUCT-DETAIL}"})

	require.NoError(t, err)
	assert.Equal(t, domain.TemplateLineage{"product-detail", "product-page", "standard-page"}, lineage)
	assert.Equal(t, []any{"product-detail"}, q.args)
	assert.True(t, q.rows.closed)
}

func TestTemplateLineageWithoutTemplate(t *testing.T) {
	q := &stubQuerier{}

	lineage, err := NewTemplateRepository(q).TemplateLineage(context.Background(), &domain.ContentItem{ID: "page-1"})

	require.NoError(t, err)
	assert.Nil(t, lineage)
	assert.Nil(t, q.args)
}

func TestTemplateLineageErrors(t *testing.T) {
	boom := errors.New("boom")
	item := &domain.ContentItem{ID: "page-1", TemplateID: "t"}

	_, err := NewTemplateRepository(&stubQuerier{queryErr: boom}).TemplateLineage(context.Background(), item)
	require.ErrorIs(t, err, boom)

	_, err = NewTemplateRepository(&stubQuerier{rows: &stubRows{vals: []string{"t"}, scanErr: boom}}).TemplateLineage(context.Background(), item)
	require.ErrorIs(t, err, boom)

	_, err = NewTemplateRepository(&stubQuerier{rows: &stubRows{err: boom}}).TemplateLineage(context.Background(), item)
	require.ErrorIs(t, err, boom)
}

func TestItemByPath(t *testing.T) {
	q := &stubQuerier{row: stubRow{vals: []string{"page-1", "Widgets", "/shop/widgets", "{PRODUCT-PAGE}"}}}

	item, err := NewContentRepository(q).ItemByPath(context.Background(), "storefront", "/shop/widgets")

	require.NoError(t, err)
	assert.Equal(t, &domain.ContentItem{ID: "page-1", Name: "Widgets", Path: "/shop/widgets", TemplateID: "{PRODUCT-PAGE}"}, item)
	assert.Equal(t, []any{"storefront", "/shop/widgets"}, q.args)
}

func TestItemByPathNotFound(t *testing.T) {
	item, err := NewContentRepository(&stubQuerier{row: stubRow{err: pgx.ErrNoRows}}).
		ItemByPath(context.Background(), "storefront", "/missing")

	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestItemByPathError(t *testing.T) {
	boom := errors.New("connection reset")

	_, err := NewContentRepository(&stubQuerier{row: stubRow{err: boom}}).
		ItemByPath(context.Background(), "storefront", "/shop")

	require.ErrorIs(t, err, boom)
}
