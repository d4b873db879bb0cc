package duck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "portal/entity"
)

type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, msg string, kv ...any)             {}
func (nopLogger) Error(ctx context.Context, msg string, err error, kv ...any) {}

var testFields = []nt.Field{
	{Key: "name", Label: "Name", Kind: nt.TextInput},
	{Key: "status", Label: "Status", Kind: nt.ChoiceInput, Options: []string{"active", "inactive", "pending"}},
	{Key: "price", Label: "Price", Kind: nt.NumberInput},
}

func newDuck(t *testing.T, seed int) *Duck {
	t.Helper()

	dk, err := New("", testFields, nopLogger{})
	require.NoError(t, err)
	t.Cleanup(dk.Close)

	require.NoError(t, dk.Seed(context.Background(), seed))
	return dk
}

func names(page []nt.Row) (out []string) {
	for _, row := range page {
		out = append(out, row.Value("name").String())
	}
	return
}

func TestBadFieldKey(t *testing.T) {

	_, err := New("", []nt.Field{{Key: "drop table"}}, nopLogger{})
	assert.Error(t, err)
}

func TestPaging(t *testing.T) {

	ctx := context.Background()
	dk := newDuck(t, 23)
	assert.Equal(t, "memory", dk.Name())

	count, err := dk.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 23, count)

	// newest first by default
	page, err := dk.GetPage(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, "Item 1", page[0].Value("name").String())
	assert.NotEmpty(t, page[0].Id())
	assert.Contains(t, page[0], "createdAt")

	page, err = dk.GetPage(ctx, 20, 10)
	require.NoError(t, err)
	assert.Len(t, page, 3)
}

func TestView(t *testing.T) {

	ctx := context.Background()
	dk := newDuck(t, 12)

	err := dk.SetView(nt.View{Search: "item 1"})
	require.NoError(t, err)

	count, err := dk.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count) // 1, 10, 11, 12

	err = dk.SetView(nt.View{
		Search: "item 1",
		Sort:   nt.Sort{Field: "price", Direction: nt.Desc},
		Filters: map[string]nt.Filter{
			"status": {Op: nt.Eq, Field: "status", Value: "active", Enabled: true},
		},
	})
	require.NoError(t, err)

	page, err := dk.GetPage(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Item 10", "Item 1"}, names(page))

	err = dk.SetView(nt.View{
		Filters: map[string]nt.Filter{
			"price": {Op: nt.Gte, Field: "price", Value: 115.5, Enabled: true},
			"name":  {Op: nt.Match, Field: "name", Value: "^Item 1[0-9]$", Enabled: true},
		},
		Sort: nt.Sort{Field: "name", Direction: nt.Asc},
	})
	require.NoError(t, err)

	page, err = dk.GetPage(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Item 11", "Item 12"}, names(page))

	err = dk.SetView(nt.View{Sort: nt.Sort{Field: "nope"}})
	assert.Error(t, err)
}

func TestCrud(t *testing.T) {

	ctx := context.Background()
	dk := newDuck(t, 0)

	row, err := dk.Create(ctx, map[string]any{
		"name":   "Widget",
		"status": "active",
		"price":  9.99,
		"bogus":  "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget", row.Value("name").String())
	assert.Equal(t, 9.99, row["price"])
	assert.NotEmpty(t, row.Id())

	err = dk.Update(ctx, row.Id(), map[string]any{"name": "Gadget"})
	require.NoError(t, err)

	page, err := dk.GetPage(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gadget"}, names(page))
	assert.Equal(t, "active", page[0].Value("status").String())

	err = dk.Delete(ctx, row.Id())
	require.NoError(t, err)

	count, err := dk.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	err = dk.Delete(ctx, row.Id())
	assert.ErrorIs(t, err, ErrNotFound)

	err = dk.Update(ctx, "missing", map[string]any{"name": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchWildcardsLiteral(t *testing.T) {

	ctx := context.Background()
	dk := newDuck(t, 5)

	_, err := dk.Create(ctx, map[string]any{"name": `50% off_sale\now`, "status": "active"})
	require.NoError(t, err)

	for _, term := range []string{"%", "_", `\`, "0% o"} {
		require.NoError(t, dk.SetView(nt.View{Search: term}))

		page, err := dk.GetPage(ctx, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{`50% off_sale\now`}, names(page), term)
	}

	err = dk.SetView(nt.View{Filters: map[string]nt.Filter{
		"name": {Op: nt.Contains, Field: "name", Value: "_", Enabled: true},
	}})
	require.NoError(t, err)

	count, err := dk.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
