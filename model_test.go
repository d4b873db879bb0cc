package portal

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal/auth"
	"portal/datatable"
	nt "portal/entity"
	"portal/message"
	"portal/util"
)

type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, msg string, kv ...any)             {}
func (nopLogger) Error(ctx context.Context, msg string, err error, kv ...any) {}

// fakeProvider holds rows in a slice, searching names only
type fakeProvider struct {
	rows    []nt.Row
	view    nt.View
	offsets []int
	fail    error
	badSort string
}

func newFake(count int) *fakeProvider {
	fake := &fakeProvider{}
	for i := range count {
		fake.rows = append(fake.rows, nt.Row{
			"id":     fmt.Sprintf("%d", i+1),
			"name":   fmt.Sprintf("Item %d", i+1),
			"status": "active",
		})
	}
	return fake
}

func (fake *fakeProvider) Name() string { return "fake" }

func (fake *fakeProvider) SetView(view nt.View) error {
	if fake.badSort != "" && view.Sort.Field == fake.badSort {
		return errors.Errorf("cannot sort by unknown field %q", view.Sort.Field)
	}
	fake.view = view
	return nil
}

func (fake *fakeProvider) matching() (out []nt.Row) {
	for _, row := range fake.rows {
		if strings.Contains(strings.ToLower(row.Value("name").String()), strings.ToLower(fake.view.Search)) {
			out = append(out, row)
		}
	}
	return
}

func (fake *fakeProvider) Count(ctx context.Context) (int, error) {
	if fake.fail != nil {
		return 0, fake.fail
	}
	return len(fake.matching()), nil
}

func (fake *fakeProvider) GetPage(ctx context.Context, offset, size int) ([]nt.Row, error) {
	fake.offsets = append(fake.offsets, offset)
	rows := fake.matching()
	return rows[min(offset, len(rows)):min(offset+size, len(rows))], nil
}

func (fake *fakeProvider) Create(ctx context.Context, values map[string]any) (nt.Row, error) {
	row := nt.Row{"id": fmt.Sprintf("%d", len(fake.rows)+1)}
	for key, val := range values {
		row[key] = val
	}
	fake.rows = append(fake.rows, row)
	return row, nil
}

func (fake *fakeProvider) Update(ctx context.Context, id string, values map[string]any) error {
	return nil
}

func (fake *fakeProvider) Delete(ctx context.Context, id string) error {
	fake.rows = slices.DeleteFunc(fake.rows, func(row nt.Row) bool {
		return row.Id() == id
	})
	return nil
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// settle feeds the messages a command produces back in until none are left
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()

	for cmd != nil {
		m, cmd = update(t, m, cmd())
	}
	return m
}

// screen renders m without styling
func screen(m Model) string {
	return ansi.Strip(m.render())
}

func loggedIn(t *testing.T, fake *fakeProvider) Model {
	t.Helper()

	m, err := NewModel(context.Background(), Config{}, fake, auth.Mock{}, nopLogger{})
	require.NoError(t, err)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, cmd := update(t, m, auth.LoggedInMsg{User: nt.User{Name: "Jo", Role: nt.Admin}})
	assert.Equal(t, DashboardScreen, m.CurrentScreen)
	assert.True(t, m.Table.State().Loading)

	return settle(t, m, cmd)
}

func TestLoginToDashboard(t *testing.T) {

	m := loggedIn(t, newFake(23))

	st := m.Table.State()
	assert.False(t, st.Loading)
	assert.Equal(t, 23, st.TotalItems)
	assert.Equal(t, 1, st.CurrentPage)
	assert.Len(t, st.Rows, 10)
	assert.Equal(t, 3, m.Table.TotalPages())
	assert.Contains(t, screen(m), "Item 1")
}

func TestPaging(t *testing.T) {

	fake := newFake(23)
	m := loggedIn(t, fake)

	m = settle(t, m, func() tea.Msg { return message.PageChangeMsg{Page: 3} })
	assert.Equal(t, 3, m.Table.State().CurrentPage)
	assert.Len(t, m.Table.State().Rows, 3)
	assert.Equal(t, 20, fake.offsets[len(fake.offsets)-1])

	m = settle(t, m, func() tea.Msg { return message.RowsPerPageMsg{Size: 25} })
	assert.Equal(t, 1, m.Table.State().CurrentPage)
	assert.Equal(t, 25, m.Table.State().PageSize)
	assert.Len(t, m.Table.State().Rows, 23)
}

func TestSearchResetsPage(t *testing.T) {

	fake := newFake(23)
	m := loggedIn(t, fake)
	m = settle(t, m, func() tea.Msg { return message.PageChangeMsg{Page: 2} })

	m = settle(t, m, func() tea.Msg { return message.SearchMsg{Term: "item 2"} })
	assert.Equal(t, "item 2", fake.view.Search)
	assert.Equal(t, 1, m.Table.State().CurrentPage)
	assert.Equal(t, 5, m.Table.State().TotalItems) // 2, 20..23
}

func TestSortUsesColumnKey(t *testing.T) {

	cfg := Config{}
	cfg.Table.Columns = []nt.Column{{Id: "title", Header: "Title", AccessorKey: "name"}}

	m, err := NewModel(context.Background(), cfg, newFake(3), auth.Mock{}, nopLogger{})
	require.NoError(t, err)

	assert.Equal(t, nt.Sort{Field: "name", Direction: nt.Desc},
		m.sortOf(message.SortMsg{Column: "title", Direction: nt.Desc}))
}

func TestDeleteRefetches(t *testing.T) {

	fake := newFake(11)
	m := loggedIn(t, fake)
	m = settle(t, m, func() tea.Msg { return message.PageChangeMsg{Page: 2} })
	require.Len(t, m.Table.State().Rows, 1)

	// deleting the only row on the last page lands on the page before
	m, cmd := update(t, m, tea.KeyPressMsg{Code: 'd', Text: "d"})
	assert.Nil(t, cmd)
	m, cmd = update(t, m, tea.KeyPressMsg{Code: 'y', Text: "y"})
	require.NotNil(t, cmd)
	assert.NotNil(t, m.Table.State().Pending)

	m = settle(t, m, cmd)
	assert.Nil(t, m.Table.State().Pending)
	assert.Len(t, fake.rows, 10)
	assert.Equal(t, 1, m.Table.State().CurrentPage)
	assert.Equal(t, 10, m.Table.State().TotalItems)
}

func TestProviderError(t *testing.T) {

	fake := newFake(5)
	m := loggedIn(t, fake)

	fake.fail = assert.AnError
	m = settle(t, m, func() tea.Msg { return message.PageChangeMsg{Page: 1} })

	assert.False(t, m.Table.State().Loading)
	assert.Equal(t, assert.AnError, m.Table.State().Err)
	assert.Contains(t, screen(m), assert.AnError.Error())
}

func TestStalePageDropped(t *testing.T) {

	m := loggedIn(t, newFake(23))

	m, first := update(t, m, message.PageChangeMsg{Page: 2})
	m, second := update(t, m, message.PageChangeMsg{Page: 3})

	m, _ = update(t, m, second())
	m, _ = update(t, m, first())
	assert.Equal(t, 3, m.Table.State().CurrentPage)
}

func TestNonTableRoute(t *testing.T) {

	m := loggedIn(t, newFake(3))

	for range 3 {
		var cmd tea.Cmd
		m, cmd = update(t, m, tea.KeyPressMsg{Code: ']', Text: "]"})
		m = settle(t, m, cmd)
	}
	assert.Equal(t, "Analytics", m.Sidebar.Active().Label)
	out := screen(m)
	assert.Contains(t, out, "Total Revenue")
	assert.Contains(t, out, "Recent Activity")

	m, cmd := update(t, m, tea.KeyPressMsg{Code: ']', Text: "]"})
	m = settle(t, m, cmd)
	assert.Equal(t, "Settings", m.Sidebar.Active().Label)
	assert.Contains(t, screen(m), "Settings is coming soon.")

	// table keys are not handled off the table
	_, cmd = update(t, m, tea.KeyPressMsg{Code: 'n', Text: "n"})
	assert.Nil(t, cmd)
}

func TestLogout(t *testing.T) {

	m := loggedIn(t, newFake(3))

	m, _ = update(t, m, tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl})
	assert.Equal(t, LoginScreen, m.CurrentScreen)
	assert.Equal(t, nt.User{}, m.User)
	assert.Contains(t, screen(m), "Portal Login")
}

func TestWithDefaults(t *testing.T) {

	cfg := Config{}.withDefaults()
	assert.Equal(t, DefaultProviderTimeout, cfg.ProviderTimeout)
	assert.Equal(t, DefaultLoginDelay, cfg.LoginDelay)
	assert.Equal(t, 10, cfg.Table.PageSize)
	assert.Equal(t, nt.DefaultColumns(), cfg.Table.Columns)
	assert.Equal(t, nt.FieldsFromColumns(nt.DefaultColumns()), cfg.Fields())
}

func TestSampleConfig(t *testing.T) {

	path := t.TempDir() + "/portal.yaml"
	require.NoError(t, util.SampleConfig(SampleConfig, path, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Products", cfg.Table.Title)
	assert.Len(t, cfg.Table.Columns, 5)
	assert.Equal(t, nt.Currency, cfg.Table.Columns[3].Format.Kind)
	assert.Equal(t, 42, cfg.Seed)
	assert.Equal(t, DefaultLoginDelay, cfg.LoginDelay)

	_, err = datatable.New(context.Background(), cfg.Table, nil, nopLogger{})
	assert.NoError(t, err)
}

func TestDetail(t *testing.T) {

	m := loggedIn(t, newFake(3))

	m, _ = update(t, m, tea.KeyPressMsg{Code: 'v', Text: "v"})
	assert.Equal(t, DetailScreen, m.CurrentScreen)

	out := screen(m)
	assert.Contains(t, out, "Item 1")
	assert.Contains(t, out, "All fields")

	m, _ = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, DashboardScreen, m.CurrentScreen)
}

func TestRejectedSortKeepsView(t *testing.T) {

	fake := newFake(23)
	fake.badSort = "status"
	m := loggedIn(t, fake)

	var cmd tea.Cmd
	m.Table, cmd = m.Table.SortBy("name")
	m = settle(t, m, cmd)
	require.Equal(t, nt.Sort{Field: "name", Direction: nt.Asc}, fake.view.Sort)

	m.Table, cmd = m.Table.SortBy("status")
	m = settle(t, m, cmd)
	assert.Equal(t, nt.Sort{Field: "name", Direction: nt.Asc}, m.view.Sort)
	assert.Equal(t, datatable.SortState{Column: "name", Direction: nt.Asc}, m.Table.State().Sort)

	out := screen(m)
	assert.Contains(t, out, `cannot sort by unknown field "status"`)
	assert.Contains(t, out, "Name ↑")
	assert.NotContains(t, out, "Status ↑")

	// the view still in effect keeps working
	m = settle(t, m, func() tea.Msg { return message.PageChangeMsg{Page: 2} })
	assert.Equal(t, 2, m.Table.State().CurrentPage)
	assert.NoError(t, m.Table.State().Err)

	m = settle(t, m, func() tea.Msg { return message.SearchMsg{Term: "Item"} })
	assert.Equal(t, 23, m.Table.State().TotalItems)
	assert.Equal(t, nt.Sort{Field: "name", Direction: nt.Asc}, fake.view.Sort)
	assert.NotContains(t, screen(m), "unknown field")
}

func TestStaleFetchErrorDropped(t *testing.T) {

	fake := newFake(23)
	m := loggedIn(t, fake)

	fake.fail = assert.AnError
	m, first := update(t, m, message.PageChangeMsg{Page: 2})
	failed := first()

	fake.fail = nil
	m, second := update(t, m, message.PageChangeMsg{Page: 3})
	assert.True(t, m.Table.State().Loading)

	// the error from the superseded fetch arrives while the newer one is out
	m, _ = update(t, m, failed)
	assert.True(t, m.Table.State().Loading)
	assert.NoError(t, m.Table.State().Err)
	assert.NotContains(t, screen(m), assert.AnError.Error())

	m, _ = update(t, m, second())
	assert.False(t, m.Table.State().Loading)
	assert.Equal(t, 3, m.Table.State().CurrentPage)
}

func TestLogoutResetsSession(t *testing.T) {

	fake := newFake(23)
	m := loggedIn(t, fake)

	m = settle(t, m, func() tea.Msg { return message.SearchMsg{Term: "item 2"} })

	var cmd tea.Cmd
	m.Table, cmd = m.Table.ApplyFilters(map[string]nt.Filter{"status": {Enabled: true, Op: nt.Eq, Value: "active"}})
	m = settle(t, m, cmd)
	m = settle(t, m, func() tea.Msg { return message.RowsPerPageMsg{Size: 25} })
	require.NotEmpty(t, m.Table.State().Filters)
	require.Equal(t, "item 2", fake.view.Search)

	m, _ = update(t, m, tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl})
	assert.Equal(t, nt.View{}, m.view)
	assert.Empty(t, m.Table.State().Filters)
	assert.Equal(t, 10, m.pageSize)

	m, cmd = update(t, m, auth.LoggedInMsg{User: nt.User{Name: "Sam", Role: nt.Brand}})
	m = settle(t, m, cmd)

	assert.Equal(t, nt.View{}, fake.view)
	assert.Equal(t, 23, m.Table.State().TotalItems)
	assert.Equal(t, 1, m.Table.State().CurrentPage)
	assert.Len(t, m.Table.State().Rows, 10)
}
