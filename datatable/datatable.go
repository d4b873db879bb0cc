// Package datatable is a paged, sortable, searchable table of rows owned by
// an external provider, with create, edit and delete dialogs.
// It holds no dataset of its own: every data-affecting action leaves as an
// intent message and rows come back in a PageMsg.
package datatable

import (
	"context"
	"slices"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"

	"portal/dialog"
	nt "portal/entity"
	"portal/filter"
	"portal/form"
	"portal/message"
	"portal/pager"
)

// ErrBusy is reported when a submission is made while another is in flight.
var ErrBusy = errors.New("a request is already in progress")

// DefaultPageSizeOptions are offered when none are configured.
var DefaultPageSizeOptions = []int{5, 10, 25, 50}

type Config struct {
	Title           string      `yaml:"title"`
	Description     string      `yaml:"description"`
	Columns         []nt.Column `yaml:"columns"`
	Fields          []nt.Field  `yaml:"fields,omitempty"`
	PageSize        int         `yaml:"page_size"`
	PageSizeOptions []int       `yaml:"page_size_options,omitempty"`
}

// State is everything the table tracks, replaced as a whole on each update.
type State struct {
	// Supplied by the provider
	Rows        []nt.Row
	TotalItems  int
	CurrentPage int
	PageSize    int
	Loading     bool

	Sort    SortState
	Search  Search
	Filters map[string]nt.Filter

	Dialog  dialog.Dialog
	Form    form.Form
	Pending *message.Op // Submission awaiting a result, nil when idle
	Err     error       // Shown inline until the next action

	Cursor    int // Row under the cursor on the current page
	Column    int // Column under the cursor
	Searching bool
	Filtering bool
	Panel     filter.Panel

	seq int
}

// Controller coordinates user actions on the table with the provider.
type Controller struct {
	cfg        Config
	fields     []nt.Field
	formatters Formatters
	state      State

	width  int
	height int

	ctx    context.Context
	logger nt.Logger
}

// New creates a controller; columns must have unique ids.
func New(ctx context.Context, cfg Config, fmts Formatters, lgr nt.Logger) (ctl Controller, err error) {

	if len(cfg.Columns) == 0 {
		cfg.Columns = nt.DefaultColumns()
	}

	err = nt.ValidateColumns(cfg.Columns)
	if err != nil {
		return
	}

	if len(cfg.PageSizeOptions) == 0 {
		cfg.PageSizeOptions = DefaultPageSizeOptions
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}

	fields := cfg.Fields
	if len(fields) == 0 {
		fields = nt.FieldsFromColumns(cfg.Columns)
	}

	ctl = Controller{
		cfg:        cfg,
		fields:     fields,
		formatters: fmts,
		state: State{
			CurrentPage: 1,
			PageSize:    cfg.PageSize,
			Sort:        SortState{Direction: nt.Asc},
		},
		ctx:    ctx,
		logger: lgr,
	}

	return
}

// State returns a snapshot of the table state.
func (ctl Controller) State() State {
	return ctl.state
}

// Capturing reports whether keys are being typed into the table, so a
// parent should not interpret them.
func (ctl Controller) Capturing() bool {
	return ctl.state.Searching || ctl.state.Filtering || ctl.state.Dialog.Open()
}

// TotalPages returns the page count for the supplied totals.
func (ctl Controller) TotalPages() int {
	return pager.TotalPages(ctl.state.TotalItems, ctl.state.PageSize)
}

// Window returns the pager window for the current page.
func (ctl Controller) Window() pager.Window {
	return pager.New(ctl.state.CurrentPage, ctl.TotalPages())
}

// SelectedRow returns the row under the cursor, nil on an empty page.
func (ctl Controller) SelectedRow() nt.Row {
	rows := ctl.state.Rows
	if ctl.state.Cursor < 0 || ctl.state.Cursor >= len(rows) {
		return nil
	}
	return rows[ctl.state.Cursor]
}

func (ctl Controller) Init() tea.Cmd {
	return nil
}

func (ctl Controller) Update(msg tea.Msg) (Controller, tea.Cmd) {

	switch msg := msg.(type) {

	case SizeMsg:
		ctl.width = msg.Width
		ctl.height = msg.Height

	case PageMsg:
		st := ctl.state
		st.Rows = msg.Rows
		st.TotalItems = max(msg.TotalItems, 0)
		st.CurrentPage = max(msg.CurrentPage, 1)
		if msg.PageSize > 0 {
			st.PageSize = msg.PageSize
		}
		st.Loading = false
		st.Err = nil
		st.Cursor = min(st.Cursor, max(len(st.Rows)-1, 0))
		ctl.state = st

	case LoadingMsg:
		ctl.state.Loading = msg.Loading

	case SortStateMsg:
		ctl.state.Sort = msg.Sort

	case message.ResultMsg:
		return ctl.result(msg), nil

	case message.ErrorMsg:
		ctl.logger.Error(ctl.ctx, "provider request failed", msg.Err)
		st := ctl.state
		st.Loading = false
		st.Err = msg.Err
		ctl.state = st

	case tea.KeyPressMsg:
		return ctl.handleKey(msg.String())
	}

	return ctl, nil
}

// handleKey dispatches a key by mode: dialog, filter panel, search box, or table
func (ctl Controller) handleKey(key string) (Controller, tea.Cmd) {

	switch {
	case ctl.state.Dialog.Open():
		return ctl.dialogKey(key)
	case ctl.state.Filtering:
		return ctl.filterKey(key)
	case ctl.state.Searching:
		return ctl.searchKey(key)
	}

	st := ctl.state
	st.Err = nil

	switch key {
	case "up", "k":
		if st.Cursor > 0 {
			st.Cursor--
		}
	case "down", "j":
		if st.Cursor < len(st.Rows)-1 {
			st.Cursor++
		}
	case "left", "h":
		if st.Column > 0 {
			st.Column--
		}
	case "right", "l":
		if st.Column < len(ctl.cfg.Columns)-1 {
			st.Column++
		}
	case "/":
		st.Searching = true
	}
	ctl.state = st

	switch key {
	case "s":
		return ctl.SortBy(ctl.cfg.Columns[st.Column].Id)
	case "n", "pgdown":
		return ctl.NextPage()
	case "p", "pgup":
		return ctl.PrevPage()
	case "g", "home":
		return ctl.GoToPage(1)
	case "G", "end":
		return ctl.GoToPage(ctl.TotalPages())
	case "+":
		return ctl.cyclePageSize(1)
	case "-":
		return ctl.cyclePageSize(-1)
	case "f":
		return ctl.OpenFilters(), nil
	case "a":
		return ctl.OpenCreate(), nil
	case "e", "enter":
		return ctl.OpenEdit(ctl.SelectedRow()), nil
	case "d", "delete":
		return ctl.OpenDelete(ctl.SelectedRow()), nil
	}

	return ctl, nil
}

func (ctl Controller) dialogKey(key string) (Controller, tea.Cmd) {

	switch key {
	case "esc":
		return ctl.Cancel(), nil
	case "enter":
		return ctl.Confirm()
	}

	if ctl.state.Dialog.State() == dialog.DeleteConfirm {
		switch key {
		case "y":
			return ctl.Confirm()
		case "n":
			return ctl.Cancel(), nil
		}
		return ctl, nil
	}

	ctl.state.Form = ctl.state.Form.Key(key)
	return ctl, nil
}

func (ctl Controller) filterKey(key string) (Controller, tea.Cmd) {

	switch key {
	case "esc":
		ctl.state.Filtering = false
		return ctl, nil
	case "enter":
		return ctl.ApplyFilters(ctl.state.Panel.Filters())
	}

	ctl.state.Panel = ctl.state.Panel.Key(key)
	return ctl, nil
}

func (ctl Controller) searchKey(key string) (Controller, tea.Cmd) {

	switch key {
	case "enter", "esc":
		ctl.state.Searching = false
		return ctl, nil
	}

	text, changed := ctl.state.Search.edit(key)
	if !changed {
		return ctl, nil
	}
	return ctl.SetSearch(text)
}

// GoToPage requests page, clamped to the available pages.
func (ctl Controller) GoToPage(page int) (Controller, tea.Cmd) {

	page = pager.Clamp(page, ctl.TotalPages())
	return ctl, message.IntentCmd(message.PageChangeMsg{Page: page})
}

// NextPage requests the following page unless already on the last.
func (ctl Controller) NextPage() (Controller, tea.Cmd) {

	if !ctl.Window().Next {
		return ctl, nil
	}
	return ctl.GoToPage(ctl.state.CurrentPage + 1)
}

// PrevPage requests the preceding page unless already on the first.
func (ctl Controller) PrevPage() (Controller, tea.Cmd) {

	if !ctl.Window().Prev {
		return ctl, nil
	}
	return ctl.GoToPage(ctl.state.CurrentPage - 1)
}

// SetRowsPerPage requests a new page size.
func (ctl Controller) SetRowsPerPage(size int) (Controller, tea.Cmd) {

	if size <= 0 {
		return ctl, nil
	}
	return ctl, message.IntentCmd(message.RowsPerPageMsg{Size: size})
}

func (ctl Controller) cyclePageSize(step int) (Controller, tea.Cmd) {

	opts := ctl.cfg.PageSizeOptions
	idx := slices.Index(opts, ctl.state.PageSize)

	switch {
	case idx < 0:
		idx = 0
	case idx+step < 0 || idx+step >= len(opts):
		return ctl, nil
	default:
		idx += step
	}

	return ctl.SetRowsPerPage(opts[idx])
}

// SortBy toggles sorting on a column and requests the provider sort by it.
func (ctl Controller) SortBy(columnId string) (Controller, tea.Cmd) {

	idx := slices.IndexFunc(ctl.cfg.Columns, func(col nt.Column) bool {
		return col.Id == columnId
	})
	if idx < 0 {
		return ctl, nil
	}

	st := ctl.state
	st.Sort = st.Sort.Toggle(columnId)
	st.Column = idx
	ctl.state = st

	return ctl, message.IntentCmd(message.SortMsg{
		Column:    st.Sort.Column,
		Direction: st.Sort.Direction,
	})
}

// SetSearch updates the search box and forwards text as is, empty included.
func (ctl Controller) SetSearch(text string) (Controller, tea.Cmd) {

	srch, intent := ctl.state.Search.Change(text)
	ctl.state.Search = srch
	return ctl, message.IntentCmd(intent)
}

// OpenFilters shows the filter panel seeded with the current filters.
func (ctl Controller) OpenFilters() Controller {

	if ctl.state.Dialog.Open() {
		return ctl
	}

	st := ctl.state
	st.Filtering = true
	st.Searching = false
	st.Panel = filter.New(ctl.cfg.Columns, st.Filters)
	ctl.state = st
	return ctl
}

// ApplyFilters closes the filter panel and requests filtering.
func (ctl Controller) ApplyFilters(filters map[string]nt.Filter) (Controller, tea.Cmd) {

	st := ctl.state
	st.Filtering = false
	st.Filters = filters
	ctl.state = st

	return ctl, message.IntentCmd(message.FilterMsg{Filters: filters})
}

func (ctl Controller) OpenCreate() Controller {

	dlg, err := ctl.state.Dialog.OpenCreate()
	if err != nil {
		ctl.logger.Info(ctl.ctx, "ignoring open create", "error", err.Error())
		return ctl
	}

	return ctl.opened(dlg, form.New(ctl.fields, nil))
}

func (ctl Controller) OpenEdit(row nt.Row) Controller {

	dlg, err := ctl.state.Dialog.OpenEdit(row)
	if err != nil {
		ctl.logger.Info(ctl.ctx, "ignoring open edit", "error", err.Error())
		return ctl
	}

	return ctl.opened(dlg, form.New(ctl.fields, row))
}

func (ctl Controller) OpenDelete(row nt.Row) Controller {

	dlg, err := ctl.state.Dialog.OpenDelete(row)
	if err != nil {
		ctl.logger.Info(ctl.ctx, "ignoring open delete", "error", err.Error())
		return ctl
	}

	return ctl.opened(dlg, form.Form{})
}

func (ctl Controller) opened(dlg dialog.Dialog, frm form.Form) Controller {

	st := ctl.state
	st.Dialog = dlg
	st.Form = frm
	st.Searching = false
	st.Filtering = false
	st.Err = nil
	ctl.state = st
	return ctl
}

// Cancel closes the open dialog without emitting anything.
func (ctl Controller) Cancel() Controller {

	st := ctl.state
	st.Dialog = st.Dialog.Cancel()
	st.Form = form.Form{}
	st.Err = nil
	ctl.state = st
	return ctl
}

// Confirm submits the open dialog.
// Invalid form input or a submission already in flight keep the dialog open
// with the reason in State.Err.
func (ctl Controller) Confirm() (Controller, tea.Cmd) {

	st := ctl.state
	if !st.Dialog.Open() {
		return ctl, nil
	}

	if st.Pending != nil {
		st.Err = errors.Wrapf(ErrBusy, "waiting on %s", st.Pending)
		ctl.state = st
		return ctl, nil
	}

	var values map[string]any
	if st.Dialog.State() != dialog.DeleteConfirm {
		var err error
		values, err = st.Form.Values()
		if err != nil {
			st.Err = err
			ctl.state = st
			return ctl, nil
		}
	}

	op := message.Op{Kind: st.Dialog.OpKind(), Seq: st.seq + 1}
	dlg, intent, err := st.Dialog.Confirm(op, values)
	if err != nil {
		ctl.logger.Error(ctl.ctx, "failed to confirm dialog", err)
		return ctl, nil
	}

	st.seq = op.Seq
	st.Dialog = dlg
	st.Form = form.Form{}
	st.Pending = &op
	st.Err = nil
	ctl.state = st

	ctl.logger.Info(ctl.ctx, "submitting", "op", op.String())
	return ctl, message.IntentCmd(intent)
}

// result clears the busy flag for the pending op and surfaces any failure
func (ctl Controller) result(msg message.ResultMsg) Controller {

	st := ctl.state
	if st.Pending == nil || *st.Pending != msg.Op {
		ctl.logger.Info(ctl.ctx, "ignoring stale result", "op", msg.Op.String())
		return ctl
	}

	st.Pending = nil
	if msg.Err != nil {
		ctl.logger.Error(ctl.ctx, "submission failed", msg.Err, "op", msg.Op.String())
		st.Err = msg.Err
	}
	ctl.state = st
	return ctl
}
