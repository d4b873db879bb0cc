package portal

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"

	"portal/datatable"
	nt "portal/entity"
	"portal/message"
	"portal/pager"
)

// fetch gets the requested page from the provider
func (m Model) fetch() tea.Cmd {

	seq := m.fetchSeq
	page, size := m.page, m.pageSize

	return func() tea.Msg {

		ctx, cancel := context.WithTimeout(m.ctx, m.cfg.ProviderTimeout)
		defer cancel()

		count, err := m.provider.Count(ctx)
		if err != nil {
			return fetchFailedMsg{seq: seq, err: err}
		}

		// rows may have gone since the page was asked for
		page = pager.Clamp(page, pager.TotalPages(count, size))

		rows, err := m.provider.GetPage(ctx, (page-1)*size, size)
		if err != nil {
			return fetchFailedMsg{seq: seq, err: err}
		}

		return fetchedMsg{
			seq: seq,
			page: datatable.PageMsg{
				Rows:        rows,
				TotalItems:  count,
				CurrentPage: page,
				PageSize:    size,
			},
		}
	}
}

// mutate runs a create, edit or delete and reports its outcome for op
func (m Model) mutate(op message.Op, fn func(ctx context.Context) error) tea.Cmd {

	return func() tea.Msg {

		ctx, cancel := context.WithTimeout(m.ctx, m.cfg.ProviderTimeout)
		defer cancel()

		err := fn(ctx)
		if err != nil {
			err = errors.Wrapf(err, "%s failed", op)
		}
		return message.ResultMsg{Op: op, Err: err}
	}
}

func (m Model) createItem(msg message.CreateItemMsg) tea.Cmd {
	return m.mutate(msg.Op, func(ctx context.Context) error {
		_, err := m.provider.Create(ctx, msg.Values)
		return err
	})
}

func (m Model) editItem(msg message.EditItemMsg) tea.Cmd {
	return m.mutate(msg.Op, func(ctx context.Context) error {
		return m.provider.Update(ctx, msg.Row.Id(), msg.Values)
	})
}

func (m Model) deleteItem(msg message.DeleteItemMsg) tea.Cmd {
	return m.mutate(msg.Op, func(ctx context.Context) error {
		return m.provider.Delete(ctx, msg.Row.Id())
	})
}

// sortOf translates a column sort into a provider sort
func (m Model) sortOf(msg message.SortMsg) nt.Sort {
	return nt.Sort{
		Field:     m.cfg.columnKey(msg.Column),
		Direction: msg.Direction,
	}
}
