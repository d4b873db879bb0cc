// Package portal is the admin and brand portal: a login screen in front of a
// role based dashboard whose pages browse and edit rows held by a Provider.
package portal

import (
	"context"

	nt "portal/entity"
)

// Provider specifies a backing datastore of rows.
type Provider interface {
	// Name returns the name of the data source
	Name() string
	// SetView search, sort and filters for subsequent queries
	SetView(view nt.View) (err error)
	// Count rows matching the view
	Count(ctx context.Context) (count int, err error)
	// GetPage of rows matching the view
	GetPage(ctx context.Context, offset, size int) (rows []nt.Row, err error)
	// Create a row, returning it as stored
	Create(ctx context.Context, values map[string]any) (row nt.Row, err error)
	// Update a row's values
	Update(ctx context.Context, id string, values map[string]any) (err error)
	// Delete a row
	Delete(ctx context.Context, id string) (err error)
}
