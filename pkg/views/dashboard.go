// Package views holds the page-level orchestration: each view fetches its
// data on mount, hands it to the display layer, and folds callback-driven
// mutations back into local state or re-fetches wholesale. Views follow the
// UI threading model and are not safe for concurrent use.
package views

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/chirag807/pdf-annotation-frontend/pkg/client"
	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
	"github.com/chirag807/pdf-annotation-frontend/pkg/upload"
)

// UserFunc supplies the current session user to a view.
type UserFunc func() *models.User

// Dashboard lists documents and, for admins, offers the upload pane.
type Dashboard struct {
	api         *client.Client
	currentUser UserFunc
	log         zerolog.Logger

	documents []*models.Document
	loading   bool
	errMsg    string
}

// NewDashboard creates the document list view. Call Load before reading.
func NewDashboard(api *client.Client, currentUser UserFunc, log zerolog.Logger) *Dashboard {
	return &Dashboard{
		api:         api,
		currentUser: currentUser,
		log:         log.With().Str("view", "dashboard").Logger(),
		loading:     true,
	}
}

// Load fetches the document list. A failure degrades to an empty list with
// an inline error banner; it is never fatal.
func (d *Dashboard) Load(ctx context.Context) {
	defer func() { d.loading = false }()

	docs, err := d.api.ListDocuments(ctx)
	if err != nil {
		d.log.Error().Err(err).Msg("failed to fetch documents")
		d.documents = nil
		d.errMsg = "Failed to fetch documents"
		return
	}
	d.documents = docs
	d.errMsg = ""
}

// Documents returns the fetched document list.
func (d *Dashboard) Documents() []*models.Document {
	return d.documents
}

// Loading reports whether the initial fetch is still outstanding.
func (d *Dashboard) Loading() bool {
	return d.loading
}

// Error returns the inline banner text, empty when the last fetch succeeded.
func (d *Dashboard) Error() string {
	return d.errMsg
}

// CanUpload reports whether the upload pane is offered; only admins see it.
func (d *Dashboard) CanUpload() bool {
	u := d.currentUser()
	return u != nil && u.Role == models.RoleAdmin
}

// Upload runs an upload batch and, on success, re-fetches the document list
// wholesale rather than merging the created records.
func (d *Dashboard) Upload(ctx context.Context, batch *upload.Batch, title string, files []upload.File) error {
	if _, err := batch.Run(ctx, title, files); err != nil {
		return err
	}
	d.Load(ctx)
	return nil
}
