package views

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/chirag807/pdf-annotation-frontend/pkg/client"
	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
	"github.com/chirag807/pdf-annotation-frontend/pkg/panel"
)

// Viewer is the single-document page: the PDF display alongside the
// annotation panel.
type Viewer struct {
	api   *client.Client
	panel *panel.Panel
	log   zerolog.Logger

	loading bool
}

// NewViewer creates the view for documentID.
func NewViewer(api *client.Client, currentUser UserFunc, documentID models.DocumentID, log zerolog.Logger) *Viewer {
	return &Viewer{
		api:     api,
		panel:   panel.New(api, panel.UserFunc(currentUser), documentID, log),
		log:     log.With().Str("view", "viewer").Logger(),
		loading: true,
	}
}

// Load fetches the document and annotations through the panel. Failure is
// reported for an inline message; the view stays usable for a retry.
func (v *Viewer) Load(ctx context.Context) error {
	defer func() { v.loading = false }()
	return v.panel.Load(ctx)
}

// Loading reports whether the initial fetch is still outstanding.
func (v *Viewer) Loading() bool {
	return v.loading
}

// Document returns the loaded document, nil when not found or not loaded.
func (v *Viewer) Document() *models.Document {
	return v.panel.Document()
}

// FileURL returns the URL the embedded PDF display frame should load.
func (v *Viewer) FileURL() string {
	doc := v.panel.Document()
	if doc == nil {
		return ""
	}
	return v.api.DocumentFileURL(doc.ID)
}

// Panel exposes the annotation panel composed into this view.
func (v *Viewer) Panel() *panel.Panel {
	return v.panel
}
