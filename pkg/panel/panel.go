// Package panel carries the state of the annotation panel for one document:
// the in-memory annotation list (the client-side cache of the server's
// authoritative collection), the single-slot edit draft, and the
// permission-gated mutations against the API.
//
// Reconciliation policy after each mutation:
//   - create: append the server-returned record to the local list, so the
//     list stays in arrival order;
//   - update: discard the draft and re-fetch the whole list rather than
//     merging, so the view reflects server state including who last edited;
//   - delete: remove the matching entry locally once the server confirmed.
//
// A mutation that fails at the network layer leaves the local list exactly
// as it was; there are no partial applies.
package panel

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chirag807/pdf-annotation-frontend/pkg/client"
	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
	"github.com/chirag807/pdf-annotation-frontend/pkg/permission"
)

// ErrNotAllowed is returned when the current user lacks permission for the
// attempted annotation operation.
var ErrNotAllowed = errors.New("operation not permitted for current user")

// ErrUnknownAnnotation is returned when an operation names an annotation id
// that is not in the panel's list.
var ErrUnknownAnnotation = errors.New("annotation not in panel")

// DefaultColor is applied to annotations created from the panel.
const DefaultColor = "#FFFF00"

// UserFunc supplies the current session user; the panel re-reads it on every
// permission check so a logout mid-session is honored immediately.
type UserFunc func() *models.User

// Panel is the annotation panel state for a single document.
//
// Panel follows the UI threading model: all methods are called from one
// goroutine, with suspension only at the awaited API calls. It is not safe
// for concurrent use.
type Panel struct {
	api         *client.Client
	currentUser UserFunc
	log         zerolog.Logger

	documentID  models.DocumentID
	document    *models.Document
	annotations []*models.Annotation

	editingID models.AnnotationID
	draft     string
}

// New creates a panel for documentID. Call Load before reading state.
func New(api *client.Client, currentUser UserFunc, documentID models.DocumentID, log zerolog.Logger) *Panel {
	return &Panel{
		api:         api,
		currentUser: currentUser,
		log:         log.With().Str("component", "panel").Stringer("document", documentID).Logger(),
		documentID:  documentID,
	}
}

// Load fetches the document and its annotations. On failure the previously
// loaded state is left untouched and the error is returned for an inline
// banner; a panel that never loaded stays empty.
func (p *Panel) Load(ctx context.Context) error {
	result, err := p.api.ListAnnotations(ctx, p.documentID)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to fetch annotations")
		return err
	}
	p.document = result.Document
	p.annotations = result.Annotations
	return nil
}

// Document returns the loaded document, nil before a successful Load.
func (p *Panel) Document() *models.Document {
	return p.document
}

// Annotations returns the current list in arrival order.
func (p *Panel) Annotations() []*models.Annotation {
	return p.annotations
}

// Capabilities reports what the current user may do to ann, for the render
// layer to decide which actions to offer.
func (p *Panel) Capabilities(ann *models.Annotation) permission.Capabilities {
	return permission.OnAnnotation(p.currentUser(), ann)
}

// CanAnnotate reports whether the creation form should be offered at all.
func (p *Panel) CanAnnotate() bool {
	return permission.CanAnnotate(p.currentUser())
}

// Add creates a new annotation on page 1 with the default color and appends
// the server's record to the list. Blank content is ignored without a
// network call. Viewers get ErrNotAllowed.
func (p *Panel) Add(ctx context.Context, typ models.AnnotationType, content string) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	if !p.CanAnnotate() {
		return ErrNotAllowed
	}

	created, err := p.api.CreateAnnotation(ctx, client.CreateAnnotationRequest{
		Document: p.documentID,
		Page:     1,
		Type:     typ,
		Content:  content,
		Color:    DefaultColor,
	})
	if err != nil {
		p.log.Error().Err(err).Msg("failed to add annotation")
		return err
	}

	p.annotations = append(p.annotations, created)
	return nil
}

// EditingID returns the id of the annotation currently in edit mode, or the
// zero id when none is.
func (p *Panel) EditingID() models.AnnotationID {
	return p.editingID
}

// Draft returns the current edit buffer.
func (p *Panel) Draft() string {
	return p.draft
}

// SetDraft replaces the edit buffer.
func (p *Panel) SetDraft(content string) {
	p.draft = content
}

// StartEdit puts the annotation with the given id into edit mode, seeding
// the draft with its current content. At most one annotation is in edit
// mode; starting another replaces the previous draft.
func (p *Panel) StartEdit(id models.AnnotationID) error {
	ann := p.find(id)
	if ann == nil {
		return ErrUnknownAnnotation
	}
	if !permission.OnAnnotation(p.currentUser(), ann).Edit {
		return ErrNotAllowed
	}
	p.editingID = id
	p.draft = ann.Content
	return nil
}

// CancelEdit leaves edit mode without persisting the draft.
func (p *Panel) CancelEdit() {
	p.editingID = ""
	p.draft = ""
}

// SaveEdit persists the draft for the annotation in edit mode, then clears
// the edit state and re-fetches the full list so the view picks up the
// server-recorded last editor. A blank draft is ignored. A failed save
// leaves both the list and the draft untouched so the user can retry.
func (p *Panel) SaveEdit(ctx context.Context) error {
	if p.editingID == "" {
		return nil
	}
	if strings.TrimSpace(p.draft) == "" {
		return nil
	}
	user := p.currentUser()
	if user == nil {
		return ErrNotAllowed
	}

	_, err := p.api.UpdateAnnotation(ctx, p.editingID, client.UpdateAnnotationRequest{
		Content: p.draft,
		UserID:  user.ID,
	})
	if err != nil {
		p.log.Error().Err(err).Msg("failed to update annotation")
		return err
	}

	p.editingID = ""
	p.draft = ""

	// Invalidate and reload: simplicity over latency, and the only way to
	// see the authoritative updatedBy without duplicating server logic.
	if err := p.Load(ctx); err != nil {
		return err
	}
	return nil
}

// Delete removes an annotation after server confirmation. The local list
// only changes when the server reported success, and only the matching
// entry is dropped.
func (p *Panel) Delete(ctx context.Context, id models.AnnotationID) error {
	ann := p.find(id)
	if ann == nil {
		return ErrUnknownAnnotation
	}
	if !permission.OnAnnotation(p.currentUser(), ann).Delete {
		return ErrNotAllowed
	}

	if err := p.api.DeleteAnnotation(ctx, id); err != nil {
		p.log.Error().Err(err).Msg("failed to delete annotation")
		return err
	}

	kept := p.annotations[:0:0]
	for _, a := range p.annotations {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	p.annotations = kept

	if p.editingID == id {
		p.CancelEdit()
	}
	return nil
}

func (p *Panel) find(id models.AnnotationID) *models.Annotation {
	for _, a := range p.annotations {
		if a.ID == id {
			return a
		}
	}
	return nil
}
