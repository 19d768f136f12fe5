package panel_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirag807/pdf-annotation-frontend/internal/fakeapi"
	"github.com/chirag807/pdf-annotation-frontend/pkg/client"
	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
	"github.com/chirag807/pdf-annotation-frontend/pkg/panel"
)

type fixture struct {
	srv      *fakeapi.Server
	ts       *httptest.Server
	api      *client.Client
	reviewer *models.User
	viewer   *models.User
	admin    *models.User
	doc      *models.Document
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{}
	f.srv = fakeapi.New()
	f.ts = httptest.NewServer(f.srv.Handler())
	t.Cleanup(f.ts.Close)

	f.api = client.New(f.ts.URL + "/api")
	f.reviewer = f.srv.AddUser("Rue", "rue@example.com", "pw", models.RoleReviewer)
	f.viewer = f.srv.AddUser("Vic", "vic@example.com", "pw", models.RoleViewer)
	f.admin = f.srv.AddUser("Ada", "ada@example.com", "pw", models.RoleAdmin)
	f.doc = f.srv.AddDocument("Spec", f.admin.ID, []byte("%PDF-1.4"))
	return f
}

func (f *fixture) panelFor(t *testing.T, user *models.User) *panel.Panel {
	t.Helper()
	f.api.SetAuthToken(f.srv.TokenFor(user))
	p := panel.New(f.api, func() *models.User { return user }, f.doc.ID, zerolog.Nop())
	require.NoError(t, p.Load(context.Background()))
	return p
}

func ids(anns []*models.Annotation) []models.AnnotationID {
	out := make([]models.AnnotationID, len(anns))
	for i, a := range anns {
		out[i] = a.ID
	}
	return out
}

func TestAddAppendsServerRecordAtEnd(t *testing.T) {
	f := setup(t)
	f.srv.AddAnnotation(f.doc.ID, f.admin, models.AnnotationComment, "existing")

	p := f.panelFor(t, f.reviewer)
	require.Len(t, p.Annotations(), 1)

	require.NoError(t, p.Add(context.Background(), models.AnnotationComment, "new thought"))

	anns := p.Annotations()
	require.Len(t, anns, 2)
	last := anns[len(anns)-1]
	assert.Equal(t, "new thought", last.Content)
	assert.Equal(t, f.reviewer.ID, last.Author.ID)
	assert.False(t, last.ID.IsZero())

	// Appears exactly once.
	count := 0
	for _, a := range anns {
		if a.ID == last.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAddBlankContentIsIgnored(t *testing.T) {
	f := setup(t)
	p := f.panelFor(t, f.reviewer)

	require.NoError(t, p.Add(context.Background(), models.AnnotationComment, "   "))
	assert.Empty(t, p.Annotations())
	assert.Empty(t, f.srv.Annotations())
}

func TestViewerCannotAdd(t *testing.T) {
	f := setup(t)
	p := f.panelFor(t, f.viewer)

	assert.False(t, p.CanAnnotate())
	err := p.Add(context.Background(), models.AnnotationComment, "not allowed")
	assert.ErrorIs(t, err, panel.ErrNotAllowed)
	assert.Empty(t, p.Annotations())
}

func TestSaveEditRefetchesAndClearsDraft(t *testing.T) {
	f := setup(t)
	ann := f.srv.AddAnnotation(f.doc.ID, f.reviewer, models.AnnotationComment, "draft me")
	f.srv.AddAnnotation(f.doc.ID, f.admin, models.AnnotationHighlight, "other")

	p := f.panelFor(t, f.reviewer)
	require.NoError(t, p.StartEdit(ann.ID))
	assert.Equal(t, ann.ID, p.EditingID())
	assert.Equal(t, "draft me", p.Draft())

	p.SetDraft("now corrected")
	require.NoError(t, p.SaveEdit(context.Background()))

	assert.True(t, p.EditingID().IsZero())
	assert.Empty(t, p.Draft())

	// The re-fetched list carries the server-recorded editor.
	require.Len(t, p.Annotations(), 2)
	edited := p.Annotations()[0]
	assert.Equal(t, "now corrected", edited.Content)
	require.NotNil(t, edited.UpdatedBy)
	assert.Equal(t, f.reviewer.ID, edited.UpdatedBy.ID)
}

func TestSaveEditWithBlankDraftIsIgnored(t *testing.T) {
	f := setup(t)
	ann := f.srv.AddAnnotation(f.doc.ID, f.reviewer, models.AnnotationComment, "original")

	p := f.panelFor(t, f.reviewer)
	require.NoError(t, p.StartEdit(ann.ID))
	p.SetDraft("  ")
	require.NoError(t, p.SaveEdit(context.Background()))

	// Still editing, nothing persisted.
	assert.Equal(t, ann.ID, p.EditingID())
	assert.Equal(t, "original", f.srv.Annotations()[0].Content)
}

func TestCancelEditDoesNotPersist(t *testing.T) {
	f := setup(t)
	ann := f.srv.AddAnnotation(f.doc.ID, f.reviewer, models.AnnotationComment, "original")

	p := f.panelFor(t, f.reviewer)
	require.NoError(t, p.StartEdit(ann.ID))
	p.SetDraft("discarded")
	p.CancelEdit()

	assert.True(t, p.EditingID().IsZero())
	assert.Empty(t, p.Draft())
	assert.Equal(t, "original", f.srv.Annotations()[0].Content)
}

func TestStartEditRespectsOwnership(t *testing.T) {
	f := setup(t)
	ann := f.srv.AddAnnotation(f.doc.ID, f.admin, models.AnnotationComment, "admin's note")

	p := f.panelFor(t, f.reviewer)
	assert.ErrorIs(t, p.StartEdit(ann.ID), panel.ErrNotAllowed)

	// An admin can edit anyone's annotation.
	pa := f.panelFor(t, f.admin)
	assert.NoError(t, pa.StartEdit(ann.ID))
}

func TestDeleteRemovesOnlyMatchingEntry(t *testing.T) {
	f := setup(t)
	first := f.srv.AddAnnotation(f.doc.ID, f.reviewer, models.AnnotationComment, "first")
	second := f.srv.AddAnnotation(f.doc.ID, f.reviewer, models.AnnotationComment, "second")
	third := f.srv.AddAnnotation(f.doc.ID, f.reviewer, models.AnnotationComment, "third")

	p := f.panelFor(t, f.reviewer)
	require.NoError(t, p.Delete(context.Background(), second.ID))

	assert.Equal(t, []models.AnnotationID{first.ID, third.ID}, ids(p.Annotations()))
}

func TestViewerCannotDelete(t *testing.T) {
	f := setup(t)
	ann := f.srv.AddAnnotation(f.doc.ID, f.reviewer, models.AnnotationComment, "keep me")

	p := f.panelFor(t, f.viewer)
	assert.ErrorIs(t, p.Delete(context.Background(), ann.ID), panel.ErrNotAllowed)
	assert.Len(t, p.Annotations(), 1)
}

func TestNetworkFailureLeavesListUnchanged(t *testing.T) {
	f := setup(t)
	f.srv.AddAnnotation(f.doc.ID, f.reviewer, models.AnnotationComment, "first")
	ann := f.srv.AddAnnotation(f.doc.ID, f.reviewer, models.AnnotationComment, "second")

	p := f.panelFor(t, f.reviewer)
	before := ids(p.Annotations())

	// Kill the server; every mutation from here on fails at the network
	// layer and must not touch local state.
	f.ts.Close()

	assert.Error(t, p.Add(context.Background(), models.AnnotationComment, "lost"))
	assert.Equal(t, before, ids(p.Annotations()))

	assert.Error(t, p.Delete(context.Background(), ann.ID))
	assert.Equal(t, before, ids(p.Annotations()))

	require.NoError(t, p.StartEdit(ann.ID))
	p.SetDraft("unsaved")
	assert.Error(t, p.SaveEdit(context.Background()))
	assert.Equal(t, before, ids(p.Annotations()))
	// The draft survives so the user can retry.
	assert.Equal(t, ann.ID, p.EditingID())
	assert.Equal(t, "unsaved", p.Draft())
}
