package fakeapi_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirag807/pdf-annotation-frontend/internal/fakeapi"
	"github.com/chirag807/pdf-annotation-frontend/pkg/client"
	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
)

func newServer(t *testing.T) (*fakeapi.Server, *client.Client) {
	t.Helper()
	srv := fakeapi.New()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, client.New(ts.URL + "/api")
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	_, api := newServer(t)

	_, err := api.ListDocuments(context.Background())
	require.EqualError(t, err, "Authorization token not found")

	api.SetAuthToken("not-a-jwt")
	_, err = api.ListDocuments(context.Background())
	require.Error(t, err)
}

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	srv, api := newServer(t)
	reviewer := srv.AddUser("Rue", "rue@example.com", "pw", models.RoleReviewer)
	api.SetAuthToken(srv.TokenFor(reviewer))

	_, err := api.AdminStats(context.Background())
	assert.EqualError(t, err, "Admin access required")

	_, err = api.ListUsers(context.Background())
	assert.EqualError(t, err, "Admin access required")
}

func TestReviewerCannotTouchAnotherAuthorsAnnotation(t *testing.T) {
	srv, api := newServer(t)
	owner := srv.AddUser("Ona", "ona@example.com", "pw", models.RoleReviewer)
	other := srv.AddUser("Rue", "rue@example.com", "pw", models.RoleReviewer)
	doc := srv.AddDocument("Spec", owner.ID, []byte("%PDF-1.4"))
	ann := srv.AddAnnotation(doc.ID, owner, models.AnnotationComment, "mine")

	api.SetAuthToken(srv.TokenFor(other))

	_, err := api.UpdateAnnotation(context.Background(), ann.ID, client.UpdateAnnotationRequest{
		Content: "hijacked",
		UserID:  other.ID,
	})
	assert.EqualError(t, err, "You cannot edit this annotation")

	err = api.DeleteAnnotation(context.Background(), ann.ID)
	assert.EqualError(t, err, "You cannot delete this annotation")
	assert.Len(t, srv.Annotations(), 1)
}

func TestAdminCanTouchAnyAnnotation(t *testing.T) {
	srv, api := newServer(t)
	owner := srv.AddUser("Ona", "ona@example.com", "pw", models.RoleReviewer)
	admin := srv.AddUser("Ada", "ada@example.com", "pw", models.RoleAdmin)
	doc := srv.AddDocument("Spec", owner.ID, []byte("%PDF-1.4"))
	ann := srv.AddAnnotation(doc.ID, owner, models.AnnotationComment, "needs moderation")

	api.SetAuthToken(srv.TokenFor(admin))

	updated, err := api.UpdateAnnotation(context.Background(), ann.ID, client.UpdateAnnotationRequest{
		Content: "moderated",
		UserID:  admin.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Content)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, admin.ID, updated.UpdatedBy.ID)

	require.NoError(t, api.DeleteAnnotation(context.Background(), ann.ID))
	assert.Empty(t, srv.Annotations())
}

func TestCreateAnnotationValidation(t *testing.T) {
	srv, api := newServer(t)
	reviewer := srv.AddUser("Rue", "rue@example.com", "pw", models.RoleReviewer)
	doc := srv.AddDocument("Spec", reviewer.ID, []byte("%PDF-1.4"))
	api.SetAuthToken(srv.TokenFor(reviewer))

	_, err := api.CreateAnnotation(context.Background(), client.CreateAnnotationRequest{
		Document: doc.ID,
		Page:     1,
		Type:     "sticker",
		Content:  "nope",
	})
	assert.EqualError(t, err, "Invalid annotation type")

	_, err = api.CreateAnnotation(context.Background(), client.CreateAnnotationRequest{
		Document: doc.ID,
		Page:     1,
		Type:     models.AnnotationComment,
	})
	assert.EqualError(t, err, "Content is required")

	_, err = api.CreateAnnotation(context.Background(), client.CreateAnnotationRequest{
		Document: models.NewDocumentID(),
		Page:     1,
		Type:     models.AnnotationComment,
		Content:  "orphan",
	})
	assert.EqualError(t, err, "Document not found")
}

func TestUploadRejectsNonPDFContent(t *testing.T) {
	srv, api := newServer(t)
	admin := srv.AddUser("Ada", "ada@example.com", "pw", models.RoleAdmin)
	api.SetAuthToken(srv.TokenFor(admin))

	_, err := api.UploadDocument(context.Background(), "Sneaky", "sneaky.pdf",
		strings.NewReader("MZ not a pdf"), nil)
	assert.EqualError(t, err, "Only PDF files are allowed")
}

func TestChangeRolePersists(t *testing.T) {
	srv, api := newServer(t)
	admin := srv.AddUser("Ada", "ada@example.com", "pw", models.RoleAdmin)
	reviewer := srv.AddUser("Rue", "rue@example.com", "pw", models.RoleReviewer)
	api.SetAuthToken(srv.TokenFor(admin))

	require.NoError(t, api.ChangeUserRole(context.Background(), reviewer.ID, models.RoleViewer))

	users, err := api.ListUsers(context.Background())
	require.NoError(t, err)
	for _, u := range users {
		if u.ID == reviewer.ID {
			assert.Equal(t, models.RoleViewer, u.Role)
		}
	}
}

func TestAdminRowsRejectedServerSide(t *testing.T) {
	srv, api := newServer(t)
	admin := srv.AddUser("Ada", "ada@example.com", "pw", models.RoleAdmin)
	peer := srv.AddUser("Bea", "bea@example.com", "pw", models.RoleAdmin)
	api.SetAuthToken(srv.TokenFor(admin))

	err := api.ChangeUserRole(context.Background(), peer.ID, models.RoleViewer)
	assert.EqualError(t, err, "Cannot modify an admin user")

	err = api.DeleteUser(context.Background(), peer.ID)
	assert.EqualError(t, err, "Cannot delete an admin user")
	assert.Equal(t, 2, srv.UserCount())
}
