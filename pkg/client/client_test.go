package client_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirag807/pdf-annotation-frontend/internal/fakeapi"
	"github.com/chirag807/pdf-annotation-frontend/pkg/client"
	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
)

func bytesReader(b []byte) io.Reader { return bytes.NewReader(b) }

func newFake(t *testing.T) (*fakeapi.Server, *client.Client) {
	t.Helper()
	srv := fakeapi.New()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, client.New(ts.URL + "/api")
}

func TestLoginSurfacesServerMessageVerbatim(t *testing.T) {
	srv, api := newFake(t)
	srv.AddUser("Ann", "ann@example.com", "hunter2", models.RoleReviewer)

	_, err := api.Login(context.Background(), "ann@example.com", "wrong")
	require.Error(t, err)

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password", apiErr.Error())
}

func TestLoginAttachesToken(t *testing.T) {
	srv, api := newFake(t)
	user := srv.AddUser("Ann", "ann@example.com", "hunter2", models.RoleReviewer)

	resp, err := api.Login(context.Background(), "ann@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, resp.Token, api.AuthToken())

	// The token must carry a subsequent request.
	me, err := api.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)
}

func TestBearerHeaderOnEveryRequest(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	api := client.New(ts.URL)
	api.SetAuthToken("tok-123")

	_, err := api.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", got)
}

func TestRegisterDefaultsAndErrors(t *testing.T) {
	srv, api := newFake(t)

	resp, err := api.Register(context.Background(), "bob@example.com", "pw", "Bob", models.RoleReviewer)
	require.NoError(t, err)
	assert.Equal(t, models.RoleReviewer, resp.User.Role)
	assert.Equal(t, 1, srv.UserCount())

	_, err = api.Register(context.Background(), "bob@example.com", "pw", "Bob", models.RoleReviewer)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "User already exists", apiErr.Message)
}

func TestUploadDocumentReportsProgress(t *testing.T) {
	srv, api := newFake(t)
	user := srv.AddUser("Ann", "ann@example.com", "pw", models.RoleAdmin)
	api.SetAuthToken(srv.TokenFor(user))

	pdf := []byte("%PDF-1.7 fake body")
	var last int
	doc, err := api.UploadDocument(context.Background(), "Q3 report", "report.pdf", bytesReader(pdf), func(percent int) {
		last = percent
	})
	require.NoError(t, err)
	assert.Equal(t, "Q3 report", doc.Title)
	assert.False(t, doc.ID.IsZero())
	assert.Equal(t, 100, last)

	raw, err := api.FetchDocumentFile(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, pdf, raw)
}

func TestListAnnotationsShape(t *testing.T) {
	srv, api := newFake(t)
	user := srv.AddUser("Ann", "ann@example.com", "pw", models.RoleReviewer)
	doc := srv.AddDocument("Spec", user.ID, []byte("%PDF-1.4"))
	srv.AddAnnotation(doc.ID, user, models.AnnotationComment, "first")
	srv.AddAnnotation(doc.ID, user, models.AnnotationHighlight, "second")
	api.SetAuthToken(srv.TokenFor(user))

	result, err := api.ListAnnotations(context.Background(), doc.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Document)
	assert.Equal(t, doc.ID, result.Document.ID)
	require.Len(t, result.Annotations, 2)
	assert.Equal(t, "first", result.Annotations[0].Content)
	assert.Equal(t, "second", result.Annotations[1].Content)
}
