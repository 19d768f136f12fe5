package live_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirag807/pdf-annotation-frontend/internal/fakeapi"
	"github.com/chirag807/pdf-annotation-frontend/pkg/client"
	"github.com/chirag807/pdf-annotation-frontend/pkg/live"
	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
)

func TestStreamURL(t *testing.T) {
	id := models.DocumentID("doc-1")
	assert.Equal(t,
		"ws://localhost:8080/api/annotations/stream/doc-1",
		live.StreamURL("http://localhost:8080/api", id))
	assert.Equal(t,
		"wss://annotations.example.com/api/annotations/stream/doc-1",
		live.StreamURL("https://annotations.example.com/api", id))
}

func TestFeedReceivesAnnotationEvents(t *testing.T) {
	srv := fakeapi.New()
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	api := client.New(ts.URL + "/api")
	reviewer := srv.AddUser("Rue", "rue@example.com", "pw", models.RoleReviewer)
	token := srv.TokenFor(reviewer)
	api.SetAuthToken(token)
	doc := srv.AddDocument("Spec", reviewer.ID, []byte("%PDF-1.4"))

	feed := live.New(live.StreamURL(api.BaseURL(), doc.ID), token, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, feed.Start(ctx))
	defer feed.Close()

	assert.Equal(t, live.StateConnected, feed.State())

	created, err := api.CreateAnnotation(ctx, client.CreateAnnotationRequest{
		Document: doc.ID,
		Page:     1,
		Type:     models.AnnotationComment,
		Content:  "observed live",
		Color:    "#FFFF00",
	})
	require.NoError(t, err)

	select {
	case event := <-feed.Events():
		assert.Equal(t, live.ActionCreated, event.Action)
		require.NotNil(t, event.Annotation)
		assert.Equal(t, created.ID, event.Annotation.ID)
		assert.Equal(t, "observed live", event.Annotation.Content)
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}

	require.NoError(t, api.DeleteAnnotation(ctx, created.ID))

	select {
	case event := <-feed.Events():
		assert.Equal(t, live.ActionDeleted, event.Action)
		require.NotNil(t, event.Annotation)
		assert.Equal(t, created.ID, event.Annotation.ID)
	case <-time.After(5 * time.Second):
		t.Fatal("no delete event received")
	}
}

func TestFeedCloseDrainsAndSettles(t *testing.T) {
	srv := fakeapi.New()
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	api := client.New(ts.URL + "/api")
	admin := srv.AddUser("Ada", "ada@example.com", "pw", models.RoleAdmin)
	doc := srv.AddDocument("Spec", admin.ID, []byte("%PDF-1.4"))

	feed := live.New(live.StreamURL(api.BaseURL(), doc.ID), srv.TokenFor(admin), zerolog.Nop())
	require.NoError(t, feed.Start(context.Background()))

	feed.Close()
	assert.Equal(t, live.StateClosed, feed.State())

	// The events channel closes once the loop exits.
	select {
	case _, open := <-feed.Events():
		assert.False(t, open)
	case <-time.After(5 * time.Second):
		t.Fatal("events channel never closed")
	}

	// Closing twice is a no-op.
	feed.Close()
}

func TestFeedFirstDialFailure(t *testing.T) {
	feed := live.New("ws://127.0.0.1:1/api/annotations/stream/doc-1", "", zerolog.Nop())
	err := feed.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, live.StateDisconnected, feed.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Disconnected", live.StateDisconnected.String())
	assert.Equal(t, "Connecting", live.StateConnecting.String())
	assert.Equal(t, "Connected", live.StateConnected.String())
	assert.Equal(t, "Closing", live.StateClosing.String())
	assert.Equal(t, "Closed", live.StateClosed.String())
}
