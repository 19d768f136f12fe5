// Package live subscribes to a document's annotation event stream over
// WebSocket. The feed reconnects on its own: when the connection drops it
// returns to Disconnected and a background loop redials on a fixed check
// interval until Close is called. Nothing in the core flows depends on the
// feed; consumers typically reload the annotation panel when an event
// arrives.
package live

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
)

// Action labels what happened to the annotation carried by an event.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event is one annotation change observed on the stream.
type Event struct {
	Action     Action             `json:"action"`
	Annotation *models.Annotation `json:"annotation"`
}

// DefaultCheckInterval is the reconnect check interval used when none is
// configured.
const DefaultCheckInterval = 5 * time.Second

// eventBuffer bounds the delivery channel; events beyond it are dropped
// with a warning rather than blocking the read loop.
const eventBuffer = 64

// Feed is a reconnecting subscription to one document's annotation events.
type Feed struct {
	// NewFunc dials the stream. It is swapped out in tests.
	NewFunc func(ctx context.Context) (*websocket.Conn, error)

	// CheckInterval is how often the reconnect loop retries after a drop.
	CheckInterval time.Duration

	log    zerolog.Logger
	events chan Event

	mu    sync.Mutex
	state State
	conn  *websocket.Conn

	closeCh  chan struct{}
	loopDone chan struct{}
}

// StreamURL derives the WebSocket stream endpoint for a document from the
// API base URL, carrying the bearer token as a header is left to the dialer.
func StreamURL(baseURL string, id models.DocumentID) string {
	ws := strings.Replace(baseURL, "http", "ws", 1)
	return ws + "/annotations/stream/" + id.String()
}

// New creates a feed for the given stream URL, attaching token (when
// non-empty) as a bearer header on the dial request.
func New(streamURL, token string, log zerolog.Logger) *Feed {
	f := &Feed{
		CheckInterval: DefaultCheckInterval,
		log:           log.With().Str("component", "live").Logger(),
		events:        make(chan Event, eventBuffer),
		state:         StateDisconnected,
		closeCh:       make(chan struct{}),
		loopDone:      make(chan struct{}),
	}
	f.NewFunc = func(ctx context.Context) (*websocket.Conn, error) {
		header := http.Header{}
		if token != "" {
			header.Set("Authorization", "Bearer "+token)
		}
		conn, resp, err := websocket.DefaultDialer.DialContext(ctx, streamURL, header)
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return conn, err
	}
	return f
}

// Events delivers the stream. The channel is closed once the feed is
// closed and the read loop has drained.
func (f *Feed) Events() <-chan Event {
	return f.events
}

// State returns the current connection state.
func (f *Feed) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Feed) setState(newState State) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.state.validateTransitionTo(newState); err != nil {
		f.log.Error().Err(err).Msg("refusing feed transition")
		return false
	}
	f.state = newState
	return true
}

// Start makes the initial connection and launches the reconnect loop. The
// first dial failing is an error; later drops are handled by the loop.
func (f *Feed) Start(ctx context.Context) error {
	if !f.setState(StateConnecting) {
		return errClosed
	}
	conn, err := f.NewFunc(ctx)
	if err != nil {
		f.setState(StateDisconnected)
		return err
	}
	f.adopt(conn)
	go f.run(ctx)
	return nil
}

var errClosed = errors.New("feed is closed")

func (f *Feed) adopt(conn *websocket.Conn) {
	f.mu.Lock()
	f.conn = conn
	f.mu.Unlock()
	f.setState(StateConnected)
}

// run owns the connection: it reads events until the connection drops, then
// redials every CheckInterval until Close or context cancellation.
func (f *Feed) run(ctx context.Context) {
	defer close(f.loopDone)
	defer close(f.events)

	for {
		f.readAll()

		select {
		case <-f.closeCh:
			return
		case <-ctx.Done():
			return
		default:
		}
		f.setState(StateDisconnected)

		interval := f.CheckInterval
		if interval <= 0 {
			interval = DefaultCheckInterval
		}

		for {
			select {
			case <-f.closeCh:
				return
			case <-ctx.Done():
				return
			case <-time.After(interval):
			}

			if !f.setState(StateConnecting) {
				return
			}
			conn, err := f.NewFunc(ctx)
			if err != nil {
				f.log.Warn().Err(err).Msg("reconnect failed")
				f.setState(StateDisconnected)
				continue
			}
			f.adopt(conn)
			break
		}
	}
}

// readAll consumes events from the current connection until it errors.
func (f *Feed) readAll() {
	f.mu.Lock()
	conn := f.conn
	f.mu.Unlock()
	if conn == nil {
		return
	}

	for {
		var event Event
		if err := conn.ReadJSON(&event); err != nil {
			return
		}
		select {
		case f.events <- event:
		default:
			f.log.Warn().Msg("event buffer full, dropping")
		}
	}
}

// Close tears the feed down and waits for the loop to exit.
func (f *Feed) Close() {
	if !f.setState(StateClosing) {
		return
	}
	close(f.closeCh)

	f.mu.Lock()
	conn := f.conn
	f.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}

	<-f.loopDone
	f.setState(StateClosed)
}
