package fakeapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
)

// Action labels an annotation change event on the stream.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event is the wire format of the annotation stream.
type Event struct {
	Action     Action             `json:"action"`
	Annotation *models.Annotation `json:"annotation"`
}

// handleStream upgrades the connection and keeps it registered for the
// document's annotation events until the peer goes away.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := models.DocumentID(mux.Vars(r)["id"])

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.streamMu.Lock()
	s.streams[id] = append(s.streams[id], conn)
	s.streamMu.Unlock()

	// Drain control frames; a read error means the peer disconnected.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.dropStream(id, conn)
				return
			}
		}
	}()
}

func (s *Server) dropStream(id models.DocumentID, conn *websocket.Conn) {
	s.streamMu.Lock()
	defer s.streamMu.Unlock()
	conns := s.streams[id]
	for i, c := range conns {
		if c == conn {
			s.streams[id] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	_ = conn.Close()
}

// broadcast sends an event to every subscriber of the document's stream.
// Write failures drop the subscriber.
func (s *Server) broadcast(id models.DocumentID, event Event) {
	s.streamMu.Lock()
	conns := make([]*websocket.Conn, len(s.streams[id]))
	copy(conns, s.streams[id])
	s.streamMu.Unlock()

	for _, c := range conns {
		if err := c.WriteJSON(event); err != nil {
			s.dropStream(id, c)
		}
	}
}
