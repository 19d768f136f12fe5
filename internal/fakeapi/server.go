// Package fakeapi provides an in-memory fake of the PDF annotation service
// HTTP API for testing purposes. It implements the real endpoint table —
// auth, documents, annotations, admin — with JWT bearer tokens, bcrypt
// password hashes and the same permission rules the real backend enforces,
// so client-side behavior can be exercised end to end without a backend.
//
// There is no executable binary for this package; tests mount
// [Server.Handler] on an httptest.Server.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"

	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
)

type userRecord struct {
	user         *models.User
	passwordHash []byte
}

type documentRecord struct {
	document *models.Document
	file     []byte
}

// Server is the fake API. All exported methods are safe for concurrent use;
// the HTTP handlers run under one mutex, which is plenty for tests.
type Server struct {
	mu          sync.Mutex
	users       map[models.UserID]*userRecord
	byEmail     map[string]models.UserID
	documents   map[models.DocumentID]*documentRecord
	annotations []*models.Annotation

	secret   []byte
	router   *mux.Router
	upgrader websocket.Upgrader

	streamMu sync.Mutex
	streams  map[models.DocumentID][]*websocket.Conn
}

// New creates an empty fake server signing tokens with a random secret.
func New() *Server {
	s := &Server{
		users:     make(map[models.UserID]*userRecord),
		byEmail:   make(map[string]models.UserID),
		documents: make(map[models.DocumentID]*documentRecord),
		secret:    []byte(uuid.NewString()),
		streams:   make(map[models.DocumentID][]*websocket.Conn),
	}
	s.routes()
	return s
}

// Handler returns the HTTP handler serving the API under the /api prefix.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router = mux.NewRouter()
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", s.authed(s.handleMe)).Methods(http.MethodGet)

	api.HandleFunc("/documents", s.authed(s.handleListDocuments)).Methods(http.MethodGet)
	api.HandleFunc("/documents/upload", s.authed(s.handleUpload)).Methods(http.MethodPost)
	api.HandleFunc("/documents/{id}/file", s.authed(s.handleDocumentFile)).Methods(http.MethodGet)

	api.HandleFunc("/annotations/document/{id}", s.authed(s.handleListAnnotations)).Methods(http.MethodGet)
	api.HandleFunc("/annotations/stream/{id}", s.handleStream).Methods(http.MethodGet)
	api.HandleFunc("/annotations", s.authed(s.handleCreateAnnotation)).Methods(http.MethodPost)
	api.HandleFunc("/annotations/{id}", s.authed(s.handleUpdateAnnotation)).Methods(http.MethodPut)
	api.HandleFunc("/annotations/{id}", s.authed(s.handleDeleteAnnotation)).Methods(http.MethodDelete)

	api.HandleFunc("/admin/stats", s.admin(s.handleStats)).Methods(http.MethodGet)
	api.HandleFunc("/admin/users", s.admin(s.handleListUsers)).Methods(http.MethodGet)
	api.HandleFunc("/admin/users/{id}/role", s.admin(s.handleChangeRole)).Methods(http.MethodPatch)
	api.HandleFunc("/admin/users/{id}", s.admin(s.handleDeleteUser)).Methods(http.MethodDelete)
}

// AddUser seeds an account and returns it. Panics on a bad role; it is test
// setup code.
func (s *Server) AddUser(name, email, password string, role models.Role) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	user := &models.User{
		ID:        models.NewUserID(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = &userRecord{user: user, passwordHash: hash}
	s.byEmail[email] = user.ID
	return user
}

// AddDocument seeds a document with the given PDF bytes and returns it.
func (s *Server) AddDocument(title string, owner models.UserID, file []byte) *models.Document {
	doc := &models.Document{
		ID:        models.NewDocumentID(),
		Title:     title,
		OwnerID:   owner,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = &documentRecord{document: doc, file: file}
	return doc
}

// AddAnnotation seeds an annotation authored by the given user.
func (s *Server) AddAnnotation(doc models.DocumentID, author *models.User, typ models.AnnotationType, content string) *models.Annotation {
	ann := &models.Annotation{
		ID:         models.NewAnnotationID(),
		DocumentID: doc,
		Author:     author,
		Type:       typ,
		Content:    content,
		Color:      "#FFFF00",
		Page:       1,
		CreatedAt:  time.Now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.annotations = append(s.annotations, ann)
	return ann
}

// Annotations returns a snapshot of the stored annotations in order.
func (s *Server) Annotations() []*models.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Annotation, len(s.annotations))
	copy(out, s.annotations)
	return out
}

// UserCount returns the number of stored accounts.
func (s *Server) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
