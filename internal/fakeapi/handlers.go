package fakeapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"

	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
)

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request, user *models.User) {
	s.mu.Lock()
	docs := make([]*models.Document, 0, len(s.documents))
	for _, rec := range s.documents {
		docs = append(docs, rec.document)
	}
	s.mu.Unlock()

	sort.Slice(docs, func(i, j int) bool { return docs[i].CreatedAt.Before(docs[j].CreatedAt) })
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, user *models.User) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	title := r.FormValue("title")
	if title == "" {
		writeMessage(w, http.StatusBadRequest, "Title is required")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to read file")
		return
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		writeMessage(w, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}

	doc := s.AddDocument(title, user.ID, data)
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleDocumentFile(w http.ResponseWriter, r *http.Request, user *models.User) {
	id := models.DocumentID(mux.Vars(r)["id"])

	s.mu.Lock()
	rec, ok := s.documents[id]
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, "Document not found")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rec.file)
}

type documentAnnotations struct {
	Document    *models.Document     `json:"document"`
	Annotations []*models.Annotation `json:"annotations"`
}

func (s *Server) handleListAnnotations(w http.ResponseWriter, r *http.Request, user *models.User) {
	id := models.DocumentID(mux.Vars(r)["id"])

	s.mu.Lock()
	rec, ok := s.documents[id]
	var anns []*models.Annotation
	if ok {
		anns = make([]*models.Annotation, 0)
		for _, a := range s.annotations {
			if a.DocumentID == id {
				anns = append(anns, a)
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		writeMessage(w, http.StatusNotFound, "Document not found")
		return
	}
	writeJSON(w, http.StatusOK, documentAnnotations{Document: rec.document, Annotations: anns})
}

type createAnnotationRequest struct {
	Document models.DocumentID     `json:"document"`
	Page     int                   `json:"page"`
	Type     models.AnnotationType `json:"type"`
	Content  string                `json:"content"`
	Color    string                `json:"color"`
}

func (s *Server) handleCreateAnnotation(w http.ResponseWriter, r *http.Request, user *models.User) {
	if user.Role == models.RoleViewer {
		writeMessage(w, http.StatusForbidden, "Viewers cannot create annotations")
		return
	}

	var req createAnnotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, err := models.ParseAnnotationType(string(req.Type)); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid annotation type")
		return
	}
	if req.Content == "" {
		writeMessage(w, http.StatusBadRequest, "Content is required")
		return
	}

	s.mu.Lock()
	if _, ok := s.documents[req.Document]; !ok {
		s.mu.Unlock()
		writeMessage(w, http.StatusNotFound, "Document not found")
		return
	}
	ann := &models.Annotation{
		ID:         models.NewAnnotationID(),
		DocumentID: req.Document,
		Author:     user,
		Type:       req.Type,
		Content:    req.Content,
		Color:      req.Color,
		Page:       req.Page,
		CreatedAt:  time.Now().UTC(),
	}
	s.annotations = append(s.annotations, ann)
	s.mu.Unlock()

	s.broadcast(ann.DocumentID, Event{Action: ActionCreated, Annotation: ann})
	writeJSON(w, http.StatusCreated, ann)
}

type updateAnnotationRequest struct {
	Content string        `json:"content"`
	UserID  models.UserID `json:"userId"`
}

func (s *Server) handleUpdateAnnotation(w http.ResponseWriter, r *http.Request, user *models.User) {
	id := models.AnnotationID(mux.Vars(r)["id"])

	var req updateAnnotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	ann := s.findLocked(id)
	if ann == nil {
		s.mu.Unlock()
		writeMessage(w, http.StatusNotFound, "Annotation not found")
		return
	}
	if !canTouch(user, ann) {
		s.mu.Unlock()
		writeMessage(w, http.StatusForbidden, "You cannot edit this annotation")
		return
	}
	ann.Content = req.Content
	ann.UpdatedBy = user
	updated := *ann
	s.mu.Unlock()

	s.broadcast(updated.DocumentID, Event{Action: ActionUpdated, Annotation: &updated})
	writeJSON(w, http.StatusOK, &updated)
}

func (s *Server) handleDeleteAnnotation(w http.ResponseWriter, r *http.Request, user *models.User) {
	id := models.AnnotationID(mux.Vars(r)["id"])

	s.mu.Lock()
	ann := s.findLocked(id)
	if ann == nil {
		s.mu.Unlock()
		writeMessage(w, http.StatusNotFound, "Annotation not found")
		return
	}
	if !canTouch(user, ann) {
		s.mu.Unlock()
		writeMessage(w, http.StatusForbidden, "You cannot delete this annotation")
		return
	}
	kept := s.annotations[:0]
	for _, a := range s.annotations {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.annotations = kept
	s.mu.Unlock()

	s.broadcast(ann.DocumentID, Event{Action: ActionDeleted, Annotation: ann})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Annotation deleted"})
}

// canTouch mirrors the client-side predicate: author and not a viewer, or
// admin.
func canTouch(user *models.User, ann *models.Annotation) bool {
	if user.Role == models.RoleAdmin {
		return true
	}
	return ann.Author != nil && ann.Author.ID == user.ID && user.Role != models.RoleViewer
}

func (s *Server) findLocked(id models.AnnotationID) *models.Annotation {
	for _, a := range s.annotations {
		if a.ID == id {
			return a
		}
	}
	return nil
}
