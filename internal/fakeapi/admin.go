package fakeapi

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request, user *models.User) {
	s.mu.Lock()
	authors := make(map[models.UserID]struct{})
	for _, a := range s.annotations {
		if a.Author != nil {
			authors[a.Author.ID] = struct{}{}
		}
	}
	stats := models.AdminStats{
		TotalUsers:       len(s.users),
		TotalDocuments:   len(s.documents),
		TotalAnnotations: len(s.annotations),
		ActiveUsers:      len(authors),
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request, user *models.User) {
	s.mu.Lock()
	users := make([]*models.User, 0, len(s.users))
	for _, rec := range s.users {
		users = append(users, rec.user)
	}
	s.mu.Unlock()

	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleChangeRole(w http.ResponseWriter, r *http.Request, user *models.User) {
	id := models.UserID(mux.Vars(r)["id"])

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid role")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if rec.user.Role == models.RoleAdmin {
		writeMessage(w, http.StatusForbidden, "Cannot modify an admin user")
		return
	}
	rec.user.Role = role
	writeJSON(w, http.StatusOK, rec.user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, user *models.User) {
	id := models.UserID(mux.Vars(r)["id"])

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if rec.user.Role == models.RoleAdmin {
		writeMessage(w, http.StatusForbidden, "Cannot delete an admin user")
		return
	}
	delete(s.users, id)
	delete(s.byEmail, rec.user.Email)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
