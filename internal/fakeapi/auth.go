package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	UserType string `json:"userType"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// TokenFor mints a bearer token for a seeded user, valid for a day.
func (s *Server) TokenFor(user *models.User) string {
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeMessage(w, http.StatusBadRequest, "Email, password and name are required")
		return
	}

	role := models.RoleReviewer
	if req.UserType != "" {
		parsed, err := models.ParseRole(req.UserType)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid user type")
			return
		}
		role = parsed
	}

	s.mu.Lock()
	if _, exists := s.byEmail[req.Email]; exists {
		s.mu.Unlock()
		writeMessage(w, http.StatusConflict, "User already exists")
		return
	}
	s.mu.Unlock()

	user := s.AddUser(req.Name, req.Email, req.Password, role)
	writeJSON(w, http.StatusCreated, authResponse{Token: s.TokenFor(user), User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	id, ok := s.byEmail[req.Email]
	var rec *userRecord
	if ok {
		rec = s.users[id]
	}
	s.mu.Unlock()

	if rec == nil || bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(req.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: s.TokenFor(rec.user), User: rec.user})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, user *models.User) {
	writeJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}

// authedHandler is a handler that runs with the resolved request identity.
type authedHandler func(w http.ResponseWriter, r *http.Request, user *models.User)

// authed wraps a handler with bearer token resolution.
func (s *Server) authed(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.identify(r)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Authorization token not found")
			return
		}
		next(w, r, user)
	}
}

// admin wraps a handler with bearer token resolution plus an admin check.
func (s *Server) admin(next authedHandler) http.HandlerFunc {
	return s.authed(func(w http.ResponseWriter, r *http.Request, user *models.User) {
		if user.Role != models.RoleAdmin {
			writeMessage(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r, user)
	})
}

func (s *Server) identify(r *http.Request) (*models.User, error) {
	header := r.Header.Get("Authorization")
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		return nil, fmt.Errorf("missing bearer token")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}
	sub, _ := claims["sub"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[models.UserID(sub)]
	if !ok {
		return nil, fmt.Errorf("unknown user %s", sub)
	}
	return rec.user, nil
}
