// Package models defines the entities exchanged with the PDF annotation
// service: users and their roles, documents, annotations and the admin
// statistics summary. The same types are used by the API client, the
// application state layer and the fake test server, so the JSON tags here
// are the single definition of the wire format.
package models

import (
	"fmt"
	"time"
)

// Role is the access level of a user account.
type Role string

const (
	// RoleViewer is read-only: viewers can open documents and read
	// annotations but never create, edit or delete them.
	RoleViewer Role = "viewer"
	// RoleReviewer is the default authenticated role; reviewers annotate
	// documents and manage their own annotations.
	RoleReviewer Role = "reviewer"
	// RoleAdmin has full control, including other users' annotations and
	// the user management surface.
	RoleAdmin Role = "admin"
)

// ParseRole validates a role string received from user input or the wire.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleViewer, RoleReviewer, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// AnnotationType distinguishes the kinds of annotations a reviewer can attach.
type AnnotationType string

const (
	AnnotationComment   AnnotationType = "comment"
	AnnotationHighlight AnnotationType = "highlight"
	AnnotationDrawing   AnnotationType = "drawing"
)

// ParseAnnotationType validates an annotation type string.
func ParseAnnotationType(s string) (AnnotationType, error) {
	switch AnnotationType(s) {
	case AnnotationComment, AnnotationHighlight, AnnotationDrawing:
		return AnnotationType(s), nil
	}
	return "", fmt.Errorf("unknown annotation type %q", s)
}

// User is an account on the annotation service. Role is mutated only through
// the admin surface; within a session the identity is immutable.
type User struct {
	ID        UserID    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Document is an uploaded PDF. The PDF bytes themselves are served by
// GET /documents/:id/file and are never embedded in the model.
type Document struct {
	ID        DocumentID `json:"id"`
	Title     string     `json:"title"`
	OwnerID   UserID     `json:"ownerId,omitempty"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
}

// Annotation is a user-authored note, highlight or drawing attached to one
// page of a document. UpdatedBy is set by the server when someone other than
// nobody has edited the annotation since creation.
type Annotation struct {
	ID         AnnotationID   `json:"id"`
	DocumentID DocumentID     `json:"documentId"`
	Author     *User          `json:"user"`
	UpdatedBy  *User          `json:"updatedBy,omitempty"`
	Type       AnnotationType `json:"type"`
	Content    string         `json:"content"`
	Color      string         `json:"color"`
	Page       int            `json:"page"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// AdminStats is the aggregate counters shown on the admin overview tab.
type AdminStats struct {
	TotalUsers       int `json:"totalUsers"`
	TotalDocuments   int `json:"totalDocuments"`
	TotalAnnotations int `json:"totalAnnotations"`
	ActiveUsers      int `json:"activeUsers"`
}
