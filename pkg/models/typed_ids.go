package models

import "github.com/google/uuid"

// Typed IDs keep user, document and annotation identifiers from being mixed
// up at compile time. The server treats identifiers as opaque strings, so the
// types are string-backed; the New* constructors mint UUIDs for code that has
// to originate an identifier itself (the fake API server, tests).

// UserID identifies a user account.
type UserID string

func NewUserID() UserID { return UserID(uuid.NewString()) }

func (id UserID) String() string { return string(id) }
func (id UserID) IsZero() bool   { return id == "" }

// DocumentID identifies an uploaded PDF document.
type DocumentID string

func NewDocumentID() DocumentID { return DocumentID(uuid.NewString()) }

func (id DocumentID) String() string { return string(id) }
func (id DocumentID) IsZero() bool   { return id == "" }

// AnnotationID identifies a single annotation on a document.
type AnnotationID string

func NewAnnotationID() AnnotationID { return AnnotationID(uuid.NewString()) }

func (id AnnotationID) String() string { return string(id) }
func (id AnnotationID) IsZero() bool   { return id == "" }
