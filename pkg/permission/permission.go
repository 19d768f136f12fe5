// Package permission holds the pure access rules of the annotation UI,
// extracted from the rendering layer so they are testable without any HTTP
// or view machinery.
//
// The one rule with real decision weight: a user may edit or delete an
// annotation iff they authored it and are not a viewer, or they are an
// admin. Everything else here is a small guard around that.
package permission

import "github.com/chirag807/pdf-annotation-frontend/pkg/models"

// Capabilities is what a given user may do to a given annotation.
type Capabilities struct {
	Edit   bool
	Delete bool
}

// OnAnnotation computes the capability set of user against ann.
//
//	isOwner  = user.ID == ann.Author.ID
//	isAdmin  = user.Role == admin
//	can edit or delete = (isOwner && user.Role != viewer) || isAdmin
//
// Edit and delete are always granted together on this surface. A nil user
// (no session) or an annotation without an author gets nothing.
func OnAnnotation(user *models.User, ann *models.Annotation) Capabilities {
	if user == nil || ann == nil || ann.Author == nil {
		return Capabilities{}
	}

	isOwner := user.ID == ann.Author.ID
	isAdmin := user.Role == models.RoleAdmin

	allowed := (isOwner && user.Role != models.RoleViewer) || isAdmin
	return Capabilities{Edit: allowed, Delete: allowed}
}

// CanAnnotate reports whether user may create new annotations. Viewers are
// read-only.
func CanAnnotate(user *models.User) bool {
	return user != nil && user.Role != models.RoleViewer
}

// CanChangeRole reports whether target's role may be changed through the
// user management surface. Users that are already admins are off limits to
// everyone, including other admins; demoting an admin is not offered here.
func CanChangeRole(target *models.User) bool {
	return target != nil && target.Role != models.RoleAdmin
}

// CanDeleteUser reports whether target may be deleted through the user
// management surface. Admin accounts cannot be deleted from this UI.
func CanDeleteUser(target *models.User) bool {
	return target != nil && target.Role != models.RoleAdmin
}
