// Package policy holds the pure access-control decisions applied before every
// resource operation. Decisions are computed from the actor attached to the
// request and the HTTP method alone; nothing here touches the database.
package policy

import (
	"net/http"

	"labtrack-backend/internal/model"
)

// Actor is the authenticated identity making a request. The role is taken
// from the access token claims at authentication time and is immutable for
// the lifetime of the request.
type Actor struct {
	ID       int64
	Username string
	Role     string
}

// IsAdmin reports whether the actor holds the admin role.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == model.RoleAdmin
}

// Policy decides whether an actor may use an HTTP method on a resource.
// A nil actor is always denied.
type Policy func(actor *Actor, method string) bool

func readOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AdminOrReadOnly allows any authenticated actor to read and only admins to
// write. It guards users, labs, PCs, equipment, software, inventory and push
// subscriptions.
func AdminOrReadOnly(actor *Actor, method string) bool {
	if actor == nil {
		return false
	}
	if readOnly(method) {
		return true
	}
	return actor.IsAdmin()
}

// ReadCreateElseAdmin allows any authenticated actor to read and create, and
// only admins to modify or delete existing records. Maintenance logs use it:
// any student may report a fault, only an admin may resolve or remove one.
func ReadCreateElseAdmin(actor *Actor, method string) bool {
	if actor == nil {
		return false
	}
	if readOnly(method) || method == http.MethodPost {
		return true
	}
	return actor.IsAdmin()
}
