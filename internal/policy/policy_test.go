package policy

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminOrReadOnly(t *testing.T) {
	admin := &Actor{ID: 1, Username: "root", Role: "admin"}
	student := &Actor{ID: 2, Username: "sam", Role: "student"}

	testCases := []struct {
		name    string
		actor   *Actor
		method  string
		allowed bool
	}{
		{"unauthenticated read denied", nil, http.MethodGet, false},
		{"unauthenticated write denied", nil, http.MethodPost, false},
		{"student read allowed", student, http.MethodGet, true},
		{"student head allowed", student, http.MethodHead, true},
		{"student create denied", student, http.MethodPost, false},
		{"student update denied", student, http.MethodPut, false},
		{"student delete denied", student, http.MethodDelete, false},
		{"admin read allowed", admin, http.MethodGet, true},
		{"admin create allowed", admin, http.MethodPost, true},
		{"admin delete allowed", admin, http.MethodDelete, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, AdminOrReadOnly(tc.actor, tc.method))
		})
	}
}

func TestReadCreateElseAdmin(t *testing.T) {
	admin := &Actor{ID: 1, Username: "root", Role: "admin"}
	student := &Actor{ID: 2, Username: "sam", Role: "student"}

	testCases := []struct {
		name    string
		actor   *Actor
		method  string
		allowed bool
	}{
		{"unauthenticated create denied", nil, http.MethodPost, false},
		{"student read allowed", student, http.MethodGet, true},
		{"student create allowed", student, http.MethodPost, true},
		{"student update denied", student, http.MethodPut, false},
		{"student patch denied", student, http.MethodPatch, false},
		{"student delete denied", student, http.MethodDelete, false},
		{"admin update allowed", admin, http.MethodPut, true},
		{"admin delete allowed", admin, http.MethodDelete, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, ReadCreateElseAdmin(tc.actor, tc.method))
		})
	}
}

func TestIsAdminNilActor(t *testing.T) {
	var actor *Actor
	assert.False(t, actor.IsAdmin())
}
