package service

import (
	"reviewhub/internal/apperr"
	"reviewhub/internal/permission"
)

// authorize runs the permission table for one action and converts a deny
// into the right error: missing identity versus insufficient rights.
func authorize(actor *permission.Actor, action permission.Action, resource permission.Resource, ownerID string) error {
	if permission.Allowed(actor, action, resource, ownerID) {
		return nil
	}
	if actor == nil {
		return apperr.ErrUnauthenticated
	}
	return apperr.ErrPermissionDenied
}
