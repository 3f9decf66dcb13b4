package service

import (
	"fmt"

	"newsroom/internal/errors"
	"newsroom/internal/model"
)

// AuthorizeMutation decides whether actor may edit or delete a resource
// owned by ownerID. A missing resource is reported as not found before
// ownership is considered, so absent and forbidden are never conflated.
func AuthorizeMutation(resource string, exists bool, ownerID uint, actor model.Actor) error {
	if !exists {
		return errors.NotFound(resource)
	}
	if actor.ID == ownerID || actor.IsAdmin() {
		return nil
	}
	return errors.Forbidden(fmt.Sprintf("you are not allowed to modify this %s", resource))
}

// AuthorizeUserDeletion allows self-deletion and admins deleting anyone.
func AuthorizeUserDeletion(exists bool, targetID uint, actor model.Actor) error {
	return AuthorizeMutation("user", exists, targetID, actor)
}

type owned interface {
	OwnerID() uint
}

func authorizeOwned(resource string, v owned, found bool, actor model.Actor) error {
	var owner uint
	if found {
		owner = v.OwnerID()
	}
	return AuthorizeMutation(resource, found, owner, actor)
}

// lookup splits a repository result into value, existence and a real failure.
func lookup[T any](v *T, err error) (*T, bool, error) {
	if errors.Is(err, errors.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}
