package policy

import (
	"github.com/BruksfildServices01/medifind/internal/httperr"
)

// Ownable is implemented by records that have exactly one owner. A
// pharmacy is owned by a user id, a medicine by a pharmacy id.
type Ownable interface {
	OwnerID() uint
}

// OwnedBy reports whether ownerID owns resource. A nil resource or a zero
// owner is never owned.
func OwnedBy(resource Ownable, ownerID uint) bool {
	if resource == nil || ownerID == 0 {
		return false
	}
	return resource.OwnerID() == ownerID
}

// RequireOwner returns a forbidden error unless ownerID owns resource.
func RequireOwner(resource Ownable, ownerID uint, code, message string) error {
	if !OwnedBy(resource, ownerID) {
		return httperr.ErrForbidden(code, message)
	}
	return nil
}
