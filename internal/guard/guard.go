// Package guard enforces the ownership rule shared by every resource type:
// only the user who created a record may read, update or delete it.
package guard

import "errors"

// ErrNotOwner is returned when the authenticated user does not own the
// resource they are acting on. Handlers translate it into a 403 response.
var ErrNotOwner = errors.New("not the resource owner")

// Owned is satisfied by any record carrying an owner foreign key.
type Owned interface {
	OwnerID() uint64
}

// Check permits the operation only when userID owns the resource. Pure
// function, no side effects.
func Check(ownerID, userID uint64) error {
	if ownerID != userID {
		return ErrNotOwner
	}
	return nil
}

// ScopeList filters records down to those owned by userID, preserving the
// input order. The result carries no information about foreign records, not
// even their count. List endpoints normally scope at the SQL layer instead;
// ScopeList is the pure form for records already in memory.
func ScopeList[T Owned](items []T, userID uint64) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.OwnerID() == userID {
			out = append(out, it)
		}
	}
	return out
}
