package resourceaccess

import (
	msgraph "github.com/nais/msgraph.go/v1.0"
)

type List []msgraph.ResourceAccess

// Merge combines existing and incoming resource access entries, de-duplicated
// by permission ID. First seen wins, i.e. entries already declared on the
// application take precedence over incoming catalog entries on ID collision.
// This also means a type mismatch between an existing and an incoming entry
// with the same ID is resolved in favour of the existing entry.
func Merge(existing, incoming List) List {
	merged := make(List, 0, len(existing)+len(incoming))
	seen := make(map[msgraph.UUID]struct{}, len(existing)+len(incoming))

	for _, access := range append(append(List{}, existing...), incoming...) {
		if access.ID == nil {
			continue
		}
		if _, found := seen[*access.ID]; found {
			continue
		}
		seen[*access.ID] = struct{}{}
		merged = append(merged, access)
	}

	return merged
}

func (l List) HasID(id msgraph.UUID) bool {
	for _, access := range l {
		if access.ID != nil && *access.ID == id {
			return true
		}
	}
	return false
}

func (l List) IDs() []msgraph.UUID {
	ids := make([]msgraph.UUID, 0, len(l))
	for _, access := range l {
		if access.ID != nil {
			ids = append(ids, *access.ID)
		}
	}
	return ids
}

// Equals reports whether both lists declare the same permission IDs in the
// same order. Used to skip no-op updates on repeated runs.
func (l List) Equals(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i, access := range l {
		if access.ID == nil || other[i].ID == nil {
			return false
		}
		if *access.ID != *other[i].ID {
			return false
		}
	}
	return true
}
