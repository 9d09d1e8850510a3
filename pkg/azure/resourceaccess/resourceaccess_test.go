package resourceaccess_test

import (
	"testing"

	"github.com/nais/msgraph.go/ptr"
	msgraph "github.com/nais/msgraph.go/v1.0"
	"github.com/stretchr/testify/assert"

	"github.com/nais/grantor/pkg/azure/resourceaccess"
)

func access(id, accessType string) msgraph.ResourceAccess {
	uuid := msgraph.UUID(id)
	return msgraph.ResourceAccess{
		ID:   &uuid,
		Type: ptr.String(accessType),
	}
}

func TestMerge_EmptyExisting(t *testing.T) {
	incoming := resourceaccess.List{
		access("75359482-378d-4052-8f01-80520e7db3cd", "Role"),
	}

	merged := resourceaccess.Merge(nil, incoming)

	assert.Len(t, merged, 1)
	assert.Equal(t, incoming, merged)
}

func TestMerge_ExistingTakesPrecedenceOnCollision(t *testing.T) {
	existing := resourceaccess.List{
		access("75359482-378d-4052-8f01-80520e7db3cd", "Role"),
	}
	incoming := resourceaccess.List{
		access("75359482-378d-4052-8f01-80520e7db3cd", "Role"),
		access("df021288-bdef-4463-88db-98f22de89214", "Role"),
	}

	merged := resourceaccess.Merge(existing, incoming)

	assert.Len(t, merged, 2)
	assert.Equal(t, *existing[0].ID, *merged[0].ID)
	assert.Equal(t, *incoming[1].ID, *merged[1].ID)
}

func TestMerge_TypeMismatchKeepsExistingEntry(t *testing.T) {
	existing := resourceaccess.List{
		access("df021288-bdef-4463-88db-98f22de89214", "Scope"),
	}
	incoming := resourceaccess.List{
		access("df021288-bdef-4463-88db-98f22de89214", "Role"),
	}

	merged := resourceaccess.Merge(existing, incoming)

	assert.Len(t, merged, 1)
	assert.Equal(t, "Scope", *merged[0].Type)
}

func TestMerge_ContainsUnionOfIDs(t *testing.T) {
	existing := resourceaccess.List{
		access("00000000-0000-0000-0000-000000000001", "Role"),
		access("00000000-0000-0000-0000-000000000002", "Scope"),
	}
	incoming := resourceaccess.List{
		access("00000000-0000-0000-0000-000000000002", "Scope"),
		access("00000000-0000-0000-0000-000000000003", "Role"),
		access("00000000-0000-0000-0000-000000000004", "Role"),
	}

	merged := resourceaccess.Merge(existing, incoming)

	assert.Len(t, merged, len(existing)+2)
	for _, entry := range append(existing, incoming...) {
		assert.True(t, merged.HasID(*entry.ID))
	}
}

func TestMerge_Idempotent(t *testing.T) {
	existing := resourceaccess.List{
		access("00000000-0000-0000-0000-000000000001", "Role"),
	}
	incoming := resourceaccess.List{
		access("00000000-0000-0000-0000-000000000001", "Role"),
		access("00000000-0000-0000-0000-000000000002", "Scope"),
	}

	once := resourceaccess.Merge(existing, incoming)
	twice := resourceaccess.Merge(once, incoming)

	assert.Equal(t, once, twice)
	assert.True(t, once.Equals(twice))
}

func TestEquals(t *testing.T) {
	a := resourceaccess.List{
		access("00000000-0000-0000-0000-000000000001", "Role"),
		access("00000000-0000-0000-0000-000000000002", "Scope"),
	}
	b := resourceaccess.List{
		access("00000000-0000-0000-0000-000000000001", "Role"),
	}

	assert.True(t, a.Equals(a))
	assert.False(t, a.Equals(b))
	assert.False(t, b.Equals(a))

	reordered := resourceaccess.List{a[1], a[0]}
	assert.False(t, a.Equals(reordered))
}

func TestIDs(t *testing.T) {
	l := resourceaccess.List{
		access("00000000-0000-0000-0000-000000000001", "Role"),
		access("00000000-0000-0000-0000-000000000002", "Scope"),
	}

	assert.Equal(t, []msgraph.UUID{
		"00000000-0000-0000-0000-000000000001",
		"00000000-0000-0000-0000-000000000002",
	}, l.IDs())
}
