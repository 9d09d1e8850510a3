package approleassignment_test

import (
	"testing"

	msgraph "github.com/nais/msgraph.go/v1.0"
	"github.com/stretchr/testify/assert"

	"github.com/nais/grantor/pkg/azure/client/approleassignment"
)

func assignment(roleId, principalId, resourceId string) msgraph.AppRoleAssignment {
	role := msgraph.UUID(roleId)
	principal := msgraph.UUID(principalId)
	resource := msgraph.UUID(resourceId)
	return msgraph.AppRoleAssignment{
		AppRoleID:   &role,
		PrincipalID: &principal,
		ResourceID:  &resource,
	}
}

func TestList_Has(t *testing.T) {
	list := approleassignment.List{
		assignment("00000000-0000-0000-0000-000000000001", "aa000000-0000-0000-0000-000000000000", "bb000000-0000-0000-0000-000000000000"),
	}

	assert.True(t, list.Has(assignment("00000000-0000-0000-0000-000000000001", "aa000000-0000-0000-0000-000000000000", "bb000000-0000-0000-0000-000000000000")))

	// differing role, principal or resource is a different assignment
	assert.False(t, list.Has(assignment("00000000-0000-0000-0000-000000000002", "aa000000-0000-0000-0000-000000000000", "bb000000-0000-0000-0000-000000000000")))
	assert.False(t, list.Has(assignment("00000000-0000-0000-0000-000000000001", "cc000000-0000-0000-0000-000000000000", "bb000000-0000-0000-0000-000000000000")))
	assert.False(t, list.Has(assignment("00000000-0000-0000-0000-000000000001", "aa000000-0000-0000-0000-000000000000", "dd000000-0000-0000-0000-000000000000")))
}

func TestList_Has_SkipsPartialEntries(t *testing.T) {
	role := msgraph.UUID("00000000-0000-0000-0000-000000000001")
	list := approleassignment.List{
		{AppRoleID: &role},
	}

	assert.False(t, list.Has(assignment("00000000-0000-0000-0000-000000000001", "aa000000-0000-0000-0000-000000000000", "bb000000-0000-0000-0000-000000000000")))
}
