package approleassignment

import (
	msgraph "github.com/nais/msgraph.go/v1.0"
)

type List []msgraph.AppRoleAssignment

type appRoleAssignmentKey struct {
	AppRoleID   msgraph.UUID
	PrincipalID msgraph.UUID
	ResourceID  msgraph.UUID
}

func toAppRoleAssignmentKey(assignment msgraph.AppRoleAssignment) appRoleAssignmentKey {
	return appRoleAssignmentKey{
		AppRoleID:   *assignment.AppRoleID,
		PrincipalID: *assignment.PrincipalID,
		ResourceID:  *assignment.ResourceID,
	}
}

func (l List) Has(assignment msgraph.AppRoleAssignment) bool {
	key := toAppRoleAssignmentKey(assignment)
	for _, a := range l {
		if a.AppRoleID == nil || a.PrincipalID == nil || a.ResourceID == nil {
			continue
		}
		if toAppRoleAssignmentKey(a) == key {
			return true
		}
	}
	return false
}
