package approleassignment

import (
	"context"
	"fmt"

	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/grantor/pkg/azure"
)

type appRoleAssignments struct {
	azure.RuntimeClient
	targetId azure.ServicePrincipalId
}

// NewAppRoleAssignments returns the assignment collection for the service
// principal identified by targetId, i.e. the resource application that owns
// the app roles being assigned.
func NewAppRoleAssignments(client azure.RuntimeClient, targetId azure.ServicePrincipalId) azure.AppRoleAssignments {
	return appRoleAssignments{
		RuntimeClient: client,
		targetId:      targetId,
	}
}

func (a appRoleAssignments) GetAll(ctx context.Context) ([]msgraph.AppRoleAssignment, error) {
	assignments, err := a.request().GetN(ctx, a.MaxNumberOfPagesToFetch())
	if err != nil {
		return nil, fmt.Errorf("looking up AppRole assignments for service principal '%s': %w", a.targetId, err)
	}
	return assignments, nil
}

func (a appRoleAssignments) Assign(ctx context.Context, assignment *msgraph.AppRoleAssignment) (*msgraph.AppRoleAssignment, error) {
	result, err := a.request().Add(ctx, assignment)
	if err != nil {
		return nil, fmt.Errorf("assigning AppRole '%s' to principal '%s' on service principal '%s': %w",
			*assignment.AppRoleID, *assignment.PrincipalID, a.targetId, err)
	}
	return result, nil
}

func (a appRoleAssignments) request() *msgraph.ServicePrincipalAppRoleAssignedToCollectionRequest {
	return a.GraphClient().ServicePrincipals().ID(a.targetId).AppRoleAssignedTo().Request()
}
