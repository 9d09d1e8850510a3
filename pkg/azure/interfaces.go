package azure

import (
	"context"

	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/grantor/pkg/catalog"
	"github.com/nais/grantor/pkg/transaction"
)

type Client interface {
	Application() Application
	ServicePrincipal() ServicePrincipal
	AppRoleAssignments(targetId ServicePrincipalId) AppRoleAssignments
	RequiredResourceAccess() RequiredResourceAccess
}

type Application interface {
	GetByClientId(ctx context.Context, id ClientId) (msgraph.Application, error)
	Patch(ctx context.Context, id ObjectId, application any) error
}

type ServicePrincipal interface {
	Exists(ctx context.Context, id ClientId) (bool, msgraph.ServicePrincipal, error)
	GetIdByClientId(ctx context.Context, id ClientId) (ServicePrincipalId, error)
}

type AppRoleAssignments interface {
	Assign(ctx context.Context, assignment *msgraph.AppRoleAssignment) (*msgraph.AppRoleAssignment, error)
	GetAll(ctx context.Context) ([]msgraph.AppRoleAssignment, error)
}

type RequiredResourceAccess interface {
	Process(tx transaction.Transaction, service catalog.Service) error
}
