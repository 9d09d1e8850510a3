package serviceprincipal

import (
	"context"
	"fmt"

	cache "github.com/Code-Hex/go-generics-cache"
	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/grantor/pkg/azure"
	"github.com/nais/grantor/pkg/azure/util"
)

// Service principal lookups are repeated for the same well-known resource
// applications within a run, so the id mapping is memoized.
var servicePrincipalIdCache = cache.New[azure.ClientId, azure.ServicePrincipalId]()

type ServicePrincipal interface {
	Exists(ctx context.Context, id azure.ClientId) (bool, msgraph.ServicePrincipal, error)
	GetIdByClientId(ctx context.Context, id azure.ClientId) (azure.ServicePrincipalId, error)
}

type servicePrincipal struct {
	azure.RuntimeClient
}

func NewServicePrincipal(runtimeClient azure.RuntimeClient) ServicePrincipal {
	return servicePrincipal{RuntimeClient: runtimeClient}
}

func (s servicePrincipal) Exists(ctx context.Context, id azure.ClientId) (bool, msgraph.ServicePrincipal, error) {
	r := s.GraphClient().ServicePrincipals().Request()
	r.Filter(util.FilterByAppId(id))
	sps, err := r.GetN(ctx, s.MaxNumberOfPagesToFetch())
	if err != nil {
		return false, msgraph.ServicePrincipal{}, fmt.Errorf("failed to lookup service principal: %w", err)
	}
	if len(sps) == 0 {
		return false, msgraph.ServicePrincipal{}, nil
	}

	return true, sps[0], nil
}

func (s servicePrincipal) GetIdByClientId(ctx context.Context, id azure.ClientId) (azure.ServicePrincipalId, error) {
	if val, found := servicePrincipalIdCache.Get(id); found {
		return val, nil
	}

	exists, sp, err := s.Exists(ctx, id)
	if err != nil {
		return "", err
	}

	if !exists {
		return "", fmt.Errorf("service principal with client id '%s' not found", id)
	}

	servicePrincipalId := *sp.ID
	servicePrincipalIdCache.Set(id, servicePrincipalId)

	return servicePrincipalId, nil
}
