package client

import (
	"context"
	"fmt"
	"net/http"

	msgraph "github.com/nais/msgraph.go/v1.0"
	"golang.org/x/oauth2"

	"github.com/nais/grantor/pkg/azure"
	"github.com/nais/grantor/pkg/azure/client/application"
	"github.com/nais/grantor/pkg/azure/client/approleassignment"
	"github.com/nais/grantor/pkg/azure/client/requiredresourceaccess"
	"github.com/nais/grantor/pkg/azure/client/serviceprincipal"
	"github.com/nais/grantor/pkg/config"
)

const MaxNumberOfPagesToFetch = 1000

type client struct {
	config      *config.AzureConfig
	httpClient  *http.Client
	graphClient *msgraph.GraphServiceRequestBuilder
}

func New(ctx context.Context, cfg *config.AzureConfig) (azure.Client, error) {
	ts, err := tokenSource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("instantiating graph client: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, ts)
	graphClient := msgraph.NewClient(httpClient)

	return client{
		config:      cfg,
		httpClient:  httpClient,
		graphClient: graphClient,
	}, nil
}

func (c client) Config() *config.AzureConfig {
	return c.config
}

func (c client) GraphClient() *msgraph.GraphServiceRequestBuilder {
	return c.graphClient
}

func (c client) HttpClient() *http.Client {
	return c.httpClient
}

func (c client) MaxNumberOfPagesToFetch() int {
	return MaxNumberOfPagesToFetch
}

func (c client) Application() azure.Application {
	return application.NewApplication(c)
}

func (c client) ServicePrincipal() azure.ServicePrincipal {
	return serviceprincipal.NewServicePrincipal(c)
}

func (c client) AppRoleAssignments(targetId azure.ServicePrincipalId) azure.AppRoleAssignments {
	return approleassignment.NewAppRoleAssignments(c, targetId)
}

func (c client) RequiredResourceAccess() azure.RequiredResourceAccess {
	return requiredresourceaccess.NewRequiredResourceAccess(c.Application())
}
