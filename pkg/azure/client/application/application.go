package application

import (
	"context"
	"fmt"

	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/grantor/pkg/azure"
	"github.com/nais/grantor/pkg/azure/util"
)

type Application interface {
	GetByClientId(ctx context.Context, id azure.ClientId) (msgraph.Application, error)
	Patch(ctx context.Context, id azure.ObjectId, application any) error
}

type application struct {
	azure.RuntimeClient
}

func NewApplication(runtimeClient azure.RuntimeClient) Application {
	return application{RuntimeClient: runtimeClient}
}

func (a application) GetByClientId(ctx context.Context, id azure.ClientId) (msgraph.Application, error) {
	app, err := a.getSingleByFilterOrError(ctx, util.FilterByAppId(id))
	if err != nil {
		return msgraph.Application{}, fmt.Errorf("fetching application with clientId '%s': %w", id, err)
	}
	return *app, nil
}

func (a application) Patch(ctx context.Context, id azure.ObjectId, application any) error {
	req := a.GraphClient().Applications().ID(id).Request()
	if err := req.JSONRequest(ctx, "PATCH", "", application, nil); err != nil {
		return fmt.Errorf("patching application: %w", err)
	}
	return nil
}

func (a application) getSingleByFilterOrError(ctx context.Context, filter azure.Filter) (*msgraph.Application, error) {
	applications, err := a.getAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	switch {
	case len(applications) == 0:
		return nil, fmt.Errorf("no matching azure application found")
	case len(applications) > 1:
		return nil, fmt.Errorf("found more than one matching azure application")
	default:
		return &applications[0], nil
	}
}

func (a application) getAll(ctx context.Context, filter azure.Filter) ([]msgraph.Application, error) {
	r := a.GraphClient().Applications().Request()
	r.Filter(filter)
	applications, err := r.GetN(ctx, a.MaxNumberOfPagesToFetch())
	if err != nil {
		return nil, fmt.Errorf("looking up applications: %w", err)
	}
	return applications, nil
}
