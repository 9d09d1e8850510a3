package fake

import (
	"context"
	"fmt"

	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/grantor/pkg/azure"
	"github.com/nais/grantor/pkg/azure/client/requiredresourceaccess"
)

// Client is an in-memory directory for engine and protocol tests. The
// merge-and-update protocol itself is not faked; it runs against this client.
type Client struct {
	applications      map[azure.ClientId]*msgraph.Application
	servicePrincipals map[azure.ClientId]azure.ServicePrincipalId
	assignments       map[azure.ServicePrincipalId][]msgraph.AppRoleAssignment

	// PatchHook and AssignHook inject failures. A nil hook never fails.
	PatchHook  func(id azure.ObjectId, payload *msgraph.Application) error
	AssignHook func(assignment *msgraph.AppRoleAssignment) error

	PatchCalls  int
	AssignCalls int
}

func NewClient() *Client {
	return &Client{
		applications:      make(map[azure.ClientId]*msgraph.Application),
		servicePrincipals: make(map[azure.ClientId]azure.ServicePrincipalId),
		assignments:       make(map[azure.ServicePrincipalId][]msgraph.AppRoleAssignment),
	}
}

func (c *Client) AddApplication(app *msgraph.Application) *Client {
	c.applications[*app.AppID] = app
	return c
}

func (c *Client) AddServicePrincipal(clientId azure.ClientId, id azure.ServicePrincipalId) *Client {
	c.servicePrincipals[clientId] = id
	return c
}

func (c *Client) ApplicationByClientId(clientId azure.ClientId) *msgraph.Application {
	return c.applications[clientId]
}

func (c *Client) AssignmentsFor(id azure.ServicePrincipalId) []msgraph.AppRoleAssignment {
	return c.assignments[id]
}

func (c *Client) Application() azure.Application {
	return fakeApplication{c}
}

func (c *Client) ServicePrincipal() azure.ServicePrincipal {
	return fakeServicePrincipal{c}
}

func (c *Client) AppRoleAssignments(targetId azure.ServicePrincipalId) azure.AppRoleAssignments {
	return fakeAppRoleAssignments{client: c, targetId: targetId}
}

func (c *Client) RequiredResourceAccess() azure.RequiredResourceAccess {
	return requiredresourceaccess.NewRequiredResourceAccess(c.Application())
}

type fakeApplication struct {
	client *Client
}

func (a fakeApplication) GetByClientId(_ context.Context, id azure.ClientId) (msgraph.Application, error) {
	app, found := a.client.applications[id]
	if !found {
		return msgraph.Application{}, fmt.Errorf("no matching azure application found")
	}
	return *app, nil
}

func (a fakeApplication) Patch(_ context.Context, id azure.ObjectId, payload any) error {
	app, ok := payload.(*msgraph.Application)
	if !ok {
		return fmt.Errorf("unexpected patch payload type %T", payload)
	}

	a.client.PatchCalls++

	if a.client.PatchHook != nil {
		if err := a.client.PatchHook(id, app); err != nil {
			return err
		}
	}

	for _, stored := range a.client.applications {
		if stored.ID != nil && *stored.ID == id {
			stored.RequiredResourceAccess = app.RequiredResourceAccess
			return nil
		}
	}
	return fmt.Errorf("no application with object id '%s'", id)
}

type fakeServicePrincipal struct {
	client *Client
}

func (s fakeServicePrincipal) Exists(_ context.Context, id azure.ClientId) (bool, msgraph.ServicePrincipal, error) {
	spId, found := s.client.servicePrincipals[id]
	if !found {
		return false, msgraph.ServicePrincipal{}, nil
	}
	appId := id
	sp := msgraph.ServicePrincipal{AppID: &appId}
	sp.ID = &spId
	return true, sp, nil
}

func (s fakeServicePrincipal) GetIdByClientId(ctx context.Context, id azure.ClientId) (azure.ServicePrincipalId, error) {
	exists, sp, err := s.Exists(ctx, id)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("service principal with client id '%s' not found", id)
	}
	return *sp.ID, nil
}

type fakeAppRoleAssignments struct {
	client   *Client
	targetId azure.ServicePrincipalId
}

func (a fakeAppRoleAssignments) GetAll(_ context.Context) ([]msgraph.AppRoleAssignment, error) {
	return a.client.assignments[a.targetId], nil
}

func (a fakeAppRoleAssignments) Assign(_ context.Context, assignment *msgraph.AppRoleAssignment) (*msgraph.AppRoleAssignment, error) {
	a.client.AssignCalls++

	if a.client.AssignHook != nil {
		if err := a.client.AssignHook(assignment); err != nil {
			return nil, err
		}
	}

	a.client.assignments[a.targetId] = append(a.client.assignments[a.targetId], *assignment)
	return assignment, nil
}
