package grant

import (
	"fmt"

	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/grantor/pkg/azure"
	"github.com/nais/grantor/pkg/azure/client/approleassignment"
	"github.com/nais/grantor/pkg/catalog"
	"github.com/nais/grantor/pkg/transaction"
)

type Options struct {
	GrantConsent bool
}

// ServiceResult describes the outcome for a single resource application.
// Err is set when the merge/update step failed; ConsentErrors collects
// individual grant failures, which do not abort the rest of the service.
type ServiceResult struct {
	Service       string
	Granted       []string
	AlreadySet    []string
	Err           error
	ConsentErrors []error
}

func (r ServiceResult) Failed() bool {
	return r.Err != nil
}

type Result struct {
	Services []ServiceResult
}

func (r Result) Failed() bool {
	for _, service := range r.Services {
		if service.Failed() {
			return true
		}
	}
	return false
}

type Engine struct {
	azure azure.Client
}

func NewEngine(azureClient azure.Client) Engine {
	return Engine{azure: azureClient}
}

// Process merges each service's permissions into the target application's
// requiredResourceAccess declaration and, when enabled, pre-grants admin
// consent for application permissions. Services are processed independently:
// a failure for one is reported and does not roll back or block the others.
func (e Engine) Process(tx transaction.Transaction, cat catalog.Catalog, opts Options) Result {
	result := Result{Services: make([]ServiceResult, 0, len(cat))}

	for _, service := range cat {
		log := tx.Log.WithField("service", service.Resource.DisplayName)
		serviceTx := tx
		serviceTx.Log = log

		serviceResult := e.processService(serviceTx, service, opts)
		if serviceResult.Err != nil {
			log.Errorf("processing %s: %v", service.Resource.DisplayName, serviceResult.Err)
		}
		for _, err := range serviceResult.ConsentErrors {
			log.Errorf("granting consent: %v", err)
		}

		result.Services = append(result.Services, serviceResult)
	}

	return result
}

func (e Engine) processService(tx transaction.Transaction, service catalog.Service, opts Options) ServiceResult {
	result := ServiceResult{Service: service.Resource.DisplayName}

	if err := e.azure.RequiredResourceAccess().Process(tx, service); err != nil {
		result.Err = err
		return result
	}

	if !opts.GrantConsent {
		return result
	}

	granted, alreadySet, errs := e.grantConsent(tx, service)
	result.Granted = granted
	result.AlreadySet = alreadySet
	result.ConsentErrors = errs
	return result
}

// grantConsent assigns each application permission (app role) of the service
// directly to the target application's service principal, bypassing the
// interactive admin consent flow. Grants are independent: a failed grant is
// recorded and the loop continues.
func (e Engine) grantConsent(tx transaction.Transaction, service catalog.Service) (granted, alreadySet []string, errs []error) {
	roles := service.Roles()
	if len(roles) == 0 {
		return nil, nil, nil
	}

	resourceId, err := e.azure.ServicePrincipal().GetIdByClientId(tx.Ctx, service.Resource.AppId)
	if err != nil {
		return nil, nil, []error{fmt.Errorf("resolving service principal for %s: %w", service.Resource.DisplayName, err)}
	}

	assignments := e.azure.AppRoleAssignments(resourceId)

	existing, err := assignments.GetAll(tx.Ctx)
	if err != nil {
		return nil, nil, []error{err}
	}
	existingList := approleassignment.List(existing)

	for _, role := range roles {
		assignment := toAssignment(role.ID, tx.Target.ServicePrincipalId, resourceId)

		if existingList.Has(*assignment) {
			tx.Log.Debugf("consent for %s already granted; skipping", role.Name)
			alreadySet = append(alreadySet, role.Name)
			continue
		}

		if _, err := assignments.Assign(tx.Ctx, assignment); err != nil {
			errs = append(errs, fmt.Errorf("granting %s: %w", role.Name, err))
			continue
		}

		tx.Log.Infof("granted admin consent for %s", role.Name)
		granted = append(granted, role.Name)
	}

	return granted, alreadySet, errs
}

func toAssignment(roleId msgraph.UUID, principalId, resourceId azure.ServicePrincipalId) *msgraph.AppRoleAssignment {
	principal := msgraph.UUID(principalId)
	resource := msgraph.UUID(resourceId)
	principalType := "ServicePrincipal"

	return &msgraph.AppRoleAssignment{
		AppRoleID:     &roleId,
		PrincipalID:   &principal,
		ResourceID:    &resource,
		PrincipalType: &principalType,
	}
}
