package requiredresourceaccess

import (
	"fmt"

	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/grantor/pkg/azure"
	"github.com/nais/grantor/pkg/azure/resourceaccess"
	"github.com/nais/grantor/pkg/azure/util"
	"github.com/nais/grantor/pkg/catalog"
	"github.com/nais/grantor/pkg/transaction"
)

type requiredResourceAccess struct {
	application azure.Application
}

func NewRequiredResourceAccess(application azure.Application) azure.RequiredResourceAccess {
	return requiredResourceAccess{application: application}
}

// Process merges the service's permissions into the application's
// requiredResourceAccess declaration and replaces the declaration if anything
// changed. The outgoing payload always carries the complete list, including
// resource applications we do not touch: the PATCH replaces the whole array,
// so omitting an entry would drop it.
func (r requiredResourceAccess) Process(tx transaction.Transaction, service catalog.Service) error {
	app, err := r.application.GetByClientId(tx.Ctx, tx.Target.ClientId)
	if err != nil {
		return fmt.Errorf("fetching current resource access: %w", err)
	}

	desired := service.ResourceAccess()
	updated, changed := describeUpdate(app.RequiredResourceAccess, desired)

	if !changed {
		tx.Log.Infof("permissions for %s already declared; skipping update", service.Resource.DisplayName)
		return nil
	}

	payload := util.EmptyApplication().ResourceAccess(updated).Build()
	if err := r.application.Patch(tx.Ctx, tx.Target.ObjectId, payload); err != nil {
		return fmt.Errorf("updating resource access for %s: %w", service.Resource.DisplayName, err)
	}

	tx.Log.Infof("declared %d permission(s) for %s", len(desired.ResourceAccess), service.Resource.DisplayName)
	return nil
}

func describeUpdate(current []msgraph.RequiredResourceAccess, desired msgraph.RequiredResourceAccess) ([]msgraph.RequiredResourceAccess, bool) {
	updated := make([]msgraph.RequiredResourceAccess, 0, len(current)+1)

	found := false
	changed := false

	for _, entry := range current {
		if entry.ResourceAppID != nil && *entry.ResourceAppID == *desired.ResourceAppID {
			found = true
			merged := resourceaccess.Merge(entry.ResourceAccess, desired.ResourceAccess)
			if !resourceaccess.List(entry.ResourceAccess).Equals(merged) {
				changed = true
			}
			entry.ResourceAccess = merged
		}
		updated = append(updated, entry)
	}

	if !found {
		updated = append(updated, desired)
		changed = true
	}

	return updated, changed
}
