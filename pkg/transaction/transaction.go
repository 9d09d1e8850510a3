package transaction

import (
	"context"

	msgraph "github.com/nais/msgraph.go/v1.0"
	log "github.com/sirupsen/logrus"
)

// Target identifies the application registration being granted permissions.
type Target struct {
	ClientId           string
	ObjectId           string
	ServicePrincipalId string
	DisplayName        string
}

// Transaction carries the per-run context: cancellation, a scoped logger and
// the resolved target identifiers.
type Transaction struct {
	Ctx           context.Context
	Log           *log.Entry
	CorrelationId string
	Target        Target
}

func New(ctx context.Context, correlationId string) Transaction {
	return Transaction{
		Ctx:           ctx,
		CorrelationId: correlationId,
		Log:           log.WithField("correlation_id", correlationId),
	}
}

func (t Transaction) UpdateWithApplication(application msgraph.Application) Transaction {
	newTarget := t.Target
	if application.AppID != nil {
		newTarget.ClientId = *application.AppID
	}
	if application.ID != nil {
		newTarget.ObjectId = *application.ID
	}
	if application.DisplayName != nil {
		newTarget.DisplayName = *application.DisplayName
	}
	t.Target = newTarget
	t.Log = t.Log.WithFields(log.Fields{
		"application": newTarget.DisplayName,
		"client_id":   newTarget.ClientId,
	})
	return t
}

func (t Transaction) UpdateWithServicePrincipalID(servicePrincipal msgraph.ServicePrincipal) Transaction {
	newTarget := t.Target
	if servicePrincipal.ID != nil {
		newTarget.ServicePrincipalId = *servicePrincipal.ID
	}
	t.Target = newTarget
	return t
}
