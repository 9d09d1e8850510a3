package main

import (
	"context"
	"testing"

	"github.com/nais/msgraph.go/ptr"
	msgraph "github.com/nais/msgraph.go/v1.0"
	"github.com/stretchr/testify/assert"

	"github.com/nais/grantor/pkg/azure/fake"
	"github.com/nais/grantor/pkg/catalog"
	"github.com/nais/grantor/pkg/config"
	"github.com/nais/grantor/pkg/transaction"
)

const (
	testClientId = "d667d43b-7f6a-4bfa-b29a-3e4b871b85e6"
	testObjectId = "0e705685-a274-4212-9b60-2b84b4f179e8"
	testSpId     = "f91dbba8-923a-45f4-a59f-9462faeccc59"
)

func testTarget() (*fake.Client, transaction.Transaction) {
	app := &msgraph.Application{
		AppID:       ptr.String(testClientId),
		DisplayName: ptr.String("target-app"),
	}
	app.ID = ptr.String(testObjectId)

	c := fake.NewClient().
		AddApplication(app).
		AddServicePrincipal(testClientId, testSpId)

	tx := transaction.New(context.Background(), "test")
	tx = tx.UpdateWithApplication(*app)
	tx.Target.ServicePrincipalId = testSpId

	return c, tx
}

func TestExecuteGrant_DeclinedConfirmationIssuesNoWrites(t *testing.T) {
	c, tx := testTarget()

	decline := func(string) (bool, error) { return false, nil }

	result, proceeded, err := executeGrant(tx, c, catalog.Default(), &config.Config{GrantConsent: true}, decline)
	assert.NoError(t, err)
	assert.False(t, proceeded)
	assert.Empty(t, result.Services)

	assert.Zero(t, c.PatchCalls)
	assert.Zero(t, c.AssignCalls)
	assert.Empty(t, c.ApplicationByClientId(testClientId).RequiredResourceAccess)
}

func TestExecuteGrant_ApprovedConfirmationRunsTheEngine(t *testing.T) {
	c, tx := testTarget()

	approve := func(string) (bool, error) { return true, nil }

	result, proceeded, err := executeGrant(tx, c, catalog.Default().Filter("Microsoft Graph"), &config.Config{}, approve)
	assert.NoError(t, err)
	assert.True(t, proceeded)
	assert.False(t, result.Failed())

	assert.Equal(t, 1, c.PatchCalls)
	assert.Len(t, c.ApplicationByClientId(testClientId).RequiredResourceAccess, 1)
}
