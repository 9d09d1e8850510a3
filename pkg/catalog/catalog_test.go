package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nais/grantor/pkg/catalog"
)

func TestService_ResourceAccess_microsoftGraph(t *testing.T) {
	graph := catalog.Default().Filter("Microsoft Graph")
	assert.Len(t, graph, 1)

	j, err := json.Marshal(graph[0].ResourceAccess())
	assert.NoError(t, err)

	assert.JSONEq(t, `
{
   "resourceAppId": "00000003-0000-0000-c000-000000000000",
   "resourceAccess": [
      {
         "id": "df021288-bdef-4463-88db-98f22de89214",
         "type": "Role"
      },
      {
         "id": "5b567255-7703-4780-807c-7be8301ae99b",
         "type": "Role"
      },
      {
         "id": "7ab1d382-f21e-4acd-a863-ba3e13f7da61",
         "type": "Role"
      },
      {
         "id": "75359482-378d-4052-8f01-80520e7db3cd",
         "type": "Role"
      },
      {
         "id": "19da66cb-0fb0-4390-b071-ebc76a349482",
         "type": "Role"
      },
      {
         "id": "e1fe6dd8-ba31-4d61-89e7-88639da4683d",
         "type": "Scope"
      }
   ]
}
`, string(j))
}

func TestDefault_CoversAllResourceApplications(t *testing.T) {
	c := catalog.Default()

	assert.Equal(t, []string{
		"Microsoft Graph",
		"SharePoint Online",
		"Microsoft Information Protection Sync Service",
		"Office 365 Management APIs",
	}, c.ServiceNames())

	for _, service := range c {
		assert.NotEmpty(t, service.Resource.AppId)
		assert.NotEmpty(t, service.Permissions)
	}
}

func TestCatalog_Filter(t *testing.T) {
	c := catalog.Default()

	assert.Equal(t, c, c.Filter())

	filtered := c.Filter("SharePoint Online", "Office 365 Management APIs")
	assert.Equal(t, []string{"SharePoint Online", "Office 365 Management APIs"}, filtered.ServiceNames())

	assert.Empty(t, c.Filter("no such service"))
}

func TestService_Roles(t *testing.T) {
	graph := catalog.Default().Filter("Microsoft Graph")[0]

	roles := graph.Roles()
	assert.Len(t, roles, 5)
	for _, role := range roles {
		assert.Equal(t, catalog.PermissionTypeRole, role.Type)
	}
}
