package catalog

import (
	"github.com/nais/msgraph.go/ptr"
	msgraph "github.com/nais/msgraph.go/v1.0"
)

// PermissionType discriminates between application permissions (granted to the
// application acting as itself) and delegated permissions (exercised on behalf
// of a signed-in user). The values are the literal strings expected by the
// Graph API in resourceAccess entries.
type PermissionType string

const (
	PermissionTypeRole  PermissionType = "Role"
	PermissionTypeScope PermissionType = "Scope"
)

// Well-known client IDs for the first-party resource applications that expose
// the permissions in the default catalog. These are provider-assigned
// constants and must not be changed.
const (
	MicrosoftGraphAppId          = "00000003-0000-0000-c000-000000000000"
	SharePointOnlineAppId        = "00000003-0000-0ff1-ce00-000000000000"
	MipSyncServiceAppId          = "870c4f2e-85b6-4d43-bdda-6ed9a579b725"
	Office365ManagementApisAppId = "c5393580-f805-4401-95e8-94b7a6ef2fc2"
)

type Permission struct {
	ID   msgraph.UUID
	Type PermissionType
	Name string
}

type ResourceApplication struct {
	AppId       string
	DisplayName string
}

// Service is one resource application together with the permissions to grant
// against it.
type Service struct {
	Resource    ResourceApplication
	Permissions []Permission
}

type Catalog []Service

// ResourceAccess returns the service's permissions as the
// requiredResourceAccess entry expected by the Graph API.
func (s Service) ResourceAccess() msgraph.RequiredResourceAccess {
	access := make([]msgraph.ResourceAccess, 0, len(s.Permissions))

	for _, permission := range s.Permissions {
		id := permission.ID
		access = append(access, msgraph.ResourceAccess{
			ID:   &id,
			Type: ptr.String(string(permission.Type)),
		})
	}

	return msgraph.RequiredResourceAccess{
		ResourceAppID:  ptr.String(s.Resource.AppId),
		ResourceAccess: access,
	}
}

// Roles returns the application-type permissions for the service, i.e. those
// eligible for direct admin-consent grants.
func (s Service) Roles() []Permission {
	roles := make([]Permission, 0)
	for _, permission := range s.Permissions {
		if permission.Type == PermissionTypeRole {
			roles = append(roles, permission)
		}
	}
	return roles
}

// Filter returns the subset of the catalog matching the given resource
// application display names. An empty selection returns the catalog as-is.
func (c Catalog) Filter(names ...string) Catalog {
	if len(names) == 0 {
		return c
	}

	result := make(Catalog, 0)
	for _, service := range c {
		for _, name := range names {
			if service.Resource.DisplayName == name {
				result = append(result, service)
				break
			}
		}
	}
	return result
}

func (c Catalog) ServiceNames() []string {
	names := make([]string, 0, len(c))
	for _, service := range c {
		names = append(names, service.Resource.DisplayName)
	}
	return names
}

// Default returns the full permission catalog. Permission IDs are the
// provider-assigned identifiers for the named scopes and roles; they are
// contract data and reproduced verbatim.
func Default() Catalog {
	return Catalog{
		{
			Resource: ResourceApplication{
				AppId:       MicrosoftGraphAppId,
				DisplayName: "Microsoft Graph",
			},
			Permissions: []Permission{
				{ID: "df021288-bdef-4463-88db-98f22de89214", Type: PermissionTypeRole, Name: "User.Read.All"},
				{ID: "5b567255-7703-4780-807c-7be8301ae99b", Type: PermissionTypeRole, Name: "Group.Read.All"},
				{ID: "7ab1d382-f21e-4acd-a863-ba3e13f7da61", Type: PermissionTypeRole, Name: "Directory.Read.All"},
				{ID: "75359482-378d-4052-8f01-80520e7db3cd", Type: PermissionTypeRole, Name: "Files.ReadWrite.All"},
				{ID: "19da66cb-0fb0-4390-b071-ebc76a349482", Type: PermissionTypeRole, Name: "InformationProtectionPolicy.Read.All"},
				{ID: "e1fe6dd8-ba31-4d61-89e7-88639da4683d", Type: PermissionTypeScope, Name: "User.Read"},
			},
		},
		{
			Resource: ResourceApplication{
				AppId:       SharePointOnlineAppId,
				DisplayName: "SharePoint Online",
			},
			Permissions: []Permission{
				{ID: "678536fe-1083-478a-9c59-b99265e6b0d3", Type: PermissionTypeRole, Name: "Sites.FullControl.All"},
				{ID: "df021288-bdef-4463-88db-98f22de89214", Type: PermissionTypeRole, Name: "User.Read.All"},
			},
		},
		{
			Resource: ResourceApplication{
				AppId:       MipSyncServiceAppId,
				DisplayName: "Microsoft Information Protection Sync Service",
			},
			Permissions: []Permission{
				{ID: "8b2071cd-015a-4025-8052-1c0dba2d3f64", Type: PermissionTypeRole, Name: "UnifiedPolicy.Tenant.Read"},
			},
		},
		{
			Resource: ResourceApplication{
				AppId:       Office365ManagementApisAppId,
				DisplayName: "Office 365 Management APIs",
			},
			Permissions: []Permission{
				{ID: "594c1fb6-4f81-4475-ae41-0c394909246c", Type: PermissionTypeRole, Name: "ActivityFeed.Read"},
				{ID: "4807a72c-ad38-4250-94c9-4eabfe26cd55", Type: PermissionTypeRole, Name: "ActivityFeed.ReadDlp"},
				{ID: "e2cea78f-e743-4d8f-a16a-75b629a038ae", Type: PermissionTypeRole, Name: "ServiceHealth.Read"},
			},
		},
	}
}
