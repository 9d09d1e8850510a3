package azure

import (
	"net/http"

	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/grantor/pkg/config"
)

type RuntimeClient interface {
	Config() *config.AzureConfig
	GraphClient() *msgraph.GraphServiceRequestBuilder
	HttpClient() *http.Client

	MaxNumberOfPagesToFetch() int
}
