package util

import (
	"fmt"

	"github.com/nais/grantor/pkg/azure"
)

func FilterByAppId(clientId azure.ClientId) azure.Filter {
	return fmt.Sprintf("appId eq '%s'", clientId)
}
