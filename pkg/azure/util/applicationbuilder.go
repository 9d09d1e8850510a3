package util

import (
	msgraph "github.com/nais/msgraph.go/v1.0"
)

// ApplicationBuilder assembles partial msgraph.Application payloads for PATCH
// requests. Only the fields explicitly set end up in the serialized body.
type ApplicationBuilder struct {
	*msgraph.Application
}

func EmptyApplication() ApplicationBuilder {
	return ApplicationBuilder{&msgraph.Application{}}
}

func (a ApplicationBuilder) ResourceAccess(access []msgraph.RequiredResourceAccess) ApplicationBuilder {
	a.RequiredResourceAccess = access
	return a
}

func (a ApplicationBuilder) Build() *msgraph.Application {
	return a.Application
}
