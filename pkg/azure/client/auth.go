package client

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/nais/msgraph.go/msauth"
	"golang.org/x/oauth2"

	"github.com/nais/grantor/pkg/config"
)

var scopes = []string{msauth.DefaultMSGraphScope}

// NewClientCredentialsTokenSource authenticates with a confidential client
// secret, for non-interactive use.
func NewClientCredentialsTokenSource(ctx context.Context, cfg *config.AzureConfig) (oauth2.TokenSource, error) {
	m := msauth.NewManager()
	ts, err := m.ClientCredentialsGrant(ctx, cfg.Tenant.Id, cfg.Auth.ClientId, cfg.Auth.ClientSecret, scopes)
	if err != nil {
		return nil, fmt.Errorf("performing client credentials grant: %w", err)
	}

	return ts, nil
}

type azureCredentialTokenSource struct {
	cred *azidentity.AzureCLICredential
	ctx  context.Context
	opts policy.TokenRequestOptions
}

func (in *azureCredentialTokenSource) Token() (*oauth2.Token, error) {
	tok, err := in.cred.GetToken(in.ctx, in.opts)
	if err != nil {
		return nil, fmt.Errorf("fetching azure token: %w", err)
	}

	return &oauth2.Token{
		AccessToken: tok.Token,
		TokenType:   "bearer",
		Expiry:      tok.ExpiresOn,
	}, nil
}

// NewAzureCLITokenSource reuses the operator's existing `az login` session,
// so an administrator can run the tool without provisioning a client secret.
func NewAzureCLITokenSource(ctx context.Context, cfg *config.AzureConfig) (oauth2.TokenSource, error) {
	cred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{
		TenantID: cfg.Tenant.Id,
	})
	if err != nil {
		return nil, fmt.Errorf("creating azure cli credential: %w", err)
	}

	ts := &azureCredentialTokenSource{
		cred: cred,
		ctx:  ctx,
		opts: policy.TokenRequestOptions{
			Scopes: scopes,
		},
	}

	return eagerTokenSource(ts)
}

// eagerTokenSource acquires a token immediately so that authentication
// failures surface at connect time, before the operator is prompted for
// anything.
func eagerTokenSource(ts oauth2.TokenSource) (oauth2.TokenSource, error) {
	token, err := ts.Token()
	if err != nil {
		return nil, err
	}
	return oauth2.ReuseTokenSource(token, ts), nil
}

func tokenSource(ctx context.Context, cfg *config.AzureConfig) (oauth2.TokenSource, error) {
	if cfg.Auth.ClientId != "" && cfg.Auth.ClientSecret != "" {
		return NewClientCredentialsTokenSource(ctx, cfg)
	}
	return NewAzureCLITokenSource(ctx, cfg)
}
