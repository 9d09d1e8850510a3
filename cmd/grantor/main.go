package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/nais/grantor/pkg/azure"
	"github.com/nais/grantor/pkg/azure/client"
	"github.com/nais/grantor/pkg/catalog"
	"github.com/nais/grantor/pkg/config"
	"github.com/nais/grantor/pkg/event"
	"github.com/nais/grantor/pkg/grant"
	"github.com/nais/grantor/pkg/kafka"
	"github.com/nais/grantor/pkg/logger"
	"github.com/nais/grantor/pkg/prompt"
	"github.com/nais/grantor/pkg/transaction"
)

var rootCmd = &cobra.Command{
	Use:          "grantor",
	Short:        "Grants API permissions to an Azure AD application's service principal",
	SilenceUsage: true,
}

var grantCmd = &cobra.Command{
	Use:          "grant",
	Long:         "Merges the permission catalog into the target application's required resource access declaration and pre-grants admin consent for application permissions.",
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	grantCmd.Flags().AddFlagSet(flag.CommandLine)
	rootCmd.AddCommand(grantCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger.SetupLogrus(cfg.Debug, cfg.JSONLog)

	cfg.Print([]string{
		config.AzureClientSecret,
	})
	if err := cfg.Validate([]string{config.AzureTenantId}); err != nil {
		return err
	}

	azureClient, err := client.New(ctx, &cfg.Azure)
	if err != nil {
		return fmt.Errorf("connecting to azure ad: %w", err)
	}

	clientId, err := targetClientId(cfg)
	if err != nil {
		return err
	}

	cat := catalog.Default().Filter(cfg.Services...)
	if len(cat) == 0 {
		return fmt.Errorf("no services matching %v; available: %v", cfg.Services, catalog.Default().ServiceNames())
	}

	tx := transaction.New(ctx, uuid.New().String())

	tx, err = resolveTarget(tx, azureClient, clientId)
	if err != nil {
		return err
	}

	result, proceeded, err := executeGrant(tx, azureClient, cat, cfg, prompt.Confirm)
	if err != nil {
		return err
	}
	if !proceeded {
		return nil
	}

	printSummary(tx, result)
	publishAuditEvent(tx, cfg, result)

	if result.Failed() {
		return errors.New("one or more services failed; see log for details")
	}
	return nil
}

// executeGrant shows the plan, gates on the operator's confirmation and runs
// the engine. A declined confirmation issues no remote writes at all.
func executeGrant(tx transaction.Transaction, azureClient azure.Client, cat catalog.Catalog, cfg *config.Config, confirm func(label string) (bool, error)) (grant.Result, bool, error) {
	printPlan(tx, cat, cfg.GrantConsent)

	if !cfg.AutoApprove {
		approved, err := confirm(fmt.Sprintf("Grant the listed permissions to '%s'", tx.Target.DisplayName))
		if err != nil {
			return grant.Result{}, false, err
		}
		if !approved {
			tx.Log.Info("aborted by operator; no changes made")
			return grant.Result{}, false, nil
		}
	}

	engine := grant.NewEngine(azureClient)
	result := engine.Process(tx, cat, grant.Options{GrantConsent: cfg.GrantConsent})
	return result, true, nil
}

func targetClientId(cfg *config.Config) (string, error) {
	if cfg.AppId != "" {
		if err := prompt.ValidClientId(cfg.AppId); err != nil {
			return "", fmt.Errorf("invalid app-id '%s': %w", cfg.AppId, err)
		}
		return prompt.Normalize(cfg.AppId), nil
	}
	return prompt.ClientId()
}

func resolveTarget(tx transaction.Transaction, azureClient azure.Client, clientId azure.ClientId) (transaction.Transaction, error) {
	app, err := azureClient.Application().GetByClientId(tx.Ctx, clientId)
	if err != nil {
		return tx, fmt.Errorf("resolving target application: %w", err)
	}
	tx = tx.UpdateWithApplication(app)

	exists, sp, err := azureClient.ServicePrincipal().Exists(tx.Ctx, clientId)
	if err != nil {
		return tx, fmt.Errorf("resolving target service principal: %w", err)
	}
	if !exists {
		return tx, fmt.Errorf("application '%s' has no service principal in this tenant", clientId)
	}
	tx = tx.UpdateWithServicePrincipalID(sp)

	return tx, nil
}

func printPlan(tx transaction.Transaction, cat catalog.Catalog, grantConsent bool) {
	tx.Log.Infof("target application: %s (%s)", tx.Target.DisplayName, tx.Target.ClientId)
	for _, service := range cat {
		for _, permission := range service.Permissions {
			tx.Log.Infof("  %s: %s (%s)", service.Resource.DisplayName, permission.Name, permission.Type)
		}
	}
	if grantConsent {
		tx.Log.Info("admin consent will be pre-granted for all application permissions")
	}
}

func printSummary(tx transaction.Transaction, result grant.Result) {
	for _, service := range result.Services {
		log := tx.Log.WithField("service", service.Service)
		switch {
		case service.Failed():
			log.Warnf("%s: failed", service.Service)
		case len(service.ConsentErrors) > 0:
			log.Warnf("%s: permissions declared, %d consent grant(s) failed", service.Service, len(service.ConsentErrors))
		default:
			log.Infof("%s: done (%d granted, %d already in place)", service.Service, len(service.Granted), len(service.AlreadySet))
		}
	}
}

func publishAuditEvent(tx transaction.Transaction, cfg *config.Config, result grant.Result) {
	if !cfg.Kafka.Enabled {
		return
	}

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		tx.Log.Warnf("audit event not published: %v", err)
		return
	}
	defer func() {
		_ = producer.Close()
	}()

	services := make([]event.Service, 0, len(result.Services))
	for _, service := range result.Services {
		services = append(services, event.Service{
			Name:    service.Service,
			Granted: service.Granted,
			Failed:  service.Failed(),
		})
	}

	e := event.NewEvent(tx.CorrelationId, event.Application{
		ClientId:    tx.Target.ClientId,
		DisplayName: tx.Target.DisplayName,
		Tenant:      cfg.Azure.Tenant.Id,
	}, services)

	if _, err := producer.ProduceEvent(e); err != nil {
		tx.Log.Warnf("audit event not published: %v", err)
		return
	}

	tx.Log.Debugf("published audit event %s", e)
}
