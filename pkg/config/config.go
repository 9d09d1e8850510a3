package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Azure        AzureConfig `json:"azure"`
	AppId        string      `json:"app-id"`
	Services     []string    `json:"services"`
	GrantConsent bool        `json:"grant-consent"`
	AutoApprove  bool        `json:"auto-approve"`
	Debug        bool        `json:"debug"`
	JSONLog      bool        `json:"json-log"`
	Kafka        KafkaConfig `json:"kafka"`
}

type AzureConfig struct {
	Auth   AzureAuth   `json:"auth"`
	Tenant AzureTenant `json:"tenant"`
}

type AzureAuth struct {
	ClientId     string `json:"client-id"`
	ClientSecret string `json:"client-secret"`
}

type AzureTenant struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

func (a AzureTenant) String() string {
	return fmt.Sprintf("%s - %s", a.Name, a.Id)
}

type KafkaConfig struct {
	Enabled bool     `json:"enabled"`
	Brokers []string `json:"brokers"`
	Topic   string   `json:"topic"`
	TLS     KafkaTLS `json:"tls"`
}

type KafkaTLS struct {
	Enabled         bool   `json:"enabled"`
	CertificatePath string `json:"certificate-path"`
	PrivateKeyPath  string `json:"private-key-path"`
	CAPath          string `json:"ca-path"`
}

// Configuration options
const (
	AzureClientId     = "azure.auth.client-id"
	AzureClientSecret = "azure.auth.client-secret"
	AzureTenantId     = "azure.tenant.id"
	AzureTenantName   = "azure.tenant.name"
	AppId             = "app-id"
	Services          = "services"
	GrantConsent      = "grant-consent"
	AutoApprove       = "auto-approve"
	DebugEnabled      = "debug"
	JSONLogEnabled    = "json-log"
	KafkaEnabled      = "kafka.enabled"
	KafkaBrokers      = "kafka.brokers"
	KafkaTopic        = "kafka.topic"
	KafkaTLSEnabled   = "kafka.tls.enabled"
	KafkaTLSCertPath  = "kafka.tls.certificate-path"
	KafkaTLSKeyPath   = "kafka.tls.private-key-path"
	KafkaTLSCAPath    = "kafka.tls.ca-path"
)

func init() {
	// Automatically read configuration options from environment variables.
	// e.g. --azure.auth.client-id will be configurable using GRANTOR_AZURE_AUTH_CLIENT_ID.
	viper.SetEnvPrefix("GRANTOR")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Read configuration file from working directory and/or /etc.
	// File formats supported include JSON, TOML, YAML, HCL, envfile and Java properties config files
	viper.SetConfigName("grantor")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/grantor")

	flag.String(AzureClientId, "", "Client ID for Azure AD authentication. Empty falls back to Azure CLI credentials.")
	flag.String(AzureClientSecret, "", "Client secret for Azure AD authentication")
	flag.String(AzureTenantId, "", "Tenant ID for Azure AD")
	flag.String(AzureTenantName, "", "Alias/name of tenant for Azure AD")

	flag.String(AppId, "", "Client ID of the target application registration. Prompted for when not set.")
	flag.StringSlice(Services, []string{}, "Resource applications to process, by display name. Empty processes the full catalog.")
	flag.Bool(GrantConsent, true, "Pre-grant admin consent for application permissions by assigning app roles directly")
	flag.Bool(AutoApprove, false, "Skip the interactive confirmation prompt")
	flag.Bool(DebugEnabled, false, "Debug mode toggle")
	flag.Bool(JSONLogEnabled, false, "Log as JSON instead of human-readable text")

	flag.Bool(KafkaEnabled, false, "Publish an audit event to Kafka after each run")
	flag.StringSlice(KafkaBrokers, []string{}, "Comma-separated list of Kafka brokers for audit events")
	flag.String(KafkaTopic, "", "Kafka topic for audit events")
	flag.Bool(KafkaTLSEnabled, false, "Use TLS when connecting to Kafka")
	flag.String(KafkaTLSCertPath, "", "Path to Kafka client certificate")
	flag.String(KafkaTLSKeyPath, "", "Path to Kafka client private key")
	flag.String(KafkaTLSCAPath, "", "Path to Kafka CA certificate")
}

// Print out all configuration options except secret stuff.
func (c Config) Print(redacted []string) {
	ok := func(key string) bool {
		for _, forbiddenKey := range redacted {
			if forbiddenKey == key {
				return false
			}
		}
		return true
	}

	var keys sort.StringSlice = viper.AllKeys()

	keys.Sort()
	for _, key := range keys {
		if ok(key) {
			log.Debugf("%s: %s", key, viper.GetString(key))
		} else {
			log.Debugf("%s: ***REDACTED***", key)
		}
	}
}

func (c Config) Validate(required []string) error {
	present := func(key string) bool {
		for _, requiredKey := range required {
			if requiredKey == key {
				return len(viper.GetString(requiredKey)) > 0
			}
		}
		return true
	}
	var keys sort.StringSlice = viper.AllKeys()
	errs := make([]string, 0)

	keys.Sort()
	for _, key := range keys {
		if !present(key) {
			errs = append(errs, key)
		}
	}
	for _, key := range errs {
		log.Errorf("required key '%s' not configured", key)
	}
	if len(errs) > 0 {
		return errors.New("missing configuration values")
	}
	return nil
}

func decoderHook(dc *mapstructure.DecoderConfig) {
	dc.TagName = "json"
	dc.ErrorUnused = true
}

// New assumes flag.CommandLine has already been parsed by the command runner.
func New() (*Config, error) {
	var cfg Config

	err := viper.ReadInConfig()
	if err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	err = viper.BindPFlags(flag.CommandLine)
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&cfg, decoderHook)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
