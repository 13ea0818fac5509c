package tenantguard

import (
	"log/slog"

	"github.com/dmitrymomot/tenantguard/pkg/access"
	"github.com/dmitrymomot/tenantguard/pkg/config"
	"github.com/dmitrymomot/tenantguard/pkg/selection"
	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

// CollectionConfig names a collection to scope and optionally overrides
// the field its tenant assignments live under.
type CollectionConfig struct {
	Slug  string `yaml:"slug"`
	Field string `yaml:"field,omitempty"`
}

// Config is the plugin configuration surface.
type Config struct {
	// Collections lists the collections to augment with tenant scoping.
	Collections []CollectionConfig

	// TenantsCollection is the slug of the collection holding tenant
	// documents. Defaults to "tenants".
	TenantsCollection string

	// AuthCollection is the slug of the collection users authenticate
	// against. Used for labeling only; defaults to "users".
	AuthCollection string

	// CookieName is the selection cookie inspected for elevated users.
	// Defaults to selection.DefaultCookieName.
	CookieName string

	// FieldName is the default collection field holding tenant
	// assignments. Defaults to "tenants"; per-collection overrides win.
	FieldName string

	// HasAccessToAllTenants decides which users bypass tenant filtering.
	// Defaults to role == access.DefaultElevatedRole.
	HasAccessToAllTenants func(*tenant.User) bool

	// Membership resolves tenant sets for users whose documents carry no
	// assignments. Optional; without it only document-embedded
	// assignments count.
	Membership access.MembershipSource

	// Logger receives debug output from the generated access rules.
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.TenantsCollection == "" {
		c.TenantsCollection = "tenants"
	}
	if c.AuthCollection == "" {
		c.AuthCollection = "users"
	}
	if c.CookieName == "" {
		c.CookieName = selection.DefaultCookieName
	}
	if c.FieldName == "" {
		c.FieldName = "tenants"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// EnvConfig is the environment-variable shape of the plugin settings.
type EnvConfig struct {
	TenantsCollection string `env:"TENANTGUARD_TENANTS_COLLECTION" envDefault:"tenants"`
	AuthCollection    string `env:"TENANTGUARD_AUTH_COLLECTION" envDefault:"users"`
	CookieName        string `env:"TENANTGUARD_COOKIE_NAME" envDefault:"payload-selected-tenant"`
	FieldName         string `env:"TENANTGUARD_TENANTS_FIELD" envDefault:"tenants"`
}

// ConfigFromEnv builds a Config from environment variables, leaving the
// code-only settings (collections, predicates, membership source) to the
// caller.
func ConfigFromEnv() (Config, error) {
	var envCfg EnvConfig
	if err := config.Load(&envCfg); err != nil {
		return Config{}, err
	}
	return Config{
		TenantsCollection: envCfg.TenantsCollection,
		AuthCollection:    envCfg.AuthCollection,
		CookieName:        envCfg.CookieName,
		FieldName:         envCfg.FieldName,
	}, nil
}
