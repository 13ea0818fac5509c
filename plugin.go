package tenantguard

import (
	"github.com/dmitrymomot/tenantguard/pkg/access"
	"github.com/dmitrymomot/tenantguard/pkg/selection"
)

// Plugin decorates host collection configurations with tenant scoping. It
// runs at configuration time only; the closures it installs do the
// per-request work.
type Plugin struct {
	cfg    Config
	source selection.Source
	slugs  map[string]CollectionConfig
}

// New creates the plugin. At least one collection must be configured.
func New(cfg Config) (*Plugin, error) {
	if len(cfg.Collections) == 0 {
		return nil, ErrNoCollections
	}
	cfg = cfg.withDefaults()

	slugs := make(map[string]CollectionConfig, len(cfg.Collections))
	for _, cc := range cfg.Collections {
		slugs[cc.Slug] = cc
	}

	return &Plugin{
		cfg:    cfg,
		source: selection.Default(cfg.CookieName),
		slugs:  slugs,
	}, nil
}

// Apply decorates the configured collections in the given list and returns
// it. For each configured collection it wraps the four access rules - the
// originals become delegates of the tenant resolver - and injects the
// tenant-assignments relationship field unless the collection already
// defines one. Collections not named in the configuration pass through
// untouched.
func (p *Plugin) Apply(collections []Collection) []Collection {
	for i, col := range collections {
		cc, ok := p.slugs[col.Slug]
		if !ok {
			continue
		}

		field := cc.Field
		if field == "" {
			field = p.cfg.FieldName
		}

		resolver := access.NewResolver(
			access.WithFieldName(field),
			access.WithElevated(p.cfg.HasAccessToAllTenants),
			access.WithSelectionSource(p.source),
			access.WithMembershipSource(p.cfg.Membership),
			access.WithDelegates(col.Access),
			access.WithLogger(p.cfg.Logger.With("collection", col.Slug)),
		)

		col.Access = access.Rules{
			Create: resolver.Create,
			Read:   resolver.Read,
			Update: resolver.Update,
			Delete: resolver.Delete,
		}

		if !col.HasField(field) {
			col.Fields = append(col.Fields, Field{
				Name:          field,
				Type:          "relationship",
				RelationTo:    p.cfg.TenantsCollection,
				HasMany:       true,
				FilterOptions: resolver.FilterOptions,
			})
		}

		collections[i] = col
	}
	return collections
}

// Resolver builds a standalone access resolver with the plugin's settings
// for the given assignments field, for hosts that wire access rules
// manually instead of through Apply.
func (p *Plugin) Resolver(field string, delegates access.Rules) *access.Resolver {
	if field == "" {
		field = p.cfg.FieldName
	}
	return access.NewResolver(
		access.WithFieldName(field),
		access.WithElevated(p.cfg.HasAccessToAllTenants),
		access.WithSelectionSource(p.source),
		access.WithMembershipSource(p.cfg.Membership),
		access.WithDelegates(delegates),
		access.WithLogger(p.cfg.Logger),
	)
}
