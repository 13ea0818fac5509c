package tenantguard

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/tenantguard/pkg/membership"
	"github.com/dmitrymomot/tenantguard/pkg/selection"
	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

// RouterConfig wires the tenant-selection endpoints.
type RouterConfig struct {
	// Store lists tenant documents for the selection dropdown.
	Store membership.Store

	// TenantsCollection is the slug of the tenant collection in Store.
	// Defaults to "tenants".
	TenantsCollection string

	// CurrentUser extracts the authenticated requester. Requests without
	// a user are rejected with 401.
	CurrentUser func(*http.Request) *tenant.User

	// Elevated decides who may select any tenant. Non-elevated users can
	// only select tenants they belong to. Defaults to role "super-admin".
	Elevated func(*tenant.User) bool

	// Setter writes the selection cookie. The zero value uses defaults.
	Setter selection.Setter

	// Logger receives request-level diagnostics.
	Logger *slog.Logger
}

// SelectionRouter serves the tenant-selection endpoints backing the admin
// dropdown:
//
//	GET    /  list selectable tenants and the current selection
//	POST   /  select a tenant ({"tenant": <id>})
//	DELETE /  reset the selection to all tenants
func SelectionRouter(cfg RouterConfig) chi.Router {
	if cfg.TenantsCollection == "" {
		cfg.TenantsCollection = "tenants"
	}
	if cfg.Elevated == nil {
		cfg.Elevated = func(u *tenant.User) bool {
			return u != nil && u.Role == "super-admin"
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Get("/", listTenantsHandler(cfg))
	r.Post("/", selectTenantHandler(cfg))
	r.Delete("/", clearSelectionHandler(cfg))
	return r
}

func listTenantsHandler(cfg RouterConfig) http.HandlerFunc {
	source := selection.Default(cfg.Setter.Name)

	return func(w http.ResponseWriter, r *http.Request) {
		user := requireUser(cfg, w, r)
		if user == nil {
			return
		}

		tenants, err := selectableTenants(r, cfg, user)
		if err != nil {
			cfg.Logger.ErrorContext(r.Context(), "failed to list tenants", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list tenants")
			return
		}

		var selected tenant.ID
		if id, ok := source.Resolve(r); ok {
			selected = id
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"tenants":  tenants,
			"selected": selected,
		})
	}
}

func selectTenantHandler(cfg RouterConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := requireUser(cfg, w, r)
		if user == nil {
			return
		}

		var body struct {
			Tenant any `json:"tenant"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		// The sentinel is a valid reset request, not an identifier.
		if s, isString := body.Tenant.(string); isString && s == selection.AllTenants {
			cfg.Setter.Clear(w)
			writeJSON(w, http.StatusOK, map[string]any{"selected": nil})
			return
		}

		id, ok := tenant.ExtractID(body.Tenant)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid tenant identifier")
			return
		}

		if !cfg.Elevated(user) && !belongsTo(user, id) {
			writeError(w, http.StatusForbidden, "not a member of this tenant")
			return
		}

		cfg.Setter.Set(w, id)
		writeJSON(w, http.StatusOK, map[string]any{"selected": id})
	}
}

func clearSelectionHandler(cfg RouterConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if requireUser(cfg, w, r) == nil {
			return
		}
		cfg.Setter.Clear(w)
		writeJSON(w, http.StatusOK, map[string]any{"selected": nil})
	}
}

// selectableTenants lists every tenant for elevated users, and only the
// user's own tenants otherwise.
func selectableTenants(r *http.Request, cfg RouterConfig, user *tenant.User) ([]tenant.Tenant, error) {
	docs, err := cfg.Store.Find(r.Context(), cfg.TenantsCollection, membership.FindOptions{Limit: 500})
	if err != nil {
		return nil, err
	}
	all := membership.Tenants(docs)

	if cfg.Elevated(user) {
		return all, nil
	}

	member := make(map[string]bool)
	for _, id := range user.TenantIDs() {
		member[selection.FormatValue(id)] = true
	}
	own := make([]tenant.Tenant, 0, len(member))
	for _, t := range all {
		if member[selection.FormatValue(t.ID)] {
			own = append(own, t)
		}
	}
	return own, nil
}

func belongsTo(user *tenant.User, id tenant.ID) bool {
	want := selection.FormatValue(id)
	for _, own := range user.TenantIDs() {
		if selection.FormatValue(own) == want {
			return true
		}
	}
	return false
}

func requireUser(cfg RouterConfig, w http.ResponseWriter, r *http.Request) *tenant.User {
	if cfg.CurrentUser == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil
	}
	user := cfg.CurrentUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil
	}
	return user
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
