package membership

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore reads the tenancy schema created by Migrate: users,
// tenants, and the user_tenants join table holding assignments.
// Identifiers are stored as text so both numeric and string tenant
// identifiers fit one schema.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store over an existing connection pool. The
// pool's lifecycle is owned by the caller.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// FindByID fetches one document. Only the "users" and "tenants"
// collections exist in the relational schema; anything else is the
// caller's mistake, not a missing row.
func (s *PostgresStore) FindByID(ctx context.Context, collection string, id any, depth int) (map[string]any, error) {
	switch collection {
	case "users":
		return s.findUser(ctx, id, depth)
	case "tenants":
		return s.findTenant(ctx, id)
	default:
		return nil, ErrUnknownCollection
	}
}

// Find lists documents. Only tenant listings are supported; users are
// always fetched individually.
func (s *PostgresStore) Find(ctx context.Context, collection string, opts FindOptions) ([]map[string]any, error) {
	if collection != "tenants" {
		return nil, ErrUnknownCollection
	}

	query := `SELECT id, name, slug, domain FROM tenants ORDER BY name`
	args := []any{}
	if opts.Limit > 0 {
		query += ` LIMIT $1`
		args = append(args, opts.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []map[string]any
	for rows.Next() {
		doc, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *PostgresStore) findUser(ctx context.Context, id any, depth int) (map[string]any, error) {
	var (
		userID string
		role   string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, role FROM users WHERE id = $1`, id,
	).Scan(&userID, &role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	assignments, err := s.userAssignments(ctx, userID, depth)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"id":      userID,
		"role":    role,
		"tenants": assignments,
	}, nil
}

// userAssignments loads the join rows. With depth > 0 each assignment
// embeds the full tenant record, mirroring how document stores materialize
// references; otherwise the reference stays a bare identifier.
func (s *PostgresStore) userAssignments(ctx context.Context, userID string, depth int) ([]any, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.id, t.name, COALESCE(t.slug, ''), COALESCE(t.domain, ''), COALESCE(ut.role, '')
		FROM user_tenants ut
		JOIN tenants t ON t.id = ut.tenant_id
		WHERE ut.user_id = $1
		ORDER BY ut.created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []any
	for rows.Next() {
		var tenantID, name, slug, domain, role string
		if err := rows.Scan(&tenantID, &name, &slug, &domain, &role); err != nil {
			return nil, err
		}

		var ref any = tenantID
		if depth > 0 {
			ref = map[string]any{
				"id":     tenantID,
				"name":   name,
				"slug":   slug,
				"domain": domain,
			}
		}
		assignments = append(assignments, map[string]any{
			"tenant": ref,
			"role":   role,
		})
	}
	return assignments, rows.Err()
}

func (s *PostgresStore) findTenant(ctx context.Context, id any) (map[string]any, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, slug, domain FROM tenants WHERE id = $1`, id)
	doc, err := scanTenant(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return doc, err
}

func scanTenant(row pgx.Row) (map[string]any, error) {
	var (
		id, name     string
		slug, domain *string
	)
	if err := row.Scan(&id, &name, &slug, &domain); err != nil {
		return nil, err
	}
	doc := map[string]any{"id": id, "name": name}
	if slug != nil {
		doc["slug"] = *slug
	}
	if domain != nil {
		doc["domain"] = *domain
	}
	return doc, nil
}
