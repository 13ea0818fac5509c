package membership

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

// MongoStore reads documents from a MongoDB database. Assignment arrays
// are embedded in user documents, so no extra materialization is needed
// regardless of the requested depth.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore creates a store over an existing database handle. The
// client's lifecycle is owned by the caller.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// FindByID fetches one document by its _id. String identifiers that parse
// as ObjectID hex are retried in ObjectID form, covering identifiers that
// traveled through JSON and lost their native type.
func (s *MongoStore) FindByID(ctx context.Context, collection string, id any, depth int) (map[string]any, error) {
	coll := s.db.Collection(collection)

	var doc bson.M
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if hex, ok := id.(string); ok {
			if oid, oidErr := bson.ObjectIDFromHex(hex); oidErr == nil {
				err = coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
			}
		}
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return plainDoc(doc), nil
}

// Find lists documents from a collection, sorted by _id for stable
// pagination-free listings.
func (s *MongoStore) Find(ctx context.Context, collection string, opts FindOptions) ([]map[string]any, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if opts.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(opts.Limit))
	}

	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, err
	}

	docs := make([]map[string]any, 0, len(raw))
	for _, d := range raw {
		docs = append(docs, plainDoc(d))
	}
	return docs, nil
}

// plainDoc converts driver-typed documents to plain maps and slices so
// callers can treat every store uniformly and tenant.ExtractID sees the
// shapes it recognizes.
func plainDoc(doc bson.M) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v any) any {
	switch t := v.(type) {
	case bson.M:
		return plainDoc(t)
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plainValue(e.Value)
		}
		return m
	case bson.A:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = plainValue(e)
		}
		return s
	default:
		return v
	}
}

// Tenants is a convenience decoder for tenant listings produced by Find.
func Tenants(docs []map[string]any) []tenant.Tenant {
	out := make([]tenant.Tenant, 0, len(docs))
	for _, doc := range docs {
		id, ok := tenant.ExtractID(doc)
		if !ok {
			continue
		}
		t := tenant.Tenant{ID: id}
		if v, ok := doc["name"].(string); ok {
			t.Name = v
		}
		if v, ok := doc["slug"].(string); ok {
			t.Slug = v
		}
		if v, ok := doc["domain"].(string); ok {
			t.Domain = v
		}
		out = append(out, t)
	}
	return out
}
