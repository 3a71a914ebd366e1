package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
)

const collectionDashboards = "dashboards"

type DashboardRepository struct {
	col *mongo.Collection
}

func NewDashboardRepository(db *mongo.Database) *DashboardRepository {
	return &DashboardRepository{col: db.Collection(collectionDashboards)}
}

type mongoDashboard struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"userId"`
	Name      string             `bson:"name"`
	URL       string             `bson:"url"`
	Icon      string             `bson:"icon"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (m mongoDashboard) toDomain() *domain.Dashboard {
	return &domain.Dashboard{
		ID:        m.ID.Hex(),
		UserID:    m.UserID,
		Name:      m.Name,
		URL:       m.URL,
		Icon:      domain.IconKey(m.Icon),
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// Find returns the dashboards matching f, newest first.
func (r *DashboardRepository) Find(ctx context.Context, f ports.DashboardFilter) ([]*domain.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, listFilter(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*domain.Dashboard, 0)
	for cur.Next(ctx) {
		var doc mongoDashboard
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

// FindByID retrieves one dashboard. When ownerID is non-empty the lookup is
// additionally filtered by userId.
func (r *DashboardRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := byID(id, ownerID)
	if err != nil {
		return nil, err
	}

	var doc mongoDashboard
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDashboardNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// Insert stores d and returns it with the generated id, exactly as a later
// read will see it.
func (r *DashboardRepository) Insert(ctx context.Context, d *domain.Dashboard) (*domain.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoDashboard{
		UserID:    d.UserID,
		Name:      d.Name,
		URL:       d.URL,
		Icon:      string(d.Icon),
		CreatedAt: bsonTime(d.CreatedAt),
		UpdatedAt: bsonTime(d.UpdatedAt),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

// Update applies the non-nil patch fields and returns the updated document.
func (r *DashboardRepository) Update(ctx context.Context, id, ownerID string, patch domain.DashboardPatch, updatedAt time.Time) (*domain.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := byID(id, ownerID)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": bsonTime(updatedAt)}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.URL != nil {
		set["url"] = *patch.URL
	}
	if patch.Icon != nil {
		set["icon"] = string(*patch.Icon)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoDashboard
	if err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDashboardNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// Delete removes one dashboard; a miss reports ErrDashboardNotFound.
func (r *DashboardRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := byID(id, ownerID)
	if err != nil {
		return err
	}

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrDashboardNotFound
	}
	return nil
}

func (r *DashboardRepository) Count(ctx context.Context, f ports.DashboardFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, listFilter(f))
}

// EnsureIndexes creates necessary indexes on the dashboards collection.
func (r *DashboardRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// bsonTime drops what a BSON datetime cannot hold.
func bsonTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func listFilter(f ports.DashboardFilter) bson.M {
	filter := bson.M{}
	if f.UserID != "" {
		filter["userId"] = f.UserID
	}
	if f.NameContains != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.NameContains), Options: "i"}
	}
	return filter
}

// byID builds the single-record filter. Malformed ids cannot exist in the
// collection, so they are reported as not found.
func byID(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDashboardNotFound
	}
	filter := bson.M{"_id": oid}
	if ownerID != "" {
		filter["userId"] = ownerID
	}
	return filter, nil
}
