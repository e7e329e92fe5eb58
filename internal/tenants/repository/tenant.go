package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	tenantserrors "courtly/internal/tenants/errors"
	"courtly/pkg/config"
	mongotx "courtly/pkg/db/mongo"
	"courtly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Tenants"

type TenantRepository interface {
	Create(ctx context.Context, tenant *model.Tenant) error
	FindByID(ctx context.Context, id string) (*model.Tenant, error)
	FindAll(ctx context.Context, filter model.TenantFilter, limit int, offset int64) ([]*model.Tenant, error)
	Count(ctx context.Context, filter model.TenantFilter) (int64, error)
	Update(ctx context.Context, id string, tenant *model.Tenant) error
	Delete(ctx context.Context, id string) error
}

type mongoTenantRepository struct {
	collection *mongo.Collection
}

func NewMongoTenantRepository(cfg *config.Config) TenantRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTenantRepository{
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoTenantRepository) Create(ctx context.Context, tenant *model.Tenant) error {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	tenant.CreatedAt = now
	tenant.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, tenant)
	if err != nil {
		if mongotx.IsDuplicateKey(err) {
			return tenantserrors.ErrDuplicateTenantID
		}
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		tenant.ID = oid.Hex()
	}
	return nil
}

func (r *mongoTenantRepository) FindByID(ctx context.Context, id string) (*model.Tenant, error) {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", tenantserrors.ErrInvalidID, id)
	}

	var tenant model.Tenant
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&tenant); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, tenantserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tenant: %w", err)
	}
	return &tenant, nil
}

func (r *mongoTenantRepository) FindAll(ctx context.Context, filter model.TenantFilter, limit int, offset int64) ([]*model.Tenant, error) {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "tower", Value: 1}, {Key: "unit", Value: 1}, {Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find tenants: %w", err)
	}
	defer cursor.Close(ctx)

	tenants := []*model.Tenant{}
	if err := cursor.All(ctx, &tenants); err != nil {
		return nil, fmt.Errorf("failed to decode tenants: %w", err)
	}
	return tenants, nil
}

func (r *mongoTenantRepository) Count(ctx context.Context, filter model.TenantFilter) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count tenants: %w", err)
	}
	return count, nil
}

func buildFilter(f model.TenantFilter) bson.M {
	filter := bson.M{}
	if f.Active != nil {
		filter["is_active"] = *f.Active
	}
	if f.Tower != "" {
		filter["tower"] = f.Tower
	}
	if f.Unit != "" {
		filter["unit"] = f.Unit
	}
	return filter
}

func (r *mongoTenantRepository) Update(ctx context.Context, id string, tenant *model.Tenant) error {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", tenantserrors.ErrInvalidID, id)
	}

	tenant.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"name":            tenant.Name,
			"email":           tenant.Email,
			"phone":           tenant.Phone,
			"tower":           tenant.Tower,
			"unit":            tenant.Unit,
			"booking_limit":   tenant.BookingLimit,
			"is_active":       tenant.IsActive,
			"profile_picture": tenant.ProfilePicture,
			"updated_at":      tenant.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update tenant: %w", err)
	}
	if result.MatchedCount == 0 {
		return tenantserrors.ErrNotFound
	}
	return nil
}

func (r *mongoTenantRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", tenantserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	if result.DeletedCount == 0 {
		return tenantserrors.ErrNotFound
	}
	return nil
}
