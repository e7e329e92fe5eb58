package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	courtserrors "courtly/internal/courts/errors"
	"courtly/pkg/config"
	mongotx "courtly/pkg/db/mongo"
	"courtly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Courts"

type CourtRepository interface {
	Create(ctx context.Context, court *model.Court) error
	FindByID(ctx context.Context, id string) (*model.Court, error)
	FindAll(ctx context.Context, active *bool, limit int, offset int64) ([]*model.Court, error)
	Count(ctx context.Context, active *bool) (int64, error)
	Update(ctx context.Context, id string, court *model.Court) error
	Delete(ctx context.Context, id string) error
}

type mongoCourtRepository struct {
	collection *mongo.Collection
}

func NewMongoCourtRepository(cfg *config.Config) CourtRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCourtRepository{
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoCourtRepository) Create(ctx context.Context, court *model.Court) error {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	court.CreatedAt = now
	court.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, court)
	if err != nil {
		if mongotx.IsDuplicateKey(err) {
			return courtserrors.ErrDuplicateName
		}
		return fmt.Errorf("failed to create court: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		court.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCourtRepository) FindByID(ctx context.Context, id string) (*model.Court, error) {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", courtserrors.ErrInvalidID, id)
	}

	var court model.Court
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&court); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, courtserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find court: %w", err)
	}
	return &court, nil
}

func activeFilter(active *bool) bson.M {
	if active == nil {
		return bson.M{}
	}
	return bson.M{"is_active": *active}
}

func (r *mongoCourtRepository) FindAll(ctx context.Context, active *bool, limit int, offset int64) ([]*model.Court, error) {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, activeFilter(active), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find courts: %w", err)
	}
	defer cursor.Close(ctx)

	courts := []*model.Court{}
	if err := cursor.All(ctx, &courts); err != nil {
		return nil, fmt.Errorf("failed to decode courts: %w", err)
	}
	return courts, nil
}

func (r *mongoCourtRepository) Count(ctx context.Context, active *bool) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, activeFilter(active))
	if err != nil {
		return 0, fmt.Errorf("failed to count courts: %w", err)
	}
	return count, nil
}

func (r *mongoCourtRepository) Update(ctx context.Context, id string, court *model.Court) error {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", courtserrors.ErrInvalidID, id)
	}

	court.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"name":            court.Name,
			"description":     court.Description,
			"hourly_rate":     court.HourlyRate,
			"light_surcharge": court.LightSurcharge,
			"is_active":       court.IsActive,
			"operating_hours": court.OperatingHours,
			"updated_at":      court.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		if mongotx.IsDuplicateKey(err) {
			return courtserrors.ErrDuplicateName
		}
		return fmt.Errorf("failed to update court: %w", err)
	}
	if result.MatchedCount == 0 {
		return courtserrors.ErrNotFound
	}
	return nil
}

func (r *mongoCourtRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", courtserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete court: %w", err)
	}
	if result.DeletedCount == 0 {
		return courtserrors.ErrNotFound
	}
	return nil
}
