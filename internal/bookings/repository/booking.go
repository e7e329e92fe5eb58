package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	bookingserrors "courtly/internal/bookings/errors"
	"courtly/pkg/config"
	mongotx "courtly/pkg/db/mongo"
	"courtly/pkg/model"
	"courtly/pkg/status"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Bookings"

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Booking, error)
	FindByReference(ctx context.Context, reference string) (*model.Booking, error)
	FindAll(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, error)
	Count(ctx context.Context, filter model.BookingFilter) (int64, error)
	FindOverlapping(ctx context.Context, courtID, date, startTime, endTime, excludeID string) ([]*model.Booking, error)
	FindCalendar(ctx context.Context, from, to, courtID string) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to status.Status) (*model.Booking, error)
	UpdateSchedule(ctx context.Context, id string, booking *model.Booking) error
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int64, error)
	CountByTenant(ctx context.Context, tenantID string) (int64, error)
	CountByCourt(ctx context.Context, courtID string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBookingRepository struct {
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

var scheduleSort = bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}, {Key: "court_id", Value: 1}}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		if mongotx.IsDuplicateKey(err) {
			return bookingserrors.ErrDuplicateReference
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}
	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *mongoBookingRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	objectIDs, err := toObjectIDs(ids)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}}, options.Find().SetSort(scheduleSort))
}

func (r *mongoBookingRepository) FindByReference(ctx context.Context, reference string) (*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	return r.findOne(ctx, bson.M{"booking_reference": reference})
}

func (r *mongoBookingRepository) FindAll(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "start_time", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	return r.find(ctx, buildFilter(filter), opts)
}

func (r *mongoBookingRepository) Count(ctx context.Context, filter model.BookingFilter) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// FindOverlapping returns the non-cancelled bookings on the court and date
// whose time range intersects [startTime, endTime). excludeID is skipped so a
// reschedule does not collide with itself.
func (r *mongoBookingRepository) FindOverlapping(ctx context.Context, courtID, date, startTime, endTime, excludeID string) ([]*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	filter := bson.M{
		"court_id":   courtID,
		"date":       date,
		"status":     bson.M{"$ne": status.Cancelled.String()},
		"start_time": bson.M{"$lt": endTime},
		"end_time":   bson.M{"$gt": startTime},
	}
	if excludeID != "" {
		objectID, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, excludeID)
		}
		filter["_id"] = bson.M{"$ne": objectID}
	}

	return r.find(ctx, filter, options.Find().SetSort(scheduleSort))
}

func (r *mongoBookingRepository) FindCalendar(ctx context.Context, from, to, courtID string) ([]*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	if courtID != "" {
		filter["court_id"] = courtID
	}
	return r.find(ctx, filter, options.Find().SetSort(scheduleSort))
}

// UpdateStatus moves a booking from one status to another only if it is still
// in from. When nothing matches it tells a missing booking apart from one
// whose status already moved on.
func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id string, from, to status.Status) (*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "status": from.String()}
	update := bson.M{
		"$set": bson.M{
			"status":     to.String(),
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking model.Booking
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err == nil {
		return &booking, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return nil, r.missOrConflict(ctx, objectID)
}

// UpdateSchedule rewrites the slot of a booking that is still pending.
func (r *mongoBookingRepository) UpdateSchedule(ctx context.Context, id string, booking *model.Booking) error {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	booking.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	filter := bson.M{"_id": objectID, "status": status.Pending.String()}
	update := bson.M{
		"$set": bson.M{
			"court_id":   booking.CourtID,
			"date":       booking.Date,
			"start_time": booking.StartTime,
			"end_time":   booking.EndTime,
			"notes":      booking.Notes,
			"updated_at": booking.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return r.missOrConflict(ctx, objectID)
	}
	return nil
}

func (r *mongoBookingRepository) missOrConflict(ctx context.Context, objectID primitive.ObjectID) error {
	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to check booking: %w", err)
	}
	if n == 0 {
		return bookingserrors.ErrNotFound
	}
	return bookingserrors.ErrStatusChanged
}

func (r *mongoBookingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if result.DeletedCount == 0 {
		return bookingserrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	objectIDs, err := toObjectIDs(ids)
	if err != nil {
		return 0, err
	}

	result, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookings: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoBookingRepository) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	return r.countWhere(ctx, bson.M{"tenant_id": tenantID})
}

func (r *mongoBookingRepository) CountByCourt(ctx context.Context, courtID string) (int64, error) {
	return r.countWhere(ctx, bson.M{"court_id": courtID})
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func (r *mongoBookingRepository) countWhere(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *mongoBookingRepository) findOne(ctx context.Context, filter bson.M) (*model.Booking, error) {
	var booking model.Booking
	if err := r.collection.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Booking, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func toObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
		}
		out = append(out, oid)
	}
	return out, nil
}

func buildFilter(f model.BookingFilter) bson.M {
	filter := bson.M{}
	if !f.Status.IsZero() {
		filter["status"] = f.Status.String()
	}
	if f.TenantID != "" {
		filter["tenant_id"] = f.TenantID
	}
	if f.CourtID != "" {
		filter["court_id"] = f.CourtID
	}
	if f.DateFrom != "" || f.DateTo != "" {
		dates := bson.M{}
		if f.DateFrom != "" {
			dates["$gte"] = f.DateFrom
		}
		if f.DateTo != "" {
			dates["$lte"] = f.DateTo
		}
		filter["date"] = dates
	}
	if f.ReferencePrefix != "" {
		filter["booking_reference"] = bson.M{"$regex": "^" + regexp.QuoteMeta(f.ReferencePrefix)}
	}
	return filter
}
