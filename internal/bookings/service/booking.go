package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	bookingserrors "courtly/internal/bookings/errors"
	"courtly/internal/bookings/events"
	"courtly/internal/bookings/repository"
	"courtly/internal/bookings/validator"
	"courtly/pkg/config"
	mongotx "courtly/pkg/db/mongo"
	apperrors "courtly/pkg/errors"
	"courtly/pkg/model"
	"courtly/pkg/sanitizer"
	"courtly/pkg/status"
	"courtly/pkg/validation"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	MaxCalendarDays = 62
	MaxBulkDelete   = 100

	maxReferenceAttempts = 5
)

type BookingService interface {
	Create(ctx context.Context, req *model.BookingCreate) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetByReference(ctx context.Context, reference string) (*model.Booking, error)
	GetAll(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error)
	Confirm(ctx context.Context, id string) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int64, error)
	Calendar(ctx context.Context, from, to, courtID string) ([]model.CalendarEntry, error)
}

// TenantReader and CourtReader are satisfied by the tenant and court
// services. They must report a missing record with a NOT_FOUND AppError.
type TenantReader interface {
	GetByID(ctx context.Context, id string) (*model.Tenant, error)
}

type CourtReader interface {
	GetByID(ctx context.Context, id string) (*model.Court, error)
}

type bookingService struct {
	repo         repository.BookingRepository
	lockRepo     repository.BookingLockRepository
	tenants      TenantReader
	courts       CourtReader
	publisher    events.Publisher
	validator    *validator.BookingValidator
	cfg          *config.Config
	newReference func() string
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	tenants TenantReader,
	courts CourtReader,
	publisher events.Publisher,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &bookingService{
		repo:         repo,
		lockRepo:     lockRepo,
		tenants:      tenants,
		courts:       courts,
		publisher:    publisher,
		validator:    validator,
		cfg:          cfg,
		newReference: NewReference,
	}
}

// NewReference returns "BK-" followed by ten upper-case hex digits taken from
// a random UUID.
func NewReference() string {
	id := uuid.New()
	return "BK-" + strings.ToUpper(hex.EncodeToString(id[:5]))
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingCreate) (*model.Booking, error) {
	booking := &model.Booking{
		BookingReference: s.newReference(),
		TenantID:         strings.TrimSpace(req.TenantID),
		CourtID:          strings.TrimSpace(req.CourtID),
		Date:             strings.TrimSpace(req.Date),
		StartTime:        strings.TrimSpace(req.StartTime),
		EndTime:          strings.TrimSpace(req.EndTime),
		Status:           status.Initial(),
		Notes:            sanitizer.TrimAndNormalize(req.Notes),
	}

	if err := s.validate(booking); err != nil {
		return nil, err
	}
	if err := s.checkTenant(ctx, booking.TenantID); err != nil {
		return nil, err
	}
	if err := s.checkCourt(ctx, booking); err != nil {
		return nil, err
	}

	release, err := s.acquireSlotLock(ctx, booking.CourtID, booking.Date)
	if err != nil {
		return nil, err
	}
	defer release()

	for attempt := 1; ; attempt++ {
		err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
			if err := s.verifyAvailability(sessCtx, booking, ""); err != nil {
				return err
			}
			return s.repo.Create(sessCtx, booking)
		})
		if !errors.Is(err, bookingserrors.ErrDuplicateReference) || attempt == maxReferenceAttempts {
			break
		}
		s.cfg.Log.Warn("Booking reference collision, regenerating",
			"reference", booking.BookingReference,
			"attempt", attempt,
		)
		booking.BookingReference = s.newReference()
	}
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.cfg.Log.Error("Failed to create booking", "court_id", booking.CourtID, "date", booking.Date, "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"reference", booking.BookingReference,
		"court_id", booking.CourtID,
		"date", booking.Date,
		"start_time", booking.StartTime,
	)
	s.publish(ctx, model.BookingEventCreated, booking, status.Status{})
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve booking")
	}
	return booking, nil
}

func (s *bookingService) GetByReference(ctx context.Context, reference string) (*model.Booking, error) {
	reference = sanitizer.NormalizeReference(reference)
	if reference == "" {
		return nil, apperrors.InvalidInput("Booking reference cannot be empty")
	}

	booking, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, s.mapRepoError(err, reference, "Failed to retrieve booking")
	}
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	filter.ReferencePrefix = sanitizer.NormalizeReference(filter.ReferencePrefix)
	if err := checkDateRange(filter.DateFrom, filter.DateTo); err != nil {
		return nil, 0, err
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "limit", limit, "offset", offset, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) Confirm(ctx context.Context, id string) (*model.Booking, error) {
	return s.transition(ctx, id, status.Confirmed, model.BookingEventConfirmed)
}

func (s *bookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	return s.transition(ctx, id, status.Cancelled, model.BookingEventCancelled)
}

// transition asks the lifecycle policy and then writes the new status only
// if the stored one is still the status the decision was based on.
func (s *bookingService) transition(ctx context.Context, id string, to status.Status, eventType string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve booking")
	}

	from := existing.Status
	if _, err := s.policy().Transition(from, to); err != nil {
		s.cfg.Log.Warn("Booking status change rejected", "id", id, "from", from.String(), "to", to.String())
		return nil, apperrors.Conflict(fmt.Sprintf("Booking %s is %s and cannot be %s", existing.BookingReference, from, to)).
			WithDetails(map[string]any{"from": from.String(), "to": to.String()}).
			WithCause(err)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, from, to)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrStatusChanged) {
			return nil, apperrors.Conflict("Booking status changed while updating; reload and try again")
		}
		return nil, s.mapRepoError(err, id, "Failed to update booking status")
	}

	s.cfg.Log.Info("Booking status changed",
		"id", id,
		"reference", updated.BookingReference,
		"from", from.String(),
		"to", to.String(),
	)
	s.publish(ctx, eventType, updated, from)
	return updated, nil
}

func (s *bookingService) policy() status.Policy {
	return status.Policy{AllowCancelConfirmed: s.cfg.AllowCancelConfirmed}
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to check booking existence")
	}
	if existing.Status != status.Pending {
		return nil, apperrors.Conflict(fmt.Sprintf("Only pending bookings can be rescheduled; booking %s is %s", existing.BookingReference, existing.Status))
	}

	sanitizeUpdate(updates)
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"errors": err})
	}

	merged := mergeBookingUpdates(existing, updates)
	if err := s.validate(merged); err != nil {
		return nil, err
	}
	if err := s.checkCourt(ctx, merged); err != nil {
		return nil, err
	}

	release, err := s.acquireSlotLock(ctx, merged.CourtID, merged.Date)
	if err != nil {
		return nil, err
	}
	defer release()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyAvailability(sessCtx, merged, id); err != nil {
			return err
		}
		if err := s.repo.UpdateSchedule(sessCtx, id, merged); err != nil {
			if errors.Is(err, bookingserrors.ErrStatusChanged) {
				return apperrors.Conflict("Booking status changed while rescheduling; reload and try again")
			}
			return s.mapRepoError(err, id, "Failed to update booking")
		}
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking", err)
	}

	s.cfg.Log.Info("Booking rescheduled successfully",
		"id", id,
		"court_id", merged.CourtID,
		"date", merged.Date,
		"start_time", merged.StartTime,
	)
	return merged, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	var deleted *model.Booking
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		booking, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			return s.mapRepoError(err, id, "Failed to retrieve booking")
		}
		if err := s.repo.Delete(sessCtx, id); err != nil {
			return s.mapRepoError(err, id, "Failed to delete booking")
		}
		deleted = booking
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id, "reference", deleted.BookingReference)
	s.publish(ctx, model.BookingEventDeleted, deleted, status.Status{})
	return nil
}

func (s *bookingService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	ids = sanitizer.NormalizeStringSlice(ids, strings.TrimSpace)
	if len(ids) == 0 {
		return 0, apperrors.InvalidInput("ids cannot be empty")
	}
	if len(ids) > MaxBulkDelete {
		return 0, apperrors.InvalidInput(fmt.Sprintf("at most %d ids can be deleted at once", MaxBulkDelete))
	}

	var deleted []*model.Booking
	var count int64
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		bookings, err := s.repo.FindByIDs(sessCtx, ids)
		if err != nil {
			return err
		}
		n, err := s.repo.BulkDelete(sessCtx, ids)
		if err != nil {
			return err
		}
		deleted, count = bookings, n
		return nil
	})
	if err != nil {
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return 0, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to bulk delete bookings", "count", len(ids), "error", err)
		return 0, apperrors.Internal("Failed to delete bookings", err)
	}

	s.cfg.Log.Info("Bookings deleted", "requested", len(ids), "deleted", count)
	for _, b := range deleted {
		s.publish(ctx, model.BookingEventDeleted, b, status.Status{})
	}
	return count, nil
}

func (s *bookingService) Calendar(ctx context.Context, from, to, courtID string) ([]model.CalendarEntry, error) {
	if from == "" || to == "" {
		return nil, apperrors.InvalidInput("from and to are required")
	}
	start, err := model.ParseDate(from)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid from parameter: " + err.Error())
	}
	end, err := model.ParseDate(to)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid to parameter: " + err.Error())
	}
	if end.Before(start) {
		return nil, apperrors.InvalidInput("to must not be before from")
	}
	if days := int(end.Sub(start)/(24*time.Hour)) + 1; days > MaxCalendarDays {
		return nil, apperrors.InvalidInput(fmt.Sprintf("calendar window cannot exceed %d days, got %d", MaxCalendarDays, days))
	}
	if courtID != "" && !primitive.IsValidObjectID(courtID) {
		return nil, apperrors.InvalidInput("Invalid court ID format")
	}

	bookings, err := s.repo.FindCalendar(ctx, from, to, courtID)
	if err != nil {
		s.cfg.Log.Error("Failed to load booking calendar", "from", from, "to", to, "court_id", courtID, "error", err)
		return nil, apperrors.Internal("Failed to load calendar", err)
	}

	entries := make([]model.CalendarEntry, 0, len(bookings))
	for _, b := range bookings {
		entries = append(entries, model.NewCalendarEntry(b))
	}
	return entries, nil
}

// --- Helpers ---

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "court_id", booking.CourtID, "date", booking.Date, "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"errors": err})
	}
	return nil
}

func invalidField(field, message string) error {
	return apperrors.Validation("Booking validation failed", map[string]any{
		"errors": validation.Field(field, message),
	})
}

func (s *bookingService) checkTenant(ctx context.Context, tenantID string) error {
	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			return invalidField("tenant_id", "tenant does not exist")
		}
		return err
	}
	if !tenant.IsActive {
		return invalidField("tenant_id", "tenant is inactive")
	}
	return nil
}

func (s *bookingService) checkCourt(ctx context.Context, booking *model.Booking) error {
	court, err := s.courts.GetByID(ctx, booking.CourtID)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			return invalidField("court_id", "court does not exist")
		}
		return err
	}
	if !court.IsActive {
		return invalidField("court_id", "court is inactive")
	}
	if err := s.validator.ValidateWithin(booking, court.OperatingHours); err != nil {
		return apperrors.Validation("Booking validation failed", map[string]any{"errors": err})
	}
	return nil
}

// acquireSlotLock takes the advisory lock for a court and date. The returned
// func releases it and must be deferred.
func (s *bookingService) acquireSlotLock(ctx context.Context, courtID, date string) (func(), error) {
	lockID := fmt.Sprintf("booking_lock_%s_%s", courtID, date)

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().UTC().Add(s.cfg.BookingLockTTL),
	}
	if err := s.lockRepo.Create(ctx, lock); err != nil {
		if mongotx.IsDuplicateKey(err) {
			return nil, apperrors.Conflict("This court is currently being booked for that date by another request. Please try again.")
		}
		return nil, apperrors.Internal("Failed to acquire booking lock", err)
	}

	return func() {
		if err := s.lockRepo.Delete(context.WithoutCancel(ctx), lockID); err != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", err)
		}
	}, nil
}

// verifyAvailability fails with a conflict when another non-cancelled booking
// on the same court and date overlaps the slot.
func (s *bookingService) verifyAvailability(ctx context.Context, booking *model.Booking, excludeID string) error {
	existing, err := s.repo.FindOverlapping(ctx, booking.CourtID, booking.Date, booking.StartTime, booking.EndTime, excludeID)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	for _, other := range existing {
		if other.ID == excludeID || !other.Status.Active() {
			continue
		}
		if model.Overlaps(other.StartTime, other.EndTime, booking.StartTime, booking.EndTime) {
			return apperrors.Conflict(fmt.Sprintf(
				"Court is already booked from %s to %s on %s (%s)",
				other.StartTime, other.EndTime, other.Date, other.BookingReference,
			))
		}
	}
	return nil
}

func (s *bookingService) publish(ctx context.Context, eventType string, b *model.Booking, previous status.Status) {
	event := model.NewBookingEvent(eventType, b)
	if !previous.IsZero() {
		event.PreviousStatus = previous.String()
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to publish booking event", "type", eventType, "id", b.ID, "error", err)
	}
}

func (s *bookingService) mapRepoError(err error, id, msg string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	default:
		s.cfg.Log.Error(msg, "id", id, "error", err)
		return apperrors.Internal(msg, err)
	}
}

func checkDateRange(from, to string) error {
	var start, end time.Time
	var err error
	if from != "" {
		if start, err = model.ParseDate(from); err != nil {
			return apperrors.InvalidInput("invalid date_from parameter: " + err.Error())
		}
	}
	if to != "" {
		if end, err = model.ParseDate(to); err != nil {
			return apperrors.InvalidInput("invalid date_to parameter: " + err.Error())
		}
	}
	if from != "" && to != "" && end.Before(start) {
		return apperrors.InvalidInput("date_to must not be before date_from")
	}
	return nil
}

func sanitizeUpdate(u *model.BookingUpdate) {
	u.CourtID = strings.TrimSpace(u.CourtID)
	u.Date = strings.TrimSpace(u.Date)
	u.StartTime = strings.TrimSpace(u.StartTime)
	u.EndTime = strings.TrimSpace(u.EndTime)
	if u.Notes != nil {
		notes := sanitizer.TrimAndNormalize(*u.Notes)
		u.Notes = &notes
	}
}

func mergeBookingUpdates(existing *model.Booking, updates *model.BookingUpdate) *model.Booking {
	merged := *existing

	if updates.CourtID != "" {
		merged.CourtID = updates.CourtID
	}
	if updates.Date != "" {
		merged.Date = updates.Date
	}
	if updates.StartTime != "" {
		merged.StartTime = updates.StartTime
	}
	if updates.EndTime != "" {
		merged.EndTime = updates.EndTime
	}
	if updates.Notes != nil {
		merged.Notes = *updates.Notes
	}

	return &merged
}
