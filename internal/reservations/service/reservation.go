package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	reservationserrors "salas/internal/reservations/errors"
	"salas/internal/reservations/repository"
	"salas/internal/reservations/validator"
	"salas/pkg/config"
	apperrors "salas/pkg/errors"
	"salas/pkg/events"
	"salas/pkg/model"
	"salas/pkg/timeslot"
)

const (
	// WarnDayFallback is appended to create responses when the requested day
	// could not be interpreted and today was substituted.
	WarnDayFallback = "day could not be interpreted, today's date was used instead"

	lockTTL = 10 * time.Second
)

type ReservationService interface {
	Create(ctx context.Context, input *model.ReservationInput) (*model.Reservation, []string, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error)
	Delete(ctx context.Context, id string) error
	CheckConflicts(ctx context.Context, day, startTime, endTime, room, excludeID string) ([]model.ConflictDetail, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	lockRepo  repository.ReservationLockRepository
	validator *validator.ReservationValidator
	producer  *events.Producer
	cfg       *config.Config
	now       func() time.Time
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockRepo repository.ReservationLockRepository,
	validator *validator.ReservationValidator,
	producer *events.Producer,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		producer:  producer,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *reservationService) Create(ctx context.Context, input *model.ReservationInput) (*model.Reservation, []string, error) {
	if err := s.validator.Validate(input); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return nil, nil, apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}

	reservation, warnings, err := s.normalize(input)
	if err != nil {
		return nil, nil, err
	}

	// Acquire advisory lock to prevent concurrent writes to the same slot
	lockID, err := s.acquireSlotLock(ctx, reservation.Room, reservation.Day)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release reservation lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflicts(sessCtx, reservation); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, reservation); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create reservation", "error", err)
		return nil, nil, err
	}

	s.cfg.Log.Info("Reservation created successfully",
		"id", reservation.ID,
		"room", reservation.Room,
		"day", timeslot.DayKey(reservation.Day),
		"time_range", reservation.TimeRange(),
	)

	s.producer.ReservationCreated(ctx, reservation)

	return reservation, warnings, nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}

	return reservation, nil
}

func (s *reservationService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error) {
	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reservations", "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list reservations", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

func (s *reservationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	var deleted *model.Reservation
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		found, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			if errors.Is(err, reservationserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Reservation", id)
			}
			return apperrors.Internal("Failed to retrieve reservation", err)
		}

		if err := s.repo.Delete(sessCtx, id); err != nil {
			if errors.Is(err, reservationserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Reservation", id)
			}
			return apperrors.Internal("Failed to delete reservation", err)
		}

		deleted = found
		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Reservation deleted successfully", "id", id)

	s.producer.ReservationDeleted(ctx, deleted)

	return nil
}

// CheckConflicts runs the overlap probe without writing anything. excludeID
// lets a caller probe a slot while ignoring one existing reservation, which
// supports reschedule flows built on delete-and-recreate.
func (s *reservationService) CheckConflicts(ctx context.Context, day, startTime, endTime, room, excludeID string) ([]model.ConflictDetail, error) {
	if room == "" {
		return nil, apperrors.InvalidInput("Room cannot be empty")
	}

	normalizedDay, fallback := timeslot.NormalizeDay(day, s.now)
	if fallback {
		return nil, apperrors.InvalidInput("Day could not be interpreted")
	}

	startMinute, endMinute, err := s.normalizeRange(startTime, endTime)
	if err != nil {
		return nil, err
	}

	candidate := timeslot.Interval{
		Room:        room,
		Day:         normalizedDay,
		StartMinute: startMinute,
		EndMinute:   endMinute,
	}

	existing, err := s.repo.FindByRoomAndDay(ctx, room, normalizedDay)
	if err != nil {
		return nil, apperrors.Internal("Failed to check existing reservations", err)
	}

	conflicting := timeslot.FindConflicts(candidate, existing, excludeID)

	details := make([]model.ConflictDetail, 0, len(conflicting))
	for _, r := range conflicting {
		details = append(details, r.Conflict())
	}

	return details, nil
}

// --- Helpers ---

// normalize converts raw input into a persisted record: day pinned at
// reference noon, clocks reduced to minutes of day, room and area trimmed,
// attendance floored at 1.
func (s *reservationService) normalize(input *model.ReservationInput) (*model.Reservation, []string, error) {
	var warnings []string

	day, fallback := timeslot.NormalizeDay(input.Day, s.now)
	if fallback {
		s.cfg.Log.Warn("Day fallback applied",
			"raw_day", input.Day,
			"substituted", timeslot.DayKey(day),
		)
		warnings = append(warnings, WarnDayFallback)
	}

	startMinute, endMinute, err := s.normalizeRange(input.StartTime, input.EndTime)
	if err != nil {
		return nil, nil, err
	}

	attendance := input.Attendance
	if attendance <= 0 {
		attendance = 1
	}

	reservation := &model.Reservation{
		ID:          uuid.NewString(),
		Day:         day,
		StartMinute: startMinute,
		EndMinute:   endMinute,
		Room:        strings.TrimSpace(input.Room),
		Area:        strings.TrimSpace(input.Area),
		Attendance:  attendance,
	}

	return reservation, warnings, nil
}

func (s *reservationService) normalizeRange(startTime, endTime string) (int, int, error) {
	startClock, ok := timeslot.NormalizeClock(startTime, s.cfg.TZOffsetHours)
	if !ok {
		return 0, 0, apperrors.Validation("Invalid start_time", map[string]any{"start_time": startTime})
	}
	endClock, ok := timeslot.NormalizeClock(endTime, s.cfg.TZOffsetHours)
	if !ok {
		return 0, 0, apperrors.Validation("Invalid end_time", map[string]any{"end_time": endTime})
	}

	startMinute, err := timeslot.ClockToMinutes(startClock)
	if err != nil {
		return 0, 0, apperrors.Validation("Invalid start_time", map[string]any{"start_time": startTime})
	}
	endMinute, err := timeslot.ClockToMinutes(endClock)
	if err != nil {
		return 0, 0, apperrors.Validation("Invalid end_time", map[string]any{"end_time": endTime})
	}

	if startMinute >= endMinute {
		return 0, 0, apperrors.InvalidInput("end_time must be after start_time")
	}

	return startMinute, endMinute, nil
}

func (s *reservationService) verifyNoConflicts(ctx context.Context, reservation *model.Reservation) error {
	existing, err := s.repo.FindByRoomAndDay(ctx, reservation.Room, reservation.Day)
	if err != nil {
		return apperrors.Internal("Failed to check existing reservations", err)
	}

	candidate := timeslot.FromReservation(reservation)
	conflicting := timeslot.FindConflicts(candidate, existing, reservation.ID)
	if len(conflicting) == 0 {
		return nil
	}

	details := make([]model.ConflictDetail, 0, len(conflicting))
	for _, r := range conflicting {
		details = append(details, r.Conflict())
	}

	return apperrors.Conflict(fmt.Sprintf(
		"Room %q is already reserved in the requested range (%s)",
		reservation.Room,
		conflicting[0].TimeRange(),
	)).WithDetails(map[string]any{"conflicts": details})
}

// acquireSlotLock creates an advisory lock covering the room and day.
// Returns the lock ID if successful, or conflict error if lock already exists
func (s *reservationService) acquireSlotLock(ctx context.Context, room string, day time.Time) (string, error) {
	lockID := fmt.Sprintf("reservation_lock_%s_%s", room, timeslot.DayKey(day))

	lock := &model.ReservationLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(lockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire reservation lock", err)
	}

	return lockID, nil
}

// releaseSlotLock removes the advisory lock
func (s *reservationService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
