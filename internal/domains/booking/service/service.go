package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/repository"
	roomModel "lodge/internal/domains/room/model"
	roomRepo "lodge/internal/domains/room/repository"
	userModel "lodge/internal/domains/user/model"
	userRepo "lodge/internal/domains/user/repository"
	"lodge/internal/metrics"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gRepo "lodge/shared/repository"
	"lodge/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, userEmail string) (dto.BookingResponse, error)
	Transition(ctx context.Context, id, target string) error
	SweepExpired(ctx context.Context) ([]dto.BookingResponse, error)
	ListByUserAndStatus(ctx context.Context, email, status string) (dto.GetBookingsResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	roomRepo  roomRepo.Room
	userRepo  userRepo.User
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	publisher kafka.Publisher
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	userRepo userRepo.User,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	publisher kafka.Publisher,
) Booking {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		userRepo:  userRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		publisher: publisher,
	}
}

// roomStatusFilter guards room writes on the current status. The argument
// name must not collide with the "status" key of the update set.
func roomStatusFilter(roomID, status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
				Table:    roomModel.TableName,
			},
			gDto.Filter{
				ArgName:  "current_status",
				Field:    roomModel.FieldStatus,
				Value:    status,
				Operator: gDto.FilterOperatorEq,
				Table:    roomModel.TableName,
			},
		},
	}
}

// ongoingBookingFilter guards the settle update so a booking that another
// writer already settled cannot leave ONGOING twice.
func ongoingBookingFilter(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "current_status",
				Field:    model.FieldStatus,
				Value:    model.StatusOngoing,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, userEmail string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, shared.FilterByField(userEmail, userModel.FieldEmail, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") //nolint:wrapcheck
	}

	// The status-filtered lookup doubles as the availability check: a room
	// that exists but is BOOKED or in MAINTENANCE yields no row.
	room, err := s.roomRepo.Get(ctx, roomStatusFilter(req.RoomID, roomModel.StatusAvailable))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not available") //nolint:wrapcheck
	}

	booking := req.ToModel(user.ID)

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		roomUpdate := map[string]any{
			roomModel.FieldStatus:    roomModel.StatusBooked,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user.ID,
		}

		if err := s.roomRepo.UpdateTx(ctx, tx, roomUpdate, roomStatusFilter(room.ID, roomModel.StatusAvailable)); err != nil {
			return fmt.Errorf("failed to mark room booked: %w", err)
		}

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		return nil
	})
	if err != nil {
		// Zero matched rows means another writer took the room between the
		// read above and this transaction.
		if errors.Is(err, gRepo.ErrNoRowsAffected) {
			return res, failure.Conflict("room no longer available") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, err
	}

	metrics.IncBookingCreated()

	booking.RoomNumber = room.RoomNumber
	booking.UserEmail = user.Email
	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishLifecycleEvent(c, booking, model.StatusOngoing)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return res, nil
}

func (s *serviceImpl) Transition(ctx context.Context, id, target string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TransitionBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !model.TerminalStatus(target) {
		return failure.BadRequestFromString("target status must be DONE or CANCELLED") //nolint:wrapcheck
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") //nolint:wrapcheck
	}

	// A settled booking has already released its room, so the BOOKED guard
	// rejects a second transition.
	room, err := s.roomRepo.Get(ctx, roomStatusFilter(booking.RoomID, roomModel.StatusBooked))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.NotFound("room not found") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = booking.UserID
	}

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		roomUpdate := map[string]any{
			roomModel.FieldStatus:    roomModel.StatusAvailable,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if err := s.roomRepo.UpdateTx(ctx, tx, roomUpdate, roomStatusFilter(room.ID, roomModel.StatusBooked)); err != nil {
			return fmt.Errorf("failed to release room: %w", err)
		}

		bookingUpdate := map[string]any{
			model.FieldStatus:        target,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if err := s.repo.UpdateTx(ctx, tx, bookingUpdate, ongoingBookingFilter(id)); err != nil {
			return fmt.Errorf("failed to settle booking: %w", err)
		}

		return nil
	})
	if err != nil {
		// Either the room flip or the settle update matched nothing, so a
		// concurrent transition won the race. Roll back without touching the
		// terminal status it wrote.
		if errors.Is(err, gRepo.ErrNoRowsAffected) {
			return failure.Conflict("booking already settled") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to transition booking")

		return err
	}

	metrics.IncBookingSettled(target)

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishLifecycleEvent(c, booking, target)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}

func (s *serviceImpl) SweepExpired(ctx context.Context) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SweepExpiredBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	metrics.IncSweepRun()

	// Strictly expired only: end_time == now is still ongoing.
	expiredFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusOngoing,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEndTime,
				Value:    timezone.Now(),
				Operator: gDto.FilterOperatorLess,
				Table:    model.TableName,
			},
		},
	}

	expired, err := s.repo.GetAll(ctx, gDto.QueryParams{}, expiredFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list expired bookings")

		return nil, fmt.Errorf("failed to list expired bookings: %w", err)
	}

	res = make([]dto.BookingResponse, 0, len(expired))

	for _, booking := range expired {
		if err := s.Transition(ctx, booking.ID, model.StatusDone); err != nil {
			// One stuck booking must not abort the rest of the sweep.
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to auto-complete expired booking")

			continue
		}

		booking.Status = model.StatusDone

		var response dto.BookingResponse
		response.FromModel(booking)

		res = append(res, response)
	}

	log.Info().Int("expired", len(expired)).Int("completed", len(res)).Msg("booking sweep finished")

	return res, nil
}

func (s *serviceImpl) ListByUserAndStatus(ctx context.Context, email, status string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListBookingsByUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if status != constant.Empty && !model.ValidStatus(status) {
		return res, failure.BadRequestFromString("status must be one of ONGOING, DONE, CANCELLED") //nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByField(email, userModel.FieldEmail, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") //nolint:wrapcheck
	}

	filters := []any{
		gDto.Filter{
			Field:    model.FieldUserID,
			Value:    user.ID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
	}

	if status != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldStatus,
			Value:    status,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}

	return s.GetAll(ctx, gDto.QueryParams{}, filter)
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) publishLifecycleEvent(ctx context.Context, booking model.Booking, status string) {
	event := dto.NewLifecycleEvent(booking, status)

	message := kafka.Message{
		Key:   booking.ID,
		Value: event,
	}

	if err := s.publisher.SendMessages(ctx, constant.KafkaTopicBookingLifecycle, message); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Str("status", status).Msg("failed to publish booking lifecycle event")
	}
}
