package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"inn/config"
	"inn/infras/otel"
	"inn/infras/postgres"
	"inn/internal/domains/booking/model"
	"inn/internal/domains/booking/model/dto"
	"inn/internal/domains/booking/repository"
	customerModel "inn/internal/domains/customer/model"
	customerRepo "inn/internal/domains/customer/repository"
	roomModel "inn/internal/domains/room/model"
	roomRepo "inn/internal/domains/room/repository"
	"inn/shared"
	"inn/shared/cache"
	"inn/shared/constant"
	gDto "inn/shared/dto"
	"inn/shared/failure"
	"inn/shared/timezone"
)

const (
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	CheckIn(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckOut(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	customerRepo customerRepo.Customer
	db           *postgres.Connection
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	customerRepo customerRepo.Customer,
	db *postgres.Connection,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		db:           db,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	checkIn, checkOut, err := req.ParseDates()
	if err != nil {
		return res, err
	}

	bookingStatus, paymentStatus, err := req.Statuses()
	if err != nil {
		return res, err
	}

	if req.AmountPaid > req.TotalAmount {
		return res, failure.BadRequestFromString("amount_paid cannot exceed total_amount") //nolint:wrapcheck
	}

	roomExists, err := s.roomRepo.Exist(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !roomExists {
		return res, failure.NotFound("room not found") //nolint:wrapcheck
	}

	customerExists, err := s.customerRepo.Exist(ctx, shared.FilterByID(req.CustomerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return res, fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !customerExists {
		return res, failure.NotFound("customer not found") //nolint:wrapcheck
	}

	// Half-open interval test against bookings still holding the room.
	overlapFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    req.RoomID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldBookingStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    model.ActiveStatuses,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "new_check_out",
				Field:    model.FieldScheduledCheckIn,
				Operator: gDto.FilterOperatorLess,
				Value:    checkOut,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "new_check_in",
				Field:    model.FieldScheduledCheckOut,
				Operator: gDto.FilterOperatorGreater,
				Value:    checkIn,
				Table:    model.TableName,
			},
		},
	}

	overlap, err := s.repo.Exist(ctx, overlapFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return res, fmt.Errorf("failed to check booking overlap: %w", err)
	}

	if overlap {
		return res, failure.BadRequestFromString("room is already booked for the requested dates") //nolint:wrapcheck
	}

	booking := req.ToModel(user, checkIn, checkOut, bookingStatus, paymentStatus)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.invalidateCaches(ctx)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	updated, err := s.transition(ctx, id, func(booking model.Booking) error {
		if !booking.BookingStatus.CanCheckIn() {
			return failure.BadRequestFromString(fmt.Sprintf("cannot check in booking with status %s", booking.BookingStatus)) //nolint:wrapcheck
		}

		return nil
	}, func(booking *model.Booking, now map[string]any) {
		checkInAt := timezone.Now()

		booking.BookingStatus = model.StatusCheckedIn
		booking.ActualCheckIn = &checkInAt

		now[model.FieldBookingStatus] = string(model.StatusCheckedIn)
		now[model.FieldActualCheckIn] = checkInAt
	})
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	updated, err := s.transition(ctx, id, func(booking model.Booking) error {
		if !booking.BookingStatus.CanCheckOut() {
			return failure.BadRequestFromString(fmt.Sprintf("cannot check out booking with status %s", booking.BookingStatus)) //nolint:wrapcheck
		}

		return nil
	}, func(booking *model.Booking, now map[string]any) {
		checkOutAt := timezone.Now()

		booking.BookingStatus = model.StatusCheckedOut
		booking.ActualCheckOut = &checkOutAt

		now[model.FieldBookingStatus] = string(model.StatusCheckedOut)
		now[model.FieldActualCheckOut] = checkOutAt
	})
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	updated, err := s.transition(ctx, id, func(booking model.Booking) error {
		if !booking.BookingStatus.CanCancel() {
			return failure.BadRequestFromString(fmt.Sprintf("cannot cancel booking with status %s", booking.BookingStatus)) //nolint:wrapcheck
		}

		return nil
	}, func(booking *model.Booking, now map[string]any) {
		booking.BookingStatus = model.StatusCancelled

		now[model.FieldBookingStatus] = string(model.StatusCancelled)
	})
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

// transition runs a guarded status change with the booking row locked for the
// duration of the transaction.
func (s *serviceImpl) transition(
	ctx context.Context,
	id string,
	guard func(booking model.Booking) error,
	apply func(booking *model.Booking, fields map[string]any),
) (updated model.Booking, err error) {
	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to lock booking")

			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") //nolint:wrapcheck
		}

		if err := guard(booking); err != nil {
			return err
		}

		now := timezone.Now()
		fields := map[string]any{
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}

		apply(&booking, fields)

		booking.ModifiedAt = now
		booking.ModifiedBy = user

		if err := s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update booking")

			return fmt.Errorf("failed to update booking: %w", err)
		}

		updated = booking

		return nil
	})
	if err != nil {
		return updated, err
	}

	s.invalidateCaches(ctx)

	return updated, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

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
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

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

func (s *serviceImpl) invalidateCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
