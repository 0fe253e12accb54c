package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tonyspizza/infras/otel"
	"tonyspizza/internal/domains/booking/model"
	"tonyspizza/internal/domains/booking/model/dto"
	"tonyspizza/internal/domains/booking/repository"
	tableModel "tonyspizza/internal/domains/table/model"
	tableRepo "tonyspizza/internal/domains/table/repository"
	"tonyspizza/shared"
	"tonyspizza/shared/constant"
	gDto "tonyspizza/shared/dto"
	"tonyspizza/shared/failure"
	"tonyspizza/shared/timezone"
	"tonyspizza/shared/validator"
)

const (
	msgBookingNotFound = "booking not found"
	msgInvalidTable    = "Select a valid choice. That choice is not one of the available choices."
	msgOwnerChange     = "A booking cannot be moved to another user."
	msgInvalidSort     = "unsupported sort column"
)

var sortableColumns = []string{
	model.FieldBookingDate,
	model.FieldBookingTime,
	model.FieldNumGuests,
	constant.FieldCreatedAt,
}

// Booking is the owner-scoped booking store. Every operation takes the
// caller's user id and never sees or touches rows owned by someone else.
type Booking interface {
	ListBookings(ctx context.Context, ownerID string, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	CreateBooking(ctx context.Context, ownerID string, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetBookingForOwner(ctx context.Context, bookingID, ownerID string) (dto.BookingResponse, error)
	UpdateBooking(ctx context.Context, bookingID, ownerID string, req dto.UpdateBookingRequest) (dto.BookingResponse, error)
	DeleteBooking(ctx context.Context, bookingID, ownerID string) error
}

type serviceImpl struct {
	repo      repository.Booking
	tableRepo tableRepo.Table
	otel      otel.Otel
}

func New(repo repository.Booking, tableRepo tableRepo.Table, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:      repo,
		tableRepo: tableRepo,
		otel:      otel,
	}
}

func filterByOwner(ownerID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    ownerID,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) ListBookings(ctx context.Context, ownerID string, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if ownerID == "" {
		return res, failure.LoginRequiredError
	}

	if params.SortBy == "" {
		params = params.SortedBy(model.FieldBookingDate, gDto.SortDirAsc)
	}

	if params.SortDir == "" {
		params.SortDir = gDto.SortDirAsc
	}

	if !slices.Contains(sortableColumns, params.SortBy) {
		return res, failure.FieldError(constant.RequestParamSortBy, msgInvalidSort) // nolint:wrapcheck
	}

	if err = validator.ValidateStruct(&params); err != nil {
		return res, err
	}

	filter := filterByOwner(ownerID)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) CreateBooking(ctx context.Context, ownerID string, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if ownerID == "" {
		return res, failure.LoginRequiredError
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	table, err := s.getTable(ctx, req.TableID)
	if err != nil {
		return res, err
	}

	booking, err := req.ToModel(ownerID)
	if err != nil {
		return res, failure.FieldError("date", err.Error()) // nolint:wrapcheck
	}

	booking.TableNumber = table.Number

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Info().Str("booking_id", booking.ID).Str("user_id", ownerID).Msg("booking created")

	res.FromModel(booking)

	return res, nil
}

// GetBookingForOwner reports a booking owned by someone else exactly like a missing one.
func (s *serviceImpl) GetBookingForOwner(ctx context.Context, bookingID, ownerID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBookingForOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if ownerID == "" {
		return res, failure.LoginRequiredError
	}

	// ids are uuid columns, anything else cannot match
	if _, parseErr := uuid.Parse(bookingID); parseErr != nil {
		return res, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	booking, err := s.repo.Get(ctx, shared.FilterByOwner(bookingID, ownerID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) UpdateBooking(ctx context.Context, bookingID, ownerID string, req dto.UpdateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.GetBookingForOwner(ctx, bookingID, ownerID)
	if err != nil {
		return res, err
	}

	if req.Owner != "" && req.Owner != ownerID {
		log.Warn().Str("booking_id", bookingID).Str("user_id", ownerID).Msg("rejected booking owner change")

		return res, failure.FieldError("user", msgOwnerChange) // nolint:wrapcheck
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	table, err := s.getTable(ctx, req.TableID)
	if err != nil {
		return res, err
	}

	changes, err := req.ToChanges()
	if err != nil {
		return res, failure.FieldError("date", err.Error()) // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(changes, ownerID)

	affected, err := s.repo.Update(ctx, updatedFields, shared.FilterByOwner(bookingID, ownerID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	if affected == 0 {
		return res, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	res = current
	res.TableID = table.ID
	res.TableNumber = table.Number
	res.Date = timezone.FormatDate(changes.Date)
	res.Time = changes.Time
	res.NumGuests = changes.NumGuests
	res.ModifiedBy = ownerID

	if modifiedAt, ok := updatedFields[constant.FieldModifiedAt].(time.Time); ok {
		res.ModifiedAt = timezone.Format(modifiedAt, constant.DateFormat)
	}

	return res, nil
}

func (s *serviceImpl) DeleteBooking(ctx context.Context, bookingID, ownerID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.GetBookingForOwner(ctx, bookingID, ownerID); err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, shared.FilterByOwner(bookingID, ownerID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if affected == 0 {
		return failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	log.Info().Str("booking_id", bookingID).Str("user_id", ownerID).Msg("booking deleted")

	return nil
}

func (s *serviceImpl) getTable(ctx context.Context, tableID string) (tableModel.Table, error) {
	table, err := s.tableRepo.Get(ctx, shared.FilterByID(tableID, tableModel.FieldID, tableModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return table, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return table, failure.FieldError("table", msgInvalidTable) // nolint:wrapcheck
	}

	return table, nil
}
