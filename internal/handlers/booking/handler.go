package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tonyspizza/infras/otel"
	"tonyspizza/internal/domains/booking/model"
	"tonyspizza/internal/domains/booking/model/dto"
	"tonyspizza/internal/domains/booking/service"
	tableDto "tonyspizza/internal/domains/table/model/dto"
	tableService "tonyspizza/internal/domains/table/service"
	"tonyspizza/shared"
	"tonyspizza/shared/constant"
	gDto "tonyspizza/shared/dto"
	"tonyspizza/shared/failure"
	"tonyspizza/shared/timeslot"
	"tonyspizza/shared/validator"
	"tonyspizza/transport/http/render"
	"tonyspizza/transport/http/response"
)

// formData backs the create and update pages.
type formData struct {
	Tables  []tableDto.TableResponse
	Slots   []string
	Booking dto.BookingResponse
}

type Handler struct {
	service      service.Booking
	tableService tableService.Table
	renderer     render.Renderer
	otel         otel.Otel
}

func New(service service.Booking, tableService tableService.Table, renderer render.Renderer, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		tableService: tableService,
		renderer:     renderer,
		otel:         otel,
	}
}

// Router expects to be mounted behind a login guard.
func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.ListBookings)
		routerGroup.Get("/create/", handler.CreateForm)
		routerGroup.Post("/create/", handler.CreateBooking)
		routerGroup.Get("/{id}/update/", handler.UpdateForm)
		routerGroup.Post("/{id}/update/", handler.UpdateBooking)
		routerGroup.Get("/{id}/delete/", handler.DeleteForm)
		routerGroup.Post("/{id}/delete/", handler.DeleteBooking)
	})
}

func (handler *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListBookings")
	defer scope.End()

	userID, username := shared.CurrentUser(ctx)
	view := render.View{Title: "My bookings", Username: username}

	// every booking of the user on one page, soonest first
	queryParams := gDto.QueryParams{}.SortedBy(model.FieldBookingDate, gDto.SortDirAsc)

	bookings, err := handler.service.ListBookings(ctx, userID, queryParams)
	if err != nil {
		scope.TraceError(err)
		response.WithPageError(w, r, handler.renderer, view, err)

		return
	}

	view.Data = bookings
	handler.renderer.HTML(w, http.StatusOK, render.PageBookingList, view)
}

func (handler *Handler) CreateForm(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateForm")
	defer scope.End()

	handler.renderForm(w, r.WithContext(ctx), http.StatusOK, render.PageBookingCreate,
		dto.CreateBookingRequest{}, dto.BookingResponse{}, nil)
}

func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	r = r.WithContext(ctx)
	userID, _ := shared.CurrentUser(ctx)

	req := dto.CreateBookingRequest{}

	err := validator.ValidateForm(r, &req)
	if err == nil {
		var created dto.BookingResponse

		created, err = handler.service.CreateBooking(ctx, userID, req)
		if err == nil {
			scope.AddEvent("booking created")
			log.Debug().Str("booking_id", created.ID).Msg("booking created through form")
			response.Redirect(w, r, constant.PathBookings)

			return
		}
	}

	scope.TraceError(err)
	handler.renderForm(w, r, http.StatusBadRequest, render.PageBookingCreate, req, dto.BookingResponse{}, err)
}

func (handler *Handler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateForm")
	defer scope.End()

	r = r.WithContext(ctx)
	userID, username := shared.CurrentUser(ctx)

	booking, err := handler.service.GetBookingForOwner(ctx, chi.URLParam(r, constant.RequestParamID), userID)
	if err != nil {
		scope.TraceError(err)
		response.WithPageError(w, r, handler.renderer, render.View{Username: username}, err)

		return
	}

	form := dto.UpdateBookingRequest{}
	form.FromResponse(booking)

	handler.renderForm(w, r, http.StatusOK, render.PageBookingUpdate, form, booking, nil)
}

func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	r = r.WithContext(ctx)
	userID, username := shared.CurrentUser(ctx)
	bookingID := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.GetBookingForOwner(ctx, bookingID, userID)
	if err != nil {
		scope.TraceError(err)
		response.WithPageError(w, r, handler.renderer, render.View{Username: username}, err)

		return
	}

	req := dto.UpdateBookingRequest{}

	err = validator.ValidateForm(r, &req)
	if err == nil {
		if _, err = handler.service.UpdateBooking(ctx, bookingID, userID, req); err == nil {
			scope.AddEvent("booking updated")
			response.Redirect(w, r, constant.PathBookings)

			return
		}
	}

	scope.TraceError(err)
	handler.renderForm(w, r, http.StatusBadRequest, render.PageBookingUpdate, req, booking, err)
}

func (handler *Handler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteForm")
	defer scope.End()

	userID, username := shared.CurrentUser(ctx)
	view := render.View{Title: "Cancel booking", Username: username}

	booking, err := handler.service.GetBookingForOwner(ctx, chi.URLParam(r, constant.RequestParamID), userID)
	if err != nil {
		scope.TraceError(err)
		response.WithPageError(w, r, handler.renderer, view, err)

		return
	}

	view.Data = booking
	handler.renderer.HTML(w, http.StatusOK, render.PageBookingDelete, view)
}

func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	userID, username := shared.CurrentUser(ctx)

	if err := handler.service.DeleteBooking(ctx, chi.URLParam(r, constant.RequestParamID), userID); err != nil {
		scope.TraceError(err)
		response.WithPageError(w, r, handler.renderer, render.View{Username: username}, err)

		return
	}

	scope.AddEvent("booking deleted")
	response.Redirect(w, r, constant.PathBookings)
}

// renderForm shows a booking form. A client failure re-renders it with the
// submitted values and field messages; any other error goes to the error pages.
func (handler *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, page string, form any, booking dto.BookingResponse, formErr error) {
	ctx := r.Context()
	_, username := shared.CurrentUser(ctx)

	view := render.View{Title: "Book a table", Username: username, Form: form}
	if page == render.PageBookingUpdate {
		view.Title = "Change booking"
	}

	if formErr != nil && !failure.IsCode(formErr, http.StatusBadRequest) {
		response.WithPageError(w, r, handler.renderer, view, formErr)

		return
	}

	tables, err := handler.tableService.ListTables(ctx)
	if err != nil {
		response.WithPageError(w, r, handler.renderer, view, err)

		return
	}

	view.Data = formData{Tables: tables, Slots: timeslot.All(), Booking: booking}

	if formErr != nil {
		view.Errors = failure.GetFields(formErr)
		if len(view.Errors) == 0 {
			view.Message = formErr.Error()
		}
	}

	handler.renderer.HTML(w, status, page, view)
}
