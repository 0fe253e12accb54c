package render_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"tonyspizza/config"
	authDto "tonyspizza/internal/domains/auth/model/dto"
	bookingDto "tonyspizza/internal/domains/booking/model/dto"
	tableDto "tonyspizza/internal/domains/table/model/dto"
	"tonyspizza/shared/timeslot"
	"tonyspizza/transport/http/render"
)

type bookingForm struct {
	Tables  []tableDto.TableResponse
	Slots   []string
	Booking bookingDto.BookingResponse
}

func TestRenderer_HTML(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "Tony's Pizza"

	renderer := render.New(cfg)
	tables := []tableDto.TableResponse{{ID: "t-1", Number: 1, Capacity: 2}, {ID: "t-2", Number: 2, Capacity: 6}}
	booking := bookingDto.BookingResponse{ID: "b-1", TableID: "t-2", TableNumber: 2, Date: "2026-11-03", Time: "7:00 PM", NumGuests: 4}

	tests := []struct {
		name     string
		page     string
		status   int
		view     render.View
		contains []string
	}{
		{
			name:     "index for a guest",
			page:     render.PageIndex,
			status:   http.StatusOK,
			contains: []string{"Welcome to Tony&#39;s Pizza", "/accounts/login/"},
		},
		{
			name:     "table list",
			page:     render.PageTableList,
			status:   http.StatusOK,
			view:     render.View{Data: tables},
			contains: []string{"<td>1</td><td>2</td>", "<td>2</td><td>6</td>"},
		},
		{
			name:   "booking list",
			page:   render.PageBookingList,
			status: http.StatusOK,
			view: render.View{
				Username: "mario",
				Data:     bookingDto.GetBookingsResponse{Bookings: []bookingDto.BookingResponse{booking}},
			},
			contains: []string{"Log out mario", "/bookings/b-1/update/", "/bookings/b-1/delete/", "2026-11-03"},
		},
		{
			name:   "create form re-rendered with errors",
			page:   render.PageBookingCreate,
			status: http.StatusBadRequest,
			view: render.View{
				Form:   bookingDto.CreateBookingRequest{TableID: "t-2", Time: "8:00 PM"},
				Errors: map[string]string{"num_guests": "num_guests must be greater than or equal to 1"},
				Data:   bookingForm{Tables: tables, Slots: timeslot.All()},
			},
			contains: []string{`<option value="t-2" selected>`, `<option value="8:00 PM" selected>`, "greater than or equal to 1"},
		},
		{
			name:   "update form prefilled",
			page:   render.PageBookingUpdate,
			status: http.StatusOK,
			view: render.View{
				Form: bookingDto.UpdateBookingRequest{TableID: "t-2", Date: "2026-11-03", Time: "7:00 PM", NumGuests: 4},
				Data: bookingForm{Tables: tables, Slots: timeslot.All(), Booking: booking},
			},
			contains: []string{`action="/bookings/b-1/update/"`, `value="2026-11-03"`, `value="4"`},
		},
		{
			name:     "delete confirmation",
			page:     render.PageBookingDelete,
			status:   http.StatusOK,
			view:     render.View{Data: booking},
			contains: []string{`action="/bookings/b-1/delete/"`, "table 2"},
		},
		{
			name:     "login keeps next",
			page:     render.PageLogin,
			status:   http.StatusOK,
			view:     render.View{Form: authDto.Credentials{}, Next: "/bookings/create/"},
			contains: []string{`name="next" value="/bookings/create/"`},
		},
		{
			name:     "signup",
			page:     render.PageSignup,
			status:   http.StatusOK,
			view:     render.View{Form: authDto.SignupRequest{Username: "peach"}},
			contains: []string{`value="peach"`},
		},
		{
			name:     "not found",
			page:     render.PageNotFound,
			status:   http.StatusNotFound,
			contains: []string{"Page not found"},
		},
		{
			name:     "error",
			page:     render.PageError,
			status:   http.StatusInternalServerError,
			contains: []string{"Something went wrong"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			renderer.HTML(rec, tt.status, tt.page, tt.view)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

			for _, fragment := range tt.contains {
				assert.Contains(t, rec.Body.String(), fragment)
			}
		})
	}
}

func TestRenderer_EscapesUserInput(t *testing.T) {
	renderer := render.New(&config.Config{})
	rec := httptest.NewRecorder()

	renderer.HTML(rec, http.StatusOK, render.PageSignup, render.View{
		Form: authDto.SignupRequest{Username: `<script>alert(1)</script>`},
	})

	assert.NotContains(t, rec.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}

func TestRenderer_UnknownPage(t *testing.T) {
	renderer := render.New(&config.Config{})
	rec := httptest.NewRecorder()

	renderer.HTML(rec, http.StatusOK, "missing", render.View{})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
