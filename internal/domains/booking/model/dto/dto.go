package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tonyspizza/internal/domains/booking/model"
	"tonyspizza/shared"
	gDto "tonyspizza/shared/dto"
	gModel "tonyspizza/shared/model"
	"tonyspizza/shared/timezone"
)

// CreateBookingRequest is the booking form. The owner is never read from it.
type CreateBookingRequest struct {
	TableID   string `form:"table"      validate:"required,uuid"`
	Date      string `form:"date"       validate:"required,datetime=2006-01-02"`
	Time      string `form:"time"       validate:"required,timeslot"`
	NumGuests int    `form:"num_guests" validate:"gte=1,lte=50"`
}

func (c *CreateBookingRequest) Normalize() {
	c.TableID = strings.TrimSpace(c.TableID)
	c.Date = strings.TrimSpace(c.Date)
	c.Time = strings.TrimSpace(c.Time)
}

func (c *CreateBookingRequest) ToModel(ownerID string) (model.Booking, error) {
	date, err := timezone.ParseDate(c.Date)
	if err != nil {
		return model.Booking{}, fmt.Errorf("invalid booking date: %w", err)
	}

	now := timezone.Now()

	return model.Booking{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		TableID:   c.TableID,
		Date:      date,
		Time:      c.Time,
		NumGuests: c.NumGuests,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  ownerID,
			ModifiedBy: ownerID,
		},
	}, nil
}

// UpdateBookingRequest replaces every editable field of a booking. Owner holds
// the submitted owner, if any, so a mismatch can be rejected.
type UpdateBookingRequest struct {
	Owner     string `form:"user"       validate:"omitempty"`
	TableID   string `form:"table"      validate:"required,uuid"`
	Date      string `form:"date"       validate:"required,datetime=2006-01-02"`
	Time      string `form:"time"       validate:"required,timeslot"`
	NumGuests int    `form:"num_guests" validate:"gte=1,lte=50"`
}

func (u *UpdateBookingRequest) Normalize() {
	u.Owner = strings.TrimSpace(u.Owner)
	u.TableID = strings.TrimSpace(u.TableID)
	u.Date = strings.TrimSpace(u.Date)
	u.Time = strings.TrimSpace(u.Time)
}

// FromResponse prefills the update form from a stored booking.
func (u *UpdateBookingRequest) FromResponse(res BookingResponse) {
	u.TableID = res.TableID
	u.Date = res.Date
	u.Time = res.Time
	u.NumGuests = res.NumGuests
}

// BookingChanges are the columns an update writes. Creation metadata is not among them.
type BookingChanges struct {
	TableID   string    `db:"table_id"`
	Date      time.Time `db:"booking_date"`
	Time      string    `db:"booking_time"`
	NumGuests int       `db:"num_guests"`
}

func (u *UpdateBookingRequest) ToChanges() (BookingChanges, error) {
	date, err := timezone.ParseDate(u.Date)
	if err != nil {
		return BookingChanges{}, fmt.Errorf("invalid booking date: %w", err)
	}

	return BookingChanges{
		TableID:   u.TableID,
		Date:      date,
		Time:      u.Time,
		NumGuests: u.NumGuests,
	}, nil
}

type BookingResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	TableID     string `json:"table_id"`
	TableNumber int    `json:"table_number"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	NumGuests   int    `json:"num_guests"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.TableID = model.TableID
	r.TableNumber = model.TableNumber
	r.Date = timezone.FormatDate(model.Date)
	r.Time = model.Time
	r.NumGuests = model.NumGuests
	r.Metadata.FromModel(model.Metadata)
}

// Title names the booking by its date and slot.
func (r BookingResponse) Title() string {
	return r.Date + " " + r.Time
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
