package model

import (
	"fmt"
	"time"

	tableModel "tonyspizza/internal/domains/table/model"
	"tonyspizza/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldTableID     = "table_id"
	FieldBookingDate = "booking_date"
	FieldBookingTime = "booking_time"
	FieldNumGuests   = "num_guests"
	FieldTableNumber = "table_number"
)

// Booking is a reservation of one table for one slot. UserID is the owner and
// is written once, at creation.
type Booking struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	TableID     string    `db:"table_id"`
	Date        time.Time `db:"booking_date"`
	Time        string    `db:"booking_time"`
	NumGuests   int       `db:"num_guests"`
	TableNumber int       `column:"number"         db:"table_number" table:"dining_tables"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return fmt.Sprintf("JOIN %[1]s ON %[1]s.%[2]s = %[3]s.%[4]s",
		tableModel.TableName, tableModel.FieldID, TableName, FieldTableID)
}
