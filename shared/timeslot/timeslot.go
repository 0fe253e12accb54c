// Package timeslot lists the hourly reservation slots offered on the booking form.
package timeslot

import (
	"fmt"
	"slices"
)

const (
	FirstHour = 9
	LastHour  = 22
)

var labels = build()

func build() []string {
	out := make([]string, 0, LastHour-FirstHour+1)
	for hour := FirstHour; hour <= LastHour; hour++ {
		out = append(out, Label(hour))
	}

	return out
}

// Label renders a 24h hour as "9:00 AM" / "10:00 PM".
func Label(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}

	h := hour % 12
	if h == 0 {
		h = 12
	}

	return fmt.Sprintf("%d:00 %s", h, suffix)
}

// All returns the slots in chronological order.
func All() []string {
	return slices.Clone(labels)
}

func Valid(label string) bool {
	return slices.Contains(labels, label)
}
