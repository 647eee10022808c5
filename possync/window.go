package possync

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/possync_backend/models"
)

// TimeOfDay is a wall-clock time without a date, e.g. a restaurant's
// opening time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (seconds, when present, are ignored).
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", value)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) At(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Window is a half-open-ish reporting interval [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

// YesterdayWindow derives the business-day window for the day before today.
// The window opens at yesterday's opening time; it closes at yesterday's
// closing time when the closing time is strictly after the opening time, and
// at today's closing time otherwise (the business day crosses midnight).
func YesterdayWindow(open TimeOfDay, close TimeOfDay, today time.Time) Window {
	yesterday := today.AddDate(0, 0, -1)
	start := open.At(yesterday)
	var end time.Time
	if close.Hour > open.Hour || (close.Hour == open.Hour && close.Minute > open.Minute) {
		end = close.At(yesterday)
	} else {
		end = close.At(today)
	}
	return Window{Start: start, End: end}
}

// RestaurantYesterdayWindow builds the reporting window from the restaurant's
// configured opening and closing times.
func RestaurantYesterdayWindow(restaurant *models.Restaurant, today time.Time) (Window, error) {
	if restaurant.OpeningTime == nil || restaurant.ClosingTime == nil {
		return Window{}, ErrWindowNotConfigured
	}
	open, err := ParseTimeOfDay(*restaurant.OpeningTime)
	if err != nil {
		return Window{}, ErrWindowNotConfigured
	}
	close, err := ParseTimeOfDay(*restaurant.ClosingTime)
	if err != nil {
		return Window{}, ErrWindowNotConfigured
	}
	return YesterdayWindow(open, close, today), nil
}
