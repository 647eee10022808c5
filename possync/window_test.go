package possync

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"10:00", 10, 0, true},
		{"23:59", 23, 59, true},
		{"03:30:00", 3, 30, true},
		{" 09:15 ", 9, 15, true},
		{"24:00", 0, 0, false},
		{"10:60", 0, 0, false},
		{"10", 0, 0, false},
		{"", 0, 0, false},
		{"ten:00", 0, 0, false},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.ok != (err == nil) {
			t.Fatalf("ParseTimeOfDay(%q) error: %v", tc.in, err)
		}
		if tc.ok && (got.Hour != tc.hour || got.Minute != tc.minute) {
			t.Fatalf("ParseTimeOfDay(%q) expected %02d:%02d, got %s", tc.in, tc.hour, tc.minute, got)
		}
	}
}

func TestYesterdayWindow_SameDayClose(t *testing.T) {
	today := time.Date(2024, 3, 15, 8, 30, 0, 0, time.Local)
	window := YesterdayWindow(TimeOfDay{Hour: 10}, TimeOfDay{Hour: 23}, today)

	wantStart := time.Date(2024, 3, 14, 10, 0, 0, 0, time.Local)
	wantEnd := time.Date(2024, 3, 14, 23, 0, 0, 0, time.Local)
	if !window.Start.Equal(wantStart) {
		t.Fatalf("expected start %v, got %v", wantStart, window.Start)
	}
	if !window.End.Equal(wantEnd) {
		t.Fatalf("expected end %v, got %v", wantEnd, window.End)
	}
}

func TestYesterdayWindow_CrossesMidnight(t *testing.T) {
	today := time.Date(2024, 3, 15, 8, 30, 0, 0, time.Local)
	window := YesterdayWindow(TimeOfDay{Hour: 10}, TimeOfDay{Hour: 3}, today)

	wantStart := time.Date(2024, 3, 14, 10, 0, 0, 0, time.Local)
	wantEnd := time.Date(2024, 3, 15, 3, 0, 0, 0, time.Local)
	if !window.Start.Equal(wantStart) {
		t.Fatalf("expected start %v, got %v", wantStart, window.Start)
	}
	if !window.End.Equal(wantEnd) {
		t.Fatalf("expected end %v, got %v", wantEnd, window.End)
	}
}

func TestYesterdayWindow_CloseEqualsOpen(t *testing.T) {
	// A 24-hour shop: closing equals opening, so the window spans a full day.
	today := time.Date(2024, 3, 15, 8, 30, 0, 0, time.Local)
	window := YesterdayWindow(TimeOfDay{Hour: 10}, TimeOfDay{Hour: 10}, today)

	if !window.End.Equal(window.Start.AddDate(0, 0, 1)) {
		t.Fatalf("expected a 24h window, got %v..%v", window.Start, window.End)
	}
}

func TestRestaurantYesterdayWindow_NotConfigured(t *testing.T) {
	restaurant := activeRestaurant()
	restaurant.ClosingTime = nil

	_, err := RestaurantYesterdayWindow(restaurant, time.Now())
	if err != ErrWindowNotConfigured {
		t.Fatalf("expected ErrWindowNotConfigured, got %v", err)
	}
}

func TestRestaurantYesterdayWindow_BadValue(t *testing.T) {
	restaurant := activeRestaurant()
	bad := "25:99"
	restaurant.OpeningTime = &bad

	_, err := RestaurantYesterdayWindow(restaurant, time.Now())
	if err != ErrWindowNotConfigured {
		t.Fatalf("expected ErrWindowNotConfigured, got %v", err)
	}
}
