package models

import "testing"

func TestOrderTypeFromCode(t *testing.T) {
	cases := []struct {
		code     int
		expected OrderType
		ok       bool
	}{
		{1, OrderTypeDining, true},
		{2, OrderTypeTakeaway, true},
		{3, OrderTypeDriveThrough, true},
		{4, OrderTypeDelivery, true},
		{0, "", false},
		{5, "", false},
		{-1, "", false},
	}
	for _, tc := range cases {
		got, ok := OrderTypeFromCode(tc.code)
		if ok != tc.ok {
			t.Fatalf("OrderTypeFromCode(%d) ok=%v, expected %v", tc.code, ok, tc.ok)
		}
		if got != tc.expected {
			t.Fatalf("OrderTypeFromCode(%d) expected %q, got %q", tc.code, tc.expected, got)
		}
	}
}

func TestIsValidUserRole(t *testing.T) {
	for _, role := range []string{"ADMIN", "OWNER", "MANAGER"} {
		if !IsValidUserRole(role) {
			t.Fatalf("expected %s to be valid", role)
		}
	}
	for _, role := range []string{"", "admin", "ROOT"} {
		if IsValidUserRole(role) {
			t.Fatalf("expected %s to be invalid", role)
		}
	}
}
