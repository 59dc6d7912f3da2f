package models

import (
	"testing"

	"flexvry/internal/domain"
)

func validReservation() Reservation {
	return Reservation{
		Name:          "Jane",
		LastName:      "Doe",
		Email:         "jane@x.com",
		DriverLicense: "DL-1",
		Phone:         "+31 6 1234 5678",
		TrailerNumber: "TRL-9",
		TruckNumber:   "TRK-7",
		References:    []string{"REF-1"},
		Date:          "2024-03-01",
		Time:          "08:30",
	}
}

func TestValidateNewAccepts(t *testing.T) {
	if err := ValidateNew(validReservation()); err != nil {
		t.Fatalf("valid reservation rejected: %v", err)
	}
}

func TestValidateNewRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Reservation)
	}{
		{"empty name", func(r *Reservation) { r.Name = "  " }},
		{"empty last name", func(r *Reservation) { r.LastName = "" }},
		{"bad email", func(r *Reservation) { r.Email = "jane@" }},
		{"empty license", func(r *Reservation) { r.DriverLicense = "" }},
		{"bad phone", func(r *Reservation) { r.Phone = "call me" }},
		{"empty trailer", func(r *Reservation) { r.TrailerNumber = "" }},
		{"empty truck", func(r *Reservation) { r.TruckNumber = "" }},
		{"no references", func(r *Reservation) { r.References = nil }},
		{"blank references", func(r *Reservation) { r.References = []string{" ", ""} }},
		{"bad date", func(r *Reservation) { r.Date = "01-03-2024" }},
		{"empty time", func(r *Reservation) { r.Time = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validReservation()
			tc.mutate(&r)
			err := ValidateNew(r)
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusCollect, StatusIssue} {
		if !IsValidStatus(s) {
			t.Fatalf("%q should be valid", s)
		}
	}
	for _, s := range []string{"", "done", "PENDING"} {
		if IsValidStatus(s) {
			t.Fatalf("%q should be invalid", s)
		}
	}
}

func TestCleanReferences(t *testing.T) {
	got := CleanReferences([]string{" REF-1 ", "", "  ", "REF-2"})
	if len(got) != 2 || got[0] != "REF-1" || got[1] != "REF-2" {
		t.Fatalf("unexpected result: %v", got)
	}
}
