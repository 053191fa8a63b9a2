package models

import (
	"fmt"
	"strings"
)

// AvailableTimes lists the bookable time slots, in service order
var AvailableTimes = []string{
	"11:30 AM",
	"12:00 PM",
	"12:30 PM",
	"1:00 PM",
	"1:30 PM",
	"5:30 PM",
	"6:00 PM",
	"6:30 PM",
	"7:00 PM",
	"7:30 PM",
	"8:00 PM",
	"8:30 PM",
}

// Occasions lists the selectable reservation occasions
var Occasions = []string{
	"None",
	"Birthday",
	"Anniversary",
	"Business",
	"Date Night",
	"Other",
}

// MaxPartySize is the largest party bookable online; larger groups go
// through special requests
const MaxPartySize = 9

// ReservationForm holds the details entered across the reservation wizard
type ReservationForm struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	Guests          int    `json:"guests"`
	Occasion        string `json:"occasion"`
	SpecialRequests string `json:"special_requests"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
}

// ReservationFormUpdate carries partial form edits; nil fields are left unchanged
type ReservationFormUpdate struct {
	Date            *string `json:"date,omitempty"`
	Time            *string `json:"time,omitempty"`
	Guests          *int    `json:"guests,omitempty"`
	Occasion        *string `json:"occasion,omitempty"`
	SpecialRequests *string `json:"special_requests,omitempty"`
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
}

// Apply returns a copy of the form with the update's fields replaced
func (f ReservationForm) Apply(u ReservationFormUpdate) ReservationForm {
	if u.Date != nil {
		f.Date = *u.Date
	}
	if u.Time != nil {
		f.Time = *u.Time
	}
	if u.Guests != nil {
		f.Guests = *u.Guests
	}
	if u.Occasion != nil {
		f.Occasion = *u.Occasion
	}
	if u.SpecialRequests != nil {
		f.SpecialRequests = *u.SpecialRequests
	}
	if u.Name != nil {
		f.Name = *u.Name
	}
	if u.Email != nil {
		f.Email = *u.Email
	}
	if u.Phone != nil {
		f.Phone = *u.Phone
	}
	return f
}

// ValidateDateTime gates the select_datetime -> contact_info transition
func (f ReservationForm) ValidateDateTime() error {
	var missing []string
	if strings.TrimSpace(f.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(f.Time) == "" {
		missing = append(missing, "time")
	}
	if f.Guests == 0 {
		missing = append(missing, "guests")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required fields missing: %s", strings.Join(missing, ", "))
	}

	if !validTime(f.Time) {
		return fmt.Errorf("time must be one of the available slots")
	}
	if f.Guests < 1 || f.Guests > MaxPartySize {
		return fmt.Errorf("guests must be between 1 and %d", MaxPartySize)
	}
	return nil
}

// ValidateContact gates the contact_info -> confirmed transition
func (f ReservationForm) ValidateContact() error {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(f.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required fields missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

func validTime(slot string) bool {
	for _, t := range AvailableTimes {
		if t == slot {
			return true
		}
	}
	return false
}
