package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Notification message types
const (
	NotificationOrderPlaced          = "order.placed"
	NotificationReservationConfirmed = "reservation.confirmed"
)

// NotificationEnvelope identifies the kind of notification before decoding
// the full payload
type NotificationEnvelope struct {
	Type string `json:"type"`
}

// OrderLine is one line of a placed order as carried in notifications
type OrderLine struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderPlacedMessage is published when a checkout completes
type OrderPlacedMessage struct {
	Type           string      `json:"type"`
	OrderNumber    string      `json:"order_number"`
	CustomerName   string      `json:"customer_name"`
	CustomerEmail  string      `json:"customer_email"`
	CustomerPhone  string      `json:"customer_phone"`
	DeliveryMethod string      `json:"delivery_method"`
	Address        string      `json:"address,omitempty"`
	PaymentMethod  string      `json:"payment_method"`
	Note           string      `json:"note,omitempty"`
	Items          []OrderLine `json:"items"`
	Subtotal       float64     `json:"subtotal"`
	Tax            float64     `json:"tax"`
	DeliveryFee    float64     `json:"delivery_fee"`
	Total          float64     `json:"total"`
	PlacedAt       time.Time   `json:"placed_at"`
}

// ReservationConfirmedMessage is published when a reservation wizard reaches
// its confirmed stage
type ReservationConfirmedMessage struct {
	Type            string    `json:"type"`
	ReservationID   string    `json:"reservation_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Guests          int       `json:"guests"`
	Occasion        string    `json:"occasion,omitempty"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	ConfirmedAt     time.Time `json:"confirmed_at"`
}

// GenerateOrderNumber generates an order number in format ORD_YYYYMMDD_XXXXXXXX
func GenerateOrderNumber(date time.Time) string {
	return fmt.Sprintf("ORD_%s_%s", date.UTC().Format("20060102"), shortID())
}

// GenerateReservationNumber generates a reservation number in format RES_YYYYMMDD_XXXXXXXX
func GenerateReservationNumber(date time.Time) string {
	return fmt.Sprintf("RES_%s_%s", date.UTC().Format("20060102"), shortID())
}

func shortID() string {
	id := uuid.NewString()
	return id[:8]
}
