package models

import (
	"fmt"
	"strings"
)

// DeliveryMethod represents how the customer receives the order
type DeliveryMethod string

const (
	Pickup   DeliveryMethod = "pickup"
	Delivery DeliveryMethod = "delivery"
)

// PaymentMethod represents the selected payment provider
type PaymentMethod string

const (
	PaymentPaystack    PaymentMethod = "paystack"
	PaymentFlutterwave PaymentMethod = "flutterwave"
	PaymentCard        PaymentMethod = "card"
)

// CheckoutForm holds the customer details entered during checkout.
// Forms are value types; field changes go through Apply and produce a copy.
type CheckoutForm struct {
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	Note           string         `json:"note"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	PaymentMethod  PaymentMethod  `json:"payment_method"`
}

// CheckoutFormUpdate carries partial form edits; nil fields are left unchanged
type CheckoutFormUpdate struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Address        *string `json:"address,omitempty"`
	Note           *string `json:"note,omitempty"`
	DeliveryMethod *string `json:"delivery_method,omitempty"`
	PaymentMethod  *string `json:"payment_method,omitempty"`
}

// Apply returns a copy of the form with the update's fields replaced
func (f CheckoutForm) Apply(u CheckoutFormUpdate) CheckoutForm {
	if u.Name != nil {
		f.Name = *u.Name
	}
	if u.Email != nil {
		f.Email = *u.Email
	}
	if u.Phone != nil {
		f.Phone = *u.Phone
	}
	if u.Address != nil {
		f.Address = *u.Address
	}
	if u.Note != nil {
		f.Note = *u.Note
	}
	if u.DeliveryMethod != nil {
		f.DeliveryMethod = DeliveryMethod(*u.DeliveryMethod)
	}
	if u.PaymentMethod != nil {
		f.PaymentMethod = PaymentMethod(*u.PaymentMethod)
	}
	return f
}

// Validate checks enum fields that have a value; presence is enforced per
// wizard stage, not here
func (u *CheckoutFormUpdate) Validate() error {
	if u.DeliveryMethod != nil {
		if err := ValidateDeliveryMethod(DeliveryMethod(*u.DeliveryMethod)); err != nil {
			return err
		}
	}
	if u.PaymentMethod != nil && *u.PaymentMethod != "" {
		if err := ValidatePaymentMethod(PaymentMethod(*u.PaymentMethod)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDeliveryMethod checks the delivery method enum
func ValidateDeliveryMethod(m DeliveryMethod) error {
	switch m {
	case Pickup, Delivery:
		return nil
	default:
		return fmt.Errorf("delivery_method must be one of: pickup, delivery")
	}
}

// ValidatePaymentMethod checks the payment method enum
func ValidatePaymentMethod(m PaymentMethod) error {
	switch m {
	case PaymentPaystack, PaymentFlutterwave, PaymentCard:
		return nil
	default:
		return fmt.Errorf("payment_method must be one of: paystack, flutterwave, card")
	}
}

// ValidateDetails gates the details -> payment transition: name, email and
// phone must be present, and address too when the order is for delivery
func (f CheckoutForm) ValidateDetails() error {
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
	if f.DeliveryMethod == Delivery && strings.TrimSpace(f.Address) == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required fields missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidatePayment gates the payment -> submitted transition
func (f CheckoutForm) ValidatePayment() error {
	if f.PaymentMethod == "" {
		return fmt.Errorf("payment_method is required")
	}
	return ValidatePaymentMethod(f.PaymentMethod)
}
