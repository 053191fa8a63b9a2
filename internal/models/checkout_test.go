package models

import "testing"

func str(s string) *string { return &s }

func TestCheckoutFormValidateDetails(t *testing.T) {
	tests := []struct {
		name    string
		form    CheckoutForm
		wantErr bool
	}{
		{
			name:    "pickup with contact fields",
			form:    CheckoutForm{Name: "John Doe", Email: "john@example.com", Phone: "555-0100", DeliveryMethod: Pickup},
			wantErr: false,
		},
		{
			name:    "missing name",
			form:    CheckoutForm{Email: "john@example.com", Phone: "555-0100", DeliveryMethod: Pickup},
			wantErr: true,
		},
		{
			name:    "whitespace only phone",
			form:    CheckoutForm{Name: "John Doe", Email: "john@example.com", Phone: "   ", DeliveryMethod: Pickup},
			wantErr: true,
		},
		{
			name:    "delivery without address",
			form:    CheckoutForm{Name: "John Doe", Email: "john@example.com", Phone: "555-0100", DeliveryMethod: Delivery},
			wantErr: true,
		},
		{
			name:    "delivery with address",
			form:    CheckoutForm{Name: "John Doe", Email: "john@example.com", Phone: "555-0100", Address: "123 Main St", DeliveryMethod: Delivery},
			wantErr: false,
		},
		{
			name:    "pickup ignores empty address",
			form:    CheckoutForm{Name: "John Doe", Email: "john@example.com", Phone: "555-0100", DeliveryMethod: Pickup},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.ValidateDetails()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDetails() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckoutFormApply(t *testing.T) {
	original := CheckoutForm{Name: "John Doe", DeliveryMethod: Pickup}

	updated := original.Apply(CheckoutFormUpdate{
		Email:          str("john@example.com"),
		DeliveryMethod: str("delivery"),
	})

	if updated.Name != "John Doe" {
		t.Errorf("untouched field changed: name = %q", updated.Name)
	}
	if updated.Email != "john@example.com" || updated.DeliveryMethod != Delivery {
		t.Errorf("update not applied: %+v", updated)
	}
	if original.Email != "" || original.DeliveryMethod != Pickup {
		t.Errorf("Apply mutated the original form: %+v", original)
	}
}

func TestValidatePaymentMethod(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentPaystack, PaymentFlutterwave, PaymentCard} {
		if err := ValidatePaymentMethod(m); err != nil {
			t.Errorf("ValidatePaymentMethod(%q) = %v", m, err)
		}
	}
	if err := ValidatePaymentMethod("cash"); err == nil {
		t.Error("unknown payment method should be rejected")
	}
}

func TestReservationFormValidateDateTime(t *testing.T) {
	valid := ReservationForm{Date: "2024-03-15", Time: "6:00 PM", Guests: 4}
	if err := valid.ValidateDateTime(); err != nil {
		t.Errorf("ValidateDateTime() = %v", err)
	}

	invalidSlot := ReservationForm{Date: "2024-03-15", Time: "9:45 PM", Guests: 4}
	if err := invalidSlot.ValidateDateTime(); err == nil {
		t.Error("time outside the published slots should be rejected")
	}

	tooMany := ReservationForm{Date: "2024-03-15", Time: "6:00 PM", Guests: MaxPartySize + 1}
	if err := tooMany.ValidateDateTime(); err == nil {
		t.Error("party above the maximum should be rejected")
	}
}
