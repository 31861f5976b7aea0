package models

import "testing"

func TestAddonTotal(t *testing.T) {
	tests := []struct {
		name string
		a    Addon
		want int64
	}{
		{name: "normal quantity", a: Addon{UnitPrice: 5000, Quantity: 2}, want: 10000},
		{name: "zero quantity counts as one", a: Addon{UnitPrice: 5000, Quantity: 0}, want: 5000},
		{name: "negative quantity counts as one", a: Addon{UnitPrice: 5000, Quantity: -4}, want: 5000},
	}

	for _, tt := range tests {
		if got := tt.a.Total(); got != tt.want {
			t.Fatalf("%s: Total() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestBookingIsSettled(t *testing.T) {
	if (&Booking{PaymentStatus: PaymentStatusPending}).IsSettled() {
		t.Fatalf("pending booking must not be settled")
	}
	if !(&Booking{PaymentStatus: PaymentStatusPartial}).IsSettled() {
		t.Fatalf("partial booking must count as settled")
	}
	if !(&Booking{PaymentStatus: PaymentStatusPaid}).IsSettled() {
		t.Fatalf("paid booking must count as settled")
	}
}
