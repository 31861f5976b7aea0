package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VenueBookHQ/VenueBook/app/models"
)

func testVenue() *models.Venue {
	return &models.Venue{
		ID:        1,
		Name:      "Grand Palace",
		BasePrice: 150000,
		PriceSlots: []models.PriceSlot{
			{StartTime: "09:00", EndTime: "14:00", Price: 50000},
			{StartTime: "14:00", EndTime: "23:00", Price: 80000},
		},
		ServicePricings: []models.ServicePricing{
			{EventType: "wedding", Price: 200000},
			{EventType: "conference", Price: 120000},
		},
	}
}

func TestComputeFullBreakdown(t *testing.T) {
	addons := []models.Addon{
		{Name: "Projector", UnitPrice: 5000, Quantity: 2},
	}

	got := Compute(testVenue(), "wedding", "10:00", "13:00", addons, Overrides{})

	assert.Equal(t, int64(200000), got.BasePrice)
	assert.Equal(t, int64(50000), got.SlotPrice)
	assert.Equal(t, int64(10000), got.AddonsTotal)
	assert.Equal(t, int64(46800), got.Tax)
	assert.Equal(t, int64(306800), got.TotalAmount)
	assert.Equal(t, got.BasePrice+got.SlotPrice+got.AddonsTotal+got.Tax, got.TotalAmount)
}

func TestComputeEventTypeMatchIsCaseInsensitive(t *testing.T) {
	got := Compute(testVenue(), "WEDDING", "", "", nil, Overrides{})
	assert.Equal(t, int64(200000), got.BasePrice)
}

func TestComputeFallsBackToVenueBasePrice(t *testing.T) {
	got := Compute(testVenue(), "birthday", "", "", nil, Overrides{})
	assert.Equal(t, int64(150000), got.BasePrice)
}

func TestComputeSlotSelection(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantPrice int64
	}{
		{name: "inside morning slot", start: "09:00", end: "14:00", wantPrice: 50000},
		{name: "inside evening slot", start: "18:00", end: "22:00", wantPrice: 80000},
		{name: "spans both slots", start: "12:00", end: "18:00", wantPrice: 0},
		{name: "no times given", start: "", end: "", wantPrice: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(testVenue(), "wedding", tt.start, tt.end, nil, Overrides{})
			assert.Equal(t, tt.wantPrice, got.SlotPrice)
		})
	}
}

func TestComputeAddonQuantityClampedToOne(t *testing.T) {
	addons := []models.Addon{
		{Name: "Stage", UnitPrice: 7000, Quantity: 0},
	}
	got := Compute(testVenue(), "wedding", "", "", addons, Overrides{})
	assert.Equal(t, int64(7000), got.AddonsTotal)
}

func TestComputeOverridesWin(t *testing.T) {
	got := Compute(testVenue(), "wedding", "10:00", "13:00", nil, Overrides{
		BasePrice:   100000,
		AddonsTotal: 20000,
		Tax:         30000,
		TotalAmount: 200000,
	})

	assert.Equal(t, int64(100000), got.BasePrice)
	assert.Equal(t, int64(20000), got.AddonsTotal)
	assert.Equal(t, int64(30000), got.Tax)
	assert.Equal(t, int64(200000), got.TotalAmount)
}

func TestComputeBackDerivesBaseFromTotal(t *testing.T) {
	venue := &models.Venue{ID: 2, Name: "Bare Hall"}

	got := Compute(venue, "wedding", "", "", nil, Overrides{TotalAmount: 118000})

	// 118000 / 1.18 = 100000 pre-tax.
	assert.Equal(t, int64(100000), got.BasePrice)
	assert.Equal(t, int64(118000), got.TotalAmount)
}

func TestRoundPercentHalfUp(t *testing.T) {
	tests := []struct {
		amount int64
		want   int64
	}{
		{amount: 100, want: 18},
		{amount: 99, want: 18},   // 17.82 rounds up
		{amount: 101, want: 18},  // 18.18 rounds down
		{amount: 3, want: 1},     // 0.54 rounds up
		{amount: 2, want: 0},     // 0.36 rounds down
		{amount: 0, want: 0},
		{amount: -50, want: 0},
	}

	for _, tt := range tests {
		if got := roundPercent(tt.amount, TaxPercent); got != tt.want {
			t.Fatalf("roundPercent(%d, 18) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestComputeNeverNegative(t *testing.T) {
	got := Compute(&models.Venue{}, "", "", "", nil, Overrides{})
	assert.GreaterOrEqual(t, got.BasePrice, int64(0))
	assert.GreaterOrEqual(t, got.Tax, int64(0))
	assert.GreaterOrEqual(t, got.TotalAmount, int64(0))
}
