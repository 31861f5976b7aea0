package pricing

import (
	"math"
	"strings"

	"github.com/VenueBookHQ/VenueBook/app/models"
)

// TaxPercent is the GST rate applied on the pre-tax subtotal.
const TaxPercent = 18

// Breakdown is the full price decomposition of a booking. All amounts are
// integer currency units; the invariant TotalAmount == BasePrice + SlotPrice
// + AddonsTotal + Tax holds unless the caller overrides the total.
type Breakdown struct {
	BasePrice   int64 `json:"base_price"`
	SlotPrice   int64 `json:"slot_price"`
	AddonsTotal int64 `json:"addons_total"`
	Tax         int64 `json:"tax"`
	TotalAmount int64 `json:"total_amount"`
}

// Overrides carries caller-supplied precomputed components. Zero means unset;
// the presentation layer typically sends the full breakdown and the
// calculator reproduces it, while minimal requests take the fallback paths.
type Overrides struct {
	BasePrice   int64
	AddonsTotal int64
	Tax         int64
	TotalAmount int64
}

// Compute derives the price breakdown for a booking request against a venue
// whose PriceSlots and ServicePricings are loaded. It never produces a
// negative component.
func Compute(venue *models.Venue, eventType, startTime, endTime string, addons []models.Addon, ov Overrides) Breakdown {
	base := basePrice(venue, eventType, ov)
	slot := slotPrice(venue, startTime, endTime)
	addonsTotal := addonsTotalOf(addons, ov)

	subtotal := base + slot + addonsTotal
	tax := ov.Tax
	if tax <= 0 {
		tax = roundPercent(subtotal, TaxPercent)
	}

	total := ov.TotalAmount
	if total <= 0 {
		total = subtotal + tax
	}

	return Breakdown{
		BasePrice:   clamp(base),
		SlotPrice:   clamp(slot),
		AddonsTotal: clamp(addonsTotal),
		Tax:         clamp(tax),
		TotalAmount: clamp(total),
	}
}

func basePrice(venue *models.Venue, eventType string, ov Overrides) int64 {
	if ov.BasePrice > 0 {
		return ov.BasePrice
	}
	for _, sp := range venue.ServicePricings {
		if strings.EqualFold(sp.EventType, eventType) {
			return sp.Price
		}
	}
	if venue.BasePrice > 0 {
		return venue.BasePrice
	}
	// Last resort: back-derive the pre-tax base from a caller-supplied total.
	if ov.TotalAmount > 0 {
		return int64(math.Round(float64(ov.TotalAmount) / (1 + float64(TaxPercent)/100)))
	}
	return 0
}

// slotPrice returns the first matching time-slot price. Times are zero-padded
// "HH:MM" strings, so the containment check is a plain string comparison.
func slotPrice(venue *models.Venue, startTime, endTime string) int64 {
	if startTime == "" || endTime == "" {
		return 0
	}
	for _, slot := range venue.PriceSlots {
		if startTime >= slot.StartTime && endTime <= slot.EndTime {
			return slot.Price
		}
	}
	return 0
}

func addonsTotalOf(addons []models.Addon, ov Overrides) int64 {
	if ov.AddonsTotal > 0 {
		return ov.AddonsTotal
	}
	var sum int64
	for i := range addons {
		sum += addons[i].Total()
	}
	return sum
}

// roundPercent computes pct% of amount, rounded half-up to the nearest
// integer currency unit.
func roundPercent(amount int64, pct int) int64 {
	if amount <= 0 {
		return 0
	}
	return (amount*int64(pct) + 50) / 100
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
