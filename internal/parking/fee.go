package parking

// GraceMinutes is the free window after entry. Stays at or under it
// are billed nothing.
const GraceMinutes = 10

// LostTicketPenalty is the flat surcharge added on exit when the
// driver cannot produce the ticket. It is applied after hour rounding
// and is never rounded itself.
const LostTicketPenalty int64 = 200

// FeeBreakdown is the priced result of a stay. Amounts are whole
// currency units.
type FeeBreakdown struct {
	Amount        int64
	BilledHours   int64
	ParkedMinutes int64
}

type feeFunc func(parkedMinutes int64) FeeBreakdown

// feeForCategory keys the tariff by slot category. The set is closed:
// tickets only carry categories that a configured slot allocated.
var feeForCategory = map[SlotCategory]feeFunc{
	SlotTwoWheeler:  flatHourly(10),
	SlotFourWheeler: flatHourly(20),
	SlotHeavy:       flatHourly(50),
}

func flatHourly(rate int64) feeFunc {
	return func(parkedMinutes int64) FeeBreakdown {
		fb := FeeBreakdown{ParkedMinutes: parkedMinutes}
		if parkedMinutes <= GraceMinutes {
			return fb
		}
		fb.BilledHours = ceilHours(parkedMinutes)
		fb.Amount = fb.BilledHours * rate
		return fb
	}
}

// ComputeFee prices a stay of parkedMinutes in a slot of the given
// category. Partial hours past the grace window bill as full hours.
func ComputeFee(category SlotCategory, parkedMinutes int64) FeeBreakdown {
	fee, ok := feeForCategory[category]
	if !ok {
		return FeeBreakdown{ParkedMinutes: parkedMinutes}
	}
	return fee(parkedMinutes)
}

func ceilHours(minutes int64) int64 {
	if minutes == 0 {
		return 0
	}
	return (minutes + 59) / 60
}
