package parking

import (
	"sync/atomic"
	"time"
)

type TicketID uint64

// Ticket is the record handed out at the entry gate. It carries
// everything the exit gate needs to bill the stay, so the vehicle
// itself is never looked up again.
type Ticket struct {
	ID                  TicketID
	EntryGate           string
	EnteredAt           time.Time
	SlotID              string
	VehicleCategory     VehicleCategory
	SlotCategory        SlotCategory
	VehicleRegistration string
}

// ticketIssuer hands out ticket ids from a lock-free counter starting
// at 1. Issuing never contends with the lot lock.
type ticketIssuer struct {
	nextID atomic.Uint64
}

func newTicketIssuer() *ticketIssuer {
	issuer := &ticketIssuer{}
	issuer.nextID.Store(1)
	return issuer
}

func (ti *ticketIssuer) open(gate string, slot *Slot, v Vehicle, enteredAt time.Time) Ticket {
	return Ticket{
		ID:                  TicketID(ti.nextID.Add(1) - 1),
		EntryGate:           gate,
		EnteredAt:           enteredAt,
		SlotID:              slot.ID,
		VehicleCategory:     v.Category,
		SlotCategory:        slot.Category,
		VehicleRegistration: v.Registration,
	}
}

func (ti *ticketIssuer) reset() {
	ti.nextID.Store(1)
}
