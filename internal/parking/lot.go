package parking

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/anilkruz/ParkingLot-repo/internal/billing"
)

// Sentinel errors for allocation failures.
var (
	ErrNoCapacity        = errors.New("parking: no free slot available")
	ErrInvalidTicket     = errors.New("parking: invalid or already-closed ticket")
	ErrSlotInconsistency = errors.New("parking: slot referenced by ticket not found")
)

// Lot is the allocation engine for one facility. One mutex covers the
// floors and the open tickets; settlement state lives in the Ledger
// behind its own lock, and the two locks are never held together.
type Lot struct {
	mu     sync.Mutex
	floors []*Floor
	active map[TicketID]*Ticket

	issuer *ticketIssuer
	ledger *billing.Ledger

	now func() time.Time
}

func NewLot() *Lot {
	return &Lot{
		active: make(map[TicketID]*Ticket),
		issuer: newTicketIssuer(),
		ledger: billing.NewLedger(),
		now:    time.Now,
	}
}

// Configure replaces the floor plan and resets tickets and bills.
// Open tickets, if any, are discarded.
func (l *Lot) Configure(floors []*Floor) error {
	if len(floors) == 0 {
		return errors.New("parking: configuration has zero floors")
	}
	for _, floor := range floors {
		if len(floor.Slots) == 0 {
			return fmt.Errorf("parking: floor %d has no slots", floor.Number)
		}
	}

	l.mu.Lock()
	discarded := len(l.active)
	l.floors = floors
	l.active = make(map[TicketID]*Ticket)
	l.issuer.reset()
	l.mu.Unlock()

	// The ledger locks itself; reset it outside the lot lock.
	l.ledger.Reset()

	if discarded > 0 {
		slog.Warn("lot reconfigured with open tickets", "discarded", discarded)
	}
	return nil
}

// Enter allocates the first free slot matching the vehicle's category
// and opens a ticket for it. On ErrNoCapacity nothing is recorded.
func (l *Lot) Enter(entryGate string, v Vehicle) (TicketID, error) {
	need, err := SlotCategoryFor(v.Category)
	if err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var slot *Slot
	for _, floor := range l.floors {
		if slot = floor.findFree(need); slot != nil {
			break
		}
	}
	if slot == nil {
		return 0, ErrNoCapacity
	}

	slot.Occupied = true
	ticket := l.issuer.open(entryGate, slot, v, l.now())
	l.active[ticket.ID] = &ticket

	return ticket.ID, nil
}

// Exit closes the ticket, frees its slot and raises a Pending bill
// for the stay. With lostTicket the flat penalty is added on top of
// the computed fee.
func (l *Lot) Exit(id TicketID, exitGate string, lostTicket bool) (billing.Bill, error) {
	l.mu.Lock()

	ticket, ok := l.active[id]
	if !ok {
		l.mu.Unlock()
		return billing.Bill{}, ErrInvalidTicket
	}
	delete(l.active, id)

	slot := l.findSlot(ticket.SlotID)
	if slot == nil {
		l.mu.Unlock()
		return billing.Bill{}, fmt.Errorf("%w: %s", ErrSlotInconsistency, ticket.SlotID)
	}
	slot.Occupied = false

	minutes := int64(l.now().Sub(ticket.EnteredAt) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	l.mu.Unlock()

	// The ticket is out of the active table now, so pricing and the
	// ledger call need no lot lock.
	fee := ComputeFee(ticket.SlotCategory, minutes)
	if lostTicket {
		fee.Amount += LostTicketPenalty
	}

	bill := l.ledger.CreateBill(billing.TicketDetails{
		TicketID:   uint64(ticket.ID),
		VehicleReg: ticket.VehicleRegistration,
		SlotID:     ticket.SlotID,
		EntryGate:  ticket.EntryGate,
		EnteredAt:  ticket.EnteredAt,
	}, exitGate, billing.Fee{
		ParkedMinutes: fee.ParkedMinutes,
		BilledHours:   fee.BilledHours,
		Amount:        fee.Amount,
	})

	return bill, nil
}

// Pay settles a bill. Settlement never takes the lot lock.
func (l *Lot) Pay(req billing.PaymentRequest) (billing.Receipt, error) {
	return l.ledger.Pay(req)
}

// Bill returns a snapshot of a raised bill.
func (l *Lot) Bill(id billing.BillID) (billing.Bill, error) {
	return l.ledger.Get(id)
}

// CancelBill voids an unsettled bill.
func (l *Lot) CancelBill(id billing.BillID) error {
	return l.ledger.Cancel(id)
}

// Occupancy reports free, used and total slot counts as one
// consistent snapshot.
func (l *Lot) Occupancy() (free, used, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, floor := range l.floors {
		for _, slot := range floor.Slots {
			total++
			if slot.Occupied {
				used++
			} else {
				free++
			}
		}
	}
	return free, used, total
}

// ActiveCount reports how many tickets are open.
func (l *Lot) ActiveCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.active)
}

// ShiftEntryTime moves a recorded entry back by minutes, simulating a
// longer stay. The demo shell and tests use it; it is not part of the
// gate flow.
func (l *Lot) ShiftEntryTime(id TicketID, minutes int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ticket, ok := l.active[id]
	if !ok {
		return ErrInvalidTicket
	}
	ticket.EnteredAt = ticket.EnteredAt.Add(-time.Duration(minutes) * time.Minute)
	return nil
}

// findSlot is a linear scan; floor plans are small and the scan runs
// under the lot lock the caller already holds.
func (l *Lot) findSlot(id string) *Slot {
	for _, floor := range l.floors {
		for _, slot := range floor.Slots {
			if slot.ID == id {
				return slot
			}
		}
	}
	return nil
}
