package billing

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Sentinel errors for settlement failures.
var (
	ErrBillNotFound    = errors.New("billing: bill not found")
	ErrNotPayable      = errors.New("billing: bill is not payable")
	ErrAlreadyPaid     = errors.New("billing: bill already paid")
	ErrPaymentDeclined = errors.New("billing: payment declined")
)

// ReplayMethod marks a receipt issued for a bill that was already
// settled. No charge is attempted for it.
const ReplayMethod = "ALREADY_PAID"

// Ledger owns every bill the facility has raised. One mutex guards
// the whole table; the built-in processors are pure checks, so no
// critical section blocks on anything external.
type Ledger struct {
	mu     sync.Mutex
	bills  map[BillID]*Bill
	nextID atomic.Uint64

	now func() time.Time
}

func NewLedger() *Ledger {
	l := &Ledger{
		bills: make(map[BillID]*Bill),
		now:   time.Now,
	}
	l.nextID.Store(1)
	return l
}

// CreateBill opens a Pending bill for a closed ticket, stamping the
// exit time. It never fails: the exit gate must always be able to
// raise the bill.
func (l *Ledger) CreateBill(details TicketDetails, exitGate string, fee Fee) Bill {
	bill := &Bill{
		ID:            BillID(l.nextID.Add(1) - 1),
		TicketID:      details.TicketID,
		VehicleReg:    details.VehicleReg,
		SlotID:        details.SlotID,
		EntryGate:     details.EntryGate,
		ExitGate:      exitGate,
		EnteredAt:     details.EnteredAt,
		ExitedAt:      l.now(),
		ParkedMinutes: fee.ParkedMinutes,
		BilledHours:   fee.BilledHours,
		Amount:        fee.Amount,
		Status:        StatusPending,
	}

	l.mu.Lock()
	l.bills[bill.ID] = bill
	l.mu.Unlock()

	return *bill
}

// Get returns a snapshot of a bill.
func (l *Ledger) Get(id BillID) (Bill, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bill, ok := l.bills[id]
	if !ok {
		return Bill{}, ErrBillNotFound
	}
	return *bill, nil
}

// Pay settles a Pending bill through the processor for the requested
// method. Paying an already-Paid bill is idempotent: the caller gets
// a replay receipt and no charge is attempted. A declined charge
// moves the bill to Failed before the error is returned.
func (l *Ledger) Pay(req PaymentRequest) (Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bill, ok := l.bills[req.BillID]
	if !ok {
		return Receipt{}, ErrBillNotFound
	}

	if bill.Status == StatusPaid {
		return Receipt{
			BillID:   bill.ID,
			TicketID: bill.TicketID,
			Amount:   bill.Amount,
			Method:   ReplayMethod,
			PaidAt:   l.now(),
		}, nil
	}
	if bill.Status != StatusPending {
		return Receipt{}, fmt.Errorf("%w: status %s", ErrNotPayable, bill.Status)
	}

	charge, ok := processors[req.Method]
	if !ok {
		return Receipt{}, fmt.Errorf("unknown payment method: %q", req.Method)
	}
	if err := charge(req); err != nil {
		bill.Status = StatusFailed
		return Receipt{}, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	}

	bill.Status = StatusPaid
	return Receipt{
		BillID:   bill.ID,
		TicketID: bill.TicketID,
		Amount:   bill.Amount,
		Method:   string(req.Method),
		PaidAt:   l.now(),
	}, nil
}

// Cancel voids a bill that has not been settled. Paid is the one
// state Cancel refuses to touch.
func (l *Ledger) Cancel(id BillID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	bill, ok := l.bills[id]
	if !ok {
		return ErrBillNotFound
	}
	if bill.Status == StatusPaid {
		return ErrAlreadyPaid
	}
	bill.Status = StatusCancelled
	return nil
}

// Reset drops every bill and restarts numbering at 1. Only lot
// reconfiguration calls it.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.bills = make(map[BillID]*Bill)
	l.nextID.Store(1)
}
