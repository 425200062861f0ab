package billing

import "time"

type BillID uint64

// BillStatus is the settlement state of a bill. A bill starts Pending
// and moves to exactly one of Paid, Failed or Cancelled. Paid is
// terminal.
type BillStatus string

const (
	StatusPending   BillStatus = "Pending"
	StatusPaid      BillStatus = "Paid"
	StatusFailed    BillStatus = "Failed"
	StatusCancelled BillStatus = "Cancelled"
)

// TicketDetails is the slice of a closed ticket the ledger needs to
// raise a bill. It is a plain value so the ledger never reaches back
// into the lot side.
type TicketDetails struct {
	TicketID   uint64
	VehicleReg string
	SlotID     string
	EntryGate  string
	EnteredAt  time.Time
}

// Fee is a priced stay as the ledger records it.
type Fee struct {
	ParkedMinutes int64
	BilledHours   int64
	Amount        int64
}

type Bill struct {
	ID            BillID
	TicketID      uint64
	VehicleReg    string
	SlotID        string
	EntryGate     string
	ExitGate      string
	EnteredAt     time.Time
	ExitedAt      time.Time
	ParkedMinutes int64
	BilledHours   int64
	Amount        int64
	Status        BillStatus
}

// Receipt is proof of settlement. Receipts are returned to the caller
// and never stored.
type Receipt struct {
	BillID   BillID
	TicketID uint64
	Amount   int64
	Method   string
	PaidAt   time.Time
}
