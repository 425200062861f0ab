package billing

import (
	"errors"
	"testing"
	"time"
)

func testTicketDetails() TicketDetails {
	return TicketDetails{
		TicketID:   1,
		VehicleReg: "KA01HH1234",
		SlotID:     "F1-FW1",
		EntryGate:  "E1",
		EnteredAt:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestLedgerCreateBill(t *testing.T) {
	ledger := NewLedger()
	exitedAt := time.Date(2024, 3, 1, 11, 35, 0, 0, time.UTC)
	ledger.now = func() time.Time { return exitedAt }

	bill := ledger.CreateBill(testTicketDetails(), "X1", Fee{
		ParkedMinutes: 95,
		BilledHours:   2,
		Amount:        40,
	})

	if bill.ID != 1 {
		t.Errorf("Expected bill id 1, got %d", bill.ID)
	}
	if bill.TicketID != 1 {
		t.Errorf("Expected ticket id 1, got %d", bill.TicketID)
	}
	if bill.VehicleReg != "KA01HH1234" {
		t.Errorf("Expected vehicle KA01HH1234, got %s", bill.VehicleReg)
	}
	if bill.EntryGate != "E1" || bill.ExitGate != "X1" {
		t.Errorf("Expected gates E1/X1, got %s/%s", bill.EntryGate, bill.ExitGate)
	}
	if !bill.ExitedAt.Equal(exitedAt) {
		t.Errorf("Expected exit time %v, got %v", exitedAt, bill.ExitedAt)
	}
	if bill.Amount != 40 || bill.BilledHours != 2 || bill.ParkedMinutes != 95 {
		t.Errorf("Expected fee 40/2h/95min, got %d/%dh/%dmin",
			bill.Amount, bill.BilledHours, bill.ParkedMinutes)
	}
	if bill.Status != StatusPending {
		t.Errorf("Expected status %s, got %s", StatusPending, bill.Status)
	}

	second := ledger.CreateBill(testTicketDetails(), "X2", Fee{})
	if second.ID != 2 {
		t.Errorf("Expected bill id 2, got %d", second.ID)
	}
}

func TestLedgerGet(t *testing.T) {
	ledger := NewLedger()

	if _, err := ledger.Get(1); !errors.Is(err, ErrBillNotFound) {
		t.Errorf("Expected ErrBillNotFound, got %v", err)
	}

	created := ledger.CreateBill(testTicketDetails(), "X1", Fee{Amount: 20})
	got, err := ledger.Get(created.ID)
	if err != nil {
		t.Errorf("Unexpected error: %s", err.Error())
	}
	if got.Amount != 20 {
		t.Errorf("Expected amount 20, got %d", got.Amount)
	}
}

func TestLedgerPayCash(t *testing.T) {
	ledger := NewLedger()
	bill := ledger.CreateBill(testTicketDetails(), "X1", Fee{Amount: 40})

	receipt, err := ledger.Pay(PaymentRequest{BillID: bill.ID, Amount: 40, Method: MethodCash})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if receipt.BillID != bill.ID {
		t.Errorf("Expected receipt for bill %d, got %d", bill.ID, receipt.BillID)
	}
	if receipt.Amount != 40 {
		t.Errorf("Expected receipt amount 40, got %d", receipt.Amount)
	}
	if receipt.Method != "Cash" {
		t.Errorf("Expected receipt method Cash, got %s", receipt.Method)
	}

	stored, err := ledger.Get(bill.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if stored.Status != StatusPaid {
		t.Errorf("Expected status %s, got %s", StatusPaid, stored.Status)
	}
}

func TestLedgerPayUnknownBill(t *testing.T) {
	ledger := NewLedger()

	if _, err := ledger.Pay(PaymentRequest{BillID: 42, Method: MethodCash}); !errors.Is(err, ErrBillNotFound) {
		t.Errorf("Expected ErrBillNotFound, got %v", err)
	}
}

func TestLedgerPayIsIdempotent(t *testing.T) {
	ledger := NewLedger()
	bill := ledger.CreateBill(testTicketDetails(), "X1", Fee{Amount: 40})

	if _, err := ledger.Pay(PaymentRequest{BillID: bill.ID, Method: MethodCash}); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	// The second attempt carries an instrument that would be declined;
	// the replay must succeed anyway because no charge runs.
	receipt, err := ledger.Pay(PaymentRequest{BillID: bill.ID, Method: MethodCard, CardNumber: "short"})
	if err != nil {
		t.Fatalf("Unexpected error on replay: %s", err.Error())
	}
	if receipt.Method != ReplayMethod {
		t.Errorf("Expected replay method %s, got %s", ReplayMethod, receipt.Method)
	}
	if receipt.Amount != 40 {
		t.Errorf("Expected replay amount 40, got %d", receipt.Amount)
	}

	stored, _ := ledger.Get(bill.ID)
	if stored.Status != StatusPaid {
		t.Errorf("Expected status to stay %s, got %s", StatusPaid, stored.Status)
	}
}

func TestLedgerPayDeclinedCardFailsBill(t *testing.T) {
	ledger := NewLedger()
	bill := ledger.CreateBill(testTicketDetails(), "X1", Fee{Amount: 40})

	_, err := ledger.Pay(PaymentRequest{BillID: bill.ID, Method: MethodCard, CardNumber: "1234567"})
	if !errors.Is(err, ErrPaymentDeclined) {
		t.Fatalf("Expected ErrPaymentDeclined, got %v", err)
	}

	stored, _ := ledger.Get(bill.ID)
	if stored.Status != StatusFailed {
		t.Errorf("Expected status %s, got %s", StatusFailed, stored.Status)
	}

	// A Failed bill is not payable again.
	if _, err := ledger.Pay(PaymentRequest{BillID: bill.ID, Method: MethodCash}); !errors.Is(err, ErrNotPayable) {
		t.Errorf("Expected ErrNotPayable for failed bill, got %v", err)
	}
}

func TestLedgerPayUPI(t *testing.T) {
	ledger := NewLedger()

	bill := ledger.CreateBill(testTicketDetails(), "X1", Fee{Amount: 40})
	receipt, err := ledger.Pay(PaymentRequest{BillID: bill.ID, Method: MethodUPI, UPIAddress: "rider@upi"})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if receipt.Method != "UPI" {
		t.Errorf("Expected receipt method UPI, got %s", receipt.Method)
	}

	bill = ledger.CreateBill(testTicketDetails(), "X1", Fee{Amount: 40})
	if _, err := ledger.Pay(PaymentRequest{BillID: bill.ID, Method: MethodUPI, UPIAddress: "no-at-sign"}); !errors.Is(err, ErrPaymentDeclined) {
		t.Errorf("Expected ErrPaymentDeclined, got %v", err)
	}
}

func TestLedgerPayUnknownMethodLeavesBillPending(t *testing.T) {
	ledger := NewLedger()
	bill := ledger.CreateBill(testTicketDetails(), "X1", Fee{Amount: 40})

	_, err := ledger.Pay(PaymentRequest{BillID: bill.ID, Method: "Barter"})
	if err == nil {
		t.Fatal("Expected error for unknown payment method")
	}
	if errors.Is(err, ErrPaymentDeclined) {
		t.Errorf("Expected a plain error, got ErrPaymentDeclined: %v", err)
	}

	stored, _ := ledger.Get(bill.ID)
	if stored.Status != StatusPending {
		t.Errorf("Expected status to stay %s, got %s", StatusPending, stored.Status)
	}
}

func TestLedgerPayZeroAmount(t *testing.T) {
	ledger := NewLedger()
	bill := ledger.CreateBill(testTicketDetails(), "X1", Fee{Amount: 0})

	receipt, err := ledger.Pay(PaymentRequest{BillID: bill.ID, Method: MethodCash})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if receipt.Amount != 0 {
		t.Errorf("Expected receipt amount 0, got %d", receipt.Amount)
	}

	stored, _ := ledger.Get(bill.ID)
	if stored.Status != StatusPaid {
		t.Errorf("Expected status %s, got %s", StatusPaid, stored.Status)
	}
}

func TestLedgerCancel(t *testing.T) {
	ledger := NewLedger()

	if err := ledger.Cancel(42); !errors.Is(err, ErrBillNotFound) {
		t.Errorf("Expected ErrBillNotFound, got %v", err)
	}

	bill := ledger.CreateBill(testTicketDetails(), "X1", Fee{Amount: 40})
	if err := ledger.Cancel(bill.ID); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	stored, _ := ledger.Get(bill.ID)
	if stored.Status != StatusCancelled {
		t.Errorf("Expected status %s, got %s", StatusCancelled, stored.Status)
	}

	// A cancelled bill cannot be settled afterwards.
	if _, err := ledger.Pay(PaymentRequest{BillID: bill.ID, Method: MethodCash}); !errors.Is(err, ErrNotPayable) {
		t.Errorf("Expected ErrNotPayable, got %v", err)
	}
}

func TestLedgerCancelPaidBill(t *testing.T) {
	ledger := NewLedger()
	bill := ledger.CreateBill(testTicketDetails(), "X1", Fee{Amount: 40})

	if _, err := ledger.Pay(PaymentRequest{BillID: bill.ID, Method: MethodCash}); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	if err := ledger.Cancel(bill.ID); !errors.Is(err, ErrAlreadyPaid) {
		t.Errorf("Expected ErrAlreadyPaid, got %v", err)
	}
}

func TestLedgerCancelFailedBill(t *testing.T) {
	ledger := NewLedger()
	bill := ledger.CreateBill(testTicketDetails(), "X1", Fee{Amount: 40})

	if _, err := ledger.Pay(PaymentRequest{BillID: bill.ID, Method: MethodCard, CardNumber: "short"}); err == nil {
		t.Fatal("Expected declined payment")
	}

	if err := ledger.Cancel(bill.ID); err != nil {
		t.Errorf("Unexpected error cancelling failed bill: %s", err.Error())
	}

	stored, _ := ledger.Get(bill.ID)
	if stored.Status != StatusCancelled {
		t.Errorf("Expected status %s, got %s", StatusCancelled, stored.Status)
	}
}

func TestLedgerReset(t *testing.T) {
	ledger := NewLedger()
	bill := ledger.CreateBill(testTicketDetails(), "X1", Fee{Amount: 40})

	ledger.Reset()

	if _, err := ledger.Get(bill.ID); !errors.Is(err, ErrBillNotFound) {
		t.Errorf("Expected ErrBillNotFound after reset, got %v", err)
	}

	fresh := ledger.CreateBill(testTicketDetails(), "X1", Fee{Amount: 10})
	if fresh.ID != 1 {
		t.Errorf("Expected bill numbering to restart at 1, got %d", fresh.ID)
	}
}
