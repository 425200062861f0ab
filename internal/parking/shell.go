package parking

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/anilkruz/ParkingLot-repo/internal/billing"
)

// Shell is an interactive gate console over stdin. Each command runs
// in its own trace span.
type Shell struct {
	lot       *InstrumentedLot
	scanner   *bufio.Scanner
	telemetry *TelemetryProvider
}

func NewShell(lot *InstrumentedLot, telemetry *TelemetryProvider) *Shell {
	return &Shell{
		lot:       lot,
		scanner:   bufio.NewScanner(os.Stdin),
		telemetry: telemetry,
	}
}

func (s *Shell) Run(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.run")
	defer span.End()

	span.AddEvent("shell_started")

	for {
		if !s.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(s.scanner.Text())
		if input == "" {
			continue
		}

		cmdCtx, cmdSpan := tracer.Start(ctx, "shell.process_command",
			trace.WithAttributes(attribute.String("command.input", input)))

		s.processCommand(cmdCtx, input)
		cmdSpan.End()
	}

	span.AddEvent("shell_ended")
}

func (s *Shell) processCommand(ctx context.Context, input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	command := parts[0]

	switch command {
	case "enter":
		s.handleEnter(ctx, parts)
	case "exit":
		s.handleExit(ctx, parts)
	case "pay":
		s.handlePay(ctx, parts)
	case "cancel":
		s.handleCancel(parts)
	case "bill":
		s.handleBill(parts)
	case "status":
		s.handleStatus(ctx)
	case "backdate":
		s.handleBackdate(parts)
	default:
		fmt.Printf("Unknown command: %s\n", command)
	}
}

func (s *Shell) handleEnter(ctx context.Context, parts []string) {
	if len(parts) != 4 {
		fmt.Println("Usage: enter <gate> <category> <registration>")
		return
	}

	category, err := ParseVehicleCategory(parts[2])
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	ticketID, err := s.lot.Enter(ctx, parts[1], NewVehicle(parts[3], category))
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fmt.Printf("Ticket: %d\n", ticketID)
}

func (s *Shell) handleExit(ctx context.Context, parts []string) {
	if len(parts) != 3 && !(len(parts) == 4 && parts[3] == "lost") {
		fmt.Println("Usage: exit <ticket_id> <gate> [lost]")
		return
	}

	ticketID, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		fmt.Println("Invalid ticket id")
		return
	}

	lostTicket := len(parts) == 4

	bill, err := s.lot.Exit(ctx, TicketID(ticketID), parts[2], lostTicket)
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	printBill(bill)
}

func (s *Shell) handlePay(ctx context.Context, parts []string) {
	if len(parts) != 3 && len(parts) != 4 {
		fmt.Println("Usage: pay <bill_id> <method> [card_number|upi_address]")
		return
	}

	billID, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		fmt.Println("Invalid bill id")
		return
	}

	method, err := billing.ParsePaymentMethod(parts[2])
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	bill, err := s.lot.Bill(billing.BillID(billID))
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	req := billing.PaymentRequest{
		BillID: bill.ID,
		Amount: bill.Amount,
		Method: method,
	}
	if len(parts) == 4 {
		switch method {
		case billing.MethodCard:
			req.CardNumber = parts[3]
		case billing.MethodUPI:
			req.UPIAddress = parts[3]
		}
	}

	receipt, err := s.lot.Pay(ctx, req)
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	printReceipt(receipt)
}

func (s *Shell) handleCancel(parts []string) {
	if len(parts) != 2 {
		fmt.Println("Usage: cancel <bill_id>")
		return
	}

	billID, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		fmt.Println("Invalid bill id")
		return
	}

	if err := s.lot.CancelBill(billing.BillID(billID)); err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fmt.Printf("Bill %d cancelled\n", billID)
}

func (s *Shell) handleBill(parts []string) {
	if len(parts) != 2 {
		fmt.Println("Usage: bill <bill_id>")
		return
	}

	billID, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		fmt.Println("Invalid bill id")
		return
	}

	bill, err := s.lot.Bill(billing.BillID(billID))
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	printBill(bill)
}

func (s *Shell) handleStatus(ctx context.Context) {
	free, used, total := s.lot.Occupancy(ctx)
	fmt.Printf("Active: %d | free/used/total: %d/%d/%d\n",
		s.lot.ActiveCount(), free, used, total)
}

func (s *Shell) handleBackdate(parts []string) {
	if len(parts) != 3 {
		fmt.Println("Usage: backdate <ticket_id> <minutes>")
		return
	}

	ticketID, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		fmt.Println("Invalid ticket id")
		return
	}

	minutes, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || minutes < 0 {
		fmt.Println("Invalid minutes")
		return
	}

	if err := s.lot.ShiftEntryTime(TicketID(ticketID), minutes); err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fmt.Printf("Ticket %d entry moved back %d minute(s)\n", ticketID, minutes)
}

func printBill(b billing.Bill) {
	fmt.Println("------ BILL ------")
	fmt.Printf("Bill: %d | Ticket: %d\n", b.ID, b.TicketID)
	fmt.Printf("Vehicle: %s | Slot: %s\n", b.VehicleReg, b.SlotID)
	fmt.Printf("Entry: %s | Exit: %s\n", b.EntryGate, b.ExitGate)
	fmt.Printf("In : %s\n", b.EnteredAt.Format(time.ANSIC))
	fmt.Printf("Out: %s\n", b.ExitedAt.Format(time.ANSIC))
	fmt.Printf("Parked: %d mins, Billed: %d hour(s)\n", b.ParkedMinutes, b.BilledHours)
	fmt.Printf("Amount: INR %d | Status: %s\n", b.Amount, b.Status)
	fmt.Println("------------------")
}

func printReceipt(r billing.Receipt) {
	fmt.Println("==== RECEIPT ====")
	fmt.Printf("Bill: %d | Ticket: %d\n", r.BillID, r.TicketID)
	fmt.Printf("Amount: INR %d | Method: %s\n", r.Amount, r.Method)
	fmt.Printf("PaidAt: %s\n", r.PaidAt.Format(time.ANSIC))
	fmt.Println("=================")
}
