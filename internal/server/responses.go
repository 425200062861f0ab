package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/anilkruz/ParkingLot-repo/internal/billing"
)

type Meta struct {
	TraceID   string `json:"trace_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type EnterRequest struct {
	Gate         string `json:"gate"`
	Registration string `json:"registration"`
	Category     string `json:"category"`
}

type ExitRequest struct {
	TicketID   uint64 `json:"ticket_id"`
	Gate       string `json:"gate"`
	LostTicket bool   `json:"lost_ticket"`
}

type PayRequest struct {
	BillID     uint64 `json:"bill_id"`
	Amount     int64  `json:"amount"`
	Method     string `json:"method"`
	CardNumber string `json:"card_number,omitempty"`
	UPIAddress string `json:"upi_address,omitempty"`
}

type TicketResponse struct {
	TicketID     uint64 `json:"ticket_id"`
	Gate         string `json:"gate"`
	Registration string `json:"registration"`
	Category     string `json:"category"`
}

type BillResponse struct {
	BillID        uint64    `json:"bill_id"`
	TicketID      uint64    `json:"ticket_id"`
	VehicleReg    string    `json:"vehicle_registration"`
	SlotID        string    `json:"slot_id"`
	EntryGate     string    `json:"entry_gate"`
	ExitGate      string    `json:"exit_gate"`
	EnteredAt     time.Time `json:"entered_at"`
	ExitedAt      time.Time `json:"exited_at"`
	ParkedMinutes int64     `json:"parked_minutes"`
	BilledHours   int64     `json:"billed_hours"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
}

type ReceiptResponse struct {
	BillID   uint64    `json:"bill_id"`
	TicketID uint64    `json:"ticket_id"`
	Amount   int64     `json:"amount"`
	Method   string    `json:"method"`
	PaidAt   time.Time `json:"paid_at"`
}

type OccupancyResponse struct {
	Free          int `json:"free"`
	Used          int `json:"used"`
	Total         int `json:"total"`
	ActiveTickets int `json:"active_tickets"`
}

func toBillResponse(b billing.Bill) BillResponse {
	return BillResponse{
		BillID:        uint64(b.ID),
		TicketID:      b.TicketID,
		VehicleReg:    b.VehicleReg,
		SlotID:        b.SlotID,
		EntryGate:     b.EntryGate,
		ExitGate:      b.ExitGate,
		EnteredAt:     b.EnteredAt,
		ExitedAt:      b.ExitedAt,
		ParkedMinutes: b.ParkedMinutes,
		BilledHours:   b.BilledHours,
		Amount:        b.Amount,
		Status:        string(b.Status),
	}
}

func toReceiptResponse(r billing.Receipt) ReceiptResponse {
	return ReceiptResponse{
		BillID:   uint64(r.BillID),
		TicketID: r.TicketID,
		Amount:   r.Amount,
		Method:   r.Method,
		PaidAt:   r.PaidAt,
	}
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func extractMeta(ctx context.Context) *Meta {
	meta := &Meta{}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		meta.TraceID = span.SpanContext().TraceID().String()
	}

	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		meta.RequestID = reqID
	}

	return meta
}

func WriteSuccess(ctx context.Context, w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    extractMeta(ctx),
	})
}

func WriteError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{
		Success: false,
		Error:   message,
		Meta:    extractMeta(ctx),
	})
}
