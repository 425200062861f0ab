package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/anilkruz/ParkingLot-repo/internal/billing"
	"github.com/anilkruz/ParkingLot-repo/internal/logging"
	"github.com/anilkruz/ParkingLot-repo/internal/parking"
)

type Handler struct {
	lot         *parking.InstrumentedLot
	serviceName string
}

func NewHandler(lot *parking.InstrumentedLot, serviceName string) *Handler {
	return &Handler{
		lot:         lot,
		serviceName: serviceName,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": h.serviceName,
		"meta":    extractMeta(r.Context()),
	})
}

func (h *Handler) EnterVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req EnterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Gate == "" || req.Registration == "" || req.Category == "" {
		WriteError(ctx, w, http.StatusBadRequest, "Gate, registration and category are required")
		return
	}

	category, err := parking.ParseVehicleCategory(req.Category)
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	ticketID, err := h.lot.Enter(ctx, req.Gate, parking.NewVehicle(req.Registration, category))
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	WriteSuccess(ctx, w, "Vehicle entered", TicketResponse{
		TicketID:     uint64(ticketID),
		Gate:         req.Gate,
		Registration: req.Registration,
		Category:     string(category),
	})
}

func (h *Handler) ExitVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.TicketID == 0 || req.Gate == "" {
		WriteError(ctx, w, http.StatusBadRequest, "Ticket id and gate are required")
		return
	}

	bill, err := h.lot.Exit(ctx, parking.TicketID(req.TicketID), req.Gate, req.LostTicket)
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	WriteSuccess(ctx, w, "Vehicle exited, bill raised", toBillResponse(bill))
}

func (h *Handler) PayBill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.BillID == 0 || req.Method == "" {
		WriteError(ctx, w, http.StatusBadRequest, "Bill id and method are required")
		return
	}

	method, err := billing.ParsePaymentMethod(req.Method)
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	receipt, err := h.lot.Pay(ctx, billing.PaymentRequest{
		BillID:     billing.BillID(req.BillID),
		Amount:     req.Amount,
		Method:     method,
		CardNumber: req.CardNumber,
		UPIAddress: req.UPIAddress,
	})
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	WriteSuccess(ctx, w, "Bill settled", toReceiptResponse(receipt))
}

func (h *Handler) GetBill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	billID, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid bill id")
		return
	}

	bill, err := h.lot.Bill(billing.BillID(billID))
	if err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	WriteSuccess(ctx, w, "Bill retrieved", toBillResponse(bill))
}

func (h *Handler) CancelBill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	billID, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid bill id")
		return
	}

	if err := h.lot.CancelBill(billing.BillID(billID)); err != nil {
		h.writeDomainError(ctx, w, err)
		return
	}

	WriteSuccess(ctx, w, "Bill cancelled", map[string]any{
		"bill_id": billID,
	})
}

func (h *Handler) Occupancy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	free, used, total := h.lot.Occupancy(ctx)

	WriteSuccess(ctx, w, "Occupancy retrieved", OccupancyResponse{
		Free:          free,
		Used:          used,
		Total:         total,
		ActiveTickets: h.lot.ActiveCount(),
	})
}

// writeDomainError maps engine and ledger errors to HTTP statuses.
func (h *Handler) writeDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, parking.ErrNoCapacity):
		WriteError(ctx, w, http.StatusConflict, err.Error())
	case errors.Is(err, parking.ErrInvalidTicket), errors.Is(err, billing.ErrBillNotFound):
		WriteError(ctx, w, http.StatusNotFound, err.Error())
	case errors.Is(err, billing.ErrNotPayable), errors.Is(err, billing.ErrAlreadyPaid):
		WriteError(ctx, w, http.StatusConflict, err.Error())
	case errors.Is(err, billing.ErrPaymentDeclined):
		WriteError(ctx, w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, parking.ErrSlotInconsistency):
		logging.Error(ctx, "slot inconsistency", "error", err)
		WriteError(ctx, w, http.StatusInternalServerError, "Internal inconsistency")
	default:
		WriteError(ctx, w, http.StatusBadRequest, err.Error())
	}
}

func parseID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
