package parking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/anilkruz/ParkingLot-repo/internal/billing"
)

// InstrumentedLot wraps a Lot with spans and metrics for every gate
// and settlement operation. Queries that only read state pass through
// the embedded Lot.
type InstrumentedLot struct {
	*Lot
	telemetry *TelemetryProvider

	entryOperations   metric.Int64Counter
	exitOperations    metric.Int64Counter
	paymentOperations metric.Int64Counter
	occupancyGauge    metric.Int64UpDownCounter
	totalSlotsGauge   metric.Int64UpDownCounter
	revenueCounter    metric.Int64Counter
	operationDuration metric.Float64Histogram
}

func NewInstrumentedLot(telemetry *TelemetryProvider) (*InstrumentedLot, error) {
	meter := telemetry.Meter()

	entryOperations, err := meter.Int64Counter("vehicle_entries_total",
		metric.WithDescription("Total number of vehicle entries"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	exitOperations, err := meter.Int64Counter("vehicle_exits_total",
		metric.WithDescription("Total number of vehicle exits"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	paymentOperations, err := meter.Int64Counter("bill_payments_total",
		metric.WithDescription("Total number of bill payment attempts"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64UpDownCounter("parking_lot_occupancy",
		metric.WithDescription("Current number of occupied slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	totalSlotsGauge, err := meter.Int64UpDownCounter("parking_lot_total_slots",
		metric.WithDescription("Total number of slots in the configured floor plan"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	revenueCounter, err := meter.Int64Counter("parking_revenue_total",
		metric.WithDescription("Total amount collected through settled bills"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("operation_duration_seconds",
		metric.WithDescription("Duration of parking lot operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &InstrumentedLot{
		Lot:               NewLot(),
		telemetry:         telemetry,
		entryOperations:   entryOperations,
		exitOperations:    exitOperations,
		paymentOperations: paymentOperations,
		occupancyGauge:    occupancyGauge,
		totalSlotsGauge:   totalSlotsGauge,
		revenueCounter:    revenueCounter,
		operationDuration: operationDuration,
	}, nil
}

func (il *InstrumentedLot) Configure(ctx context.Context, floors []*Floor) error {
	tracer := il.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.configure",
		trace.WithAttributes(attribute.Int("floor_count", len(floors))))
	defer span.End()

	_, usedBefore, totalBefore := il.Lot.Occupancy()

	err := il.Lot.Configure(floors)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	_, _, totalAfter := il.Lot.Occupancy()
	il.totalSlotsGauge.Add(ctx, int64(totalAfter-totalBefore))
	il.occupancyGauge.Add(ctx, int64(-usedBefore))

	span.SetAttributes(attribute.Int("total_slots", totalAfter))
	span.AddEvent("floor_plan_installed")
	return nil
}

func (il *InstrumentedLot) Enter(ctx context.Context, entryGate string, v Vehicle) (TicketID, error) {
	tracer := il.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.enter",
		trace.WithAttributes(
			attribute.String("entry_gate", entryGate),
			attribute.String("vehicle.registration", v.Registration),
			attribute.String("vehicle.category", string(v.Category)),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("finding_free_slot")

	ticketID, err := il.Lot.Enter(entryGate, v)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "enter"),
		attribute.String("vehicle_category", string(v.Category)),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
		il.entryOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(attribute.Int64("ticket_id", int64(ticketID)))
		span.AddEvent("ticket_issued", trace.WithAttributes(
			attribute.Int64("ticket_id", int64(ticketID)),
		))

		il.entryOperations.Add(ctx, 1, metric.WithAttributes(labels...))
		il.occupancyGauge.Add(ctx, 1)
	}

	il.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return ticketID, err
}

func (il *InstrumentedLot) Exit(ctx context.Context, id TicketID, exitGate string, lostTicket bool) (billing.Bill, error) {
	tracer := il.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.exit",
		trace.WithAttributes(
			attribute.Int64("ticket_id", int64(id)),
			attribute.String("exit_gate", exitGate),
			attribute.Bool("lost_ticket", lostTicket),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("releasing_slot")

	bill, err := il.Lot.Exit(id, exitGate, lostTicket)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "exit"),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(
			attribute.Int64("bill_id", int64(bill.ID)),
			attribute.Int64("bill_amount", bill.Amount),
			attribute.Int64("parked_minutes", bill.ParkedMinutes),
		)
		span.AddEvent("bill_raised", trace.WithAttributes(
			attribute.Int64("bill_id", int64(bill.ID)),
		))
		il.occupancyGauge.Add(ctx, -1)
	}

	il.exitOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	il.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return bill, err
}

func (il *InstrumentedLot) Pay(ctx context.Context, req billing.PaymentRequest) (billing.Receipt, error) {
	tracer := il.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.pay",
		trace.WithAttributes(
			attribute.Int64("bill_id", int64(req.BillID)),
			attribute.String("payment_method", string(req.Method)),
		))
	defer span.End()

	start := time.Now()

	receipt, err := il.Lot.Pay(req)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "pay"),
		attribute.String("payment_method", string(req.Method)),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(attribute.String("receipt_method", receipt.Method))
		span.AddEvent("bill_settled")
		if receipt.Method != billing.ReplayMethod {
			il.revenueCounter.Add(ctx, receipt.Amount)
		}
	}

	il.paymentOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	il.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return receipt, err
}

func (il *InstrumentedLot) Occupancy(ctx context.Context) (free, used, total int) {
	tracer := il.telemetry.Tracer()
	_, span := tracer.Start(ctx, "parking_lot.occupancy")
	defer span.End()

	free, used, total = il.Lot.Occupancy()

	span.SetAttributes(
		attribute.Int("free_slots", free),
		attribute.Int("used_slots", used),
		attribute.Int("total_slots", total),
	)

	return free, used, total
}
