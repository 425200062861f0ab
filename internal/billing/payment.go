package billing

import (
	"errors"
	"fmt"
	"strings"
)

// PaymentMethod selects the processor that attempts the charge.
type PaymentMethod string

const (
	MethodCash PaymentMethod = "Cash"
	MethodCard PaymentMethod = "Card"
	MethodUPI  PaymentMethod = "UPI"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "Cash", "cash":
		return MethodCash, nil
	case "Card", "card":
		return MethodCard, nil
	case "UPI", "upi", "Upi":
		return MethodUPI, nil
	}
	return "", fmt.Errorf("unknown payment method: %q", s)
}

type PaymentRequest struct {
	BillID     BillID
	Amount     int64
	Method     PaymentMethod
	CardNumber string
	UPIAddress string
}

// chargeFunc attempts a charge and returns the decline reason, if
// any. A real gateway would slot in here; the built-ins only
// sanity-check the instrument.
type chargeFunc func(req PaymentRequest) error

// processors keys the charge attempt by payment method.
var processors = map[PaymentMethod]chargeFunc{
	MethodCash: chargeCash,
	MethodCard: chargeCard,
	MethodUPI:  chargeUPI,
}

func chargeCash(PaymentRequest) error {
	return nil
}

func chargeCard(req PaymentRequest) error {
	if len(req.CardNumber) < 8 {
		return errors.New("card declined: invalid number")
	}
	return nil
}

func chargeUPI(req PaymentRequest) error {
	if !strings.Contains(req.UPIAddress, "@") {
		return errors.New("upi failed: invalid address")
	}
	return nil
}
