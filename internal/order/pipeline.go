package order

import (
	"fmt"

	"github.com/nikolayk812/shopcore/internal/checkout"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/shopspring/decimal"
)

type State string

const (
	StatePending   State = "PENDING"
	StateValidated State = "VALIDATED"
	StateCommitted State = "COMMITTED"
	StateRejected  State = "REJECTED"
)

type Step string

const (
	StepShape     Step = "shape"
	StepExistence Step = "existence"
	StepStock     Step = "stock"
	StepPrice     Step = "price"
	StepDelivery  Step = "delivery"
	StepTotal     Step = "total"
)

// TotalTolerance is the largest accepted gap between the claimed and the recomputed total.
var TotalTolerance = decimal.RequireFromString("0.01")

// Snapshot is the view of shared state a request is validated against.
type Snapshot struct {
	Products   map[int64]domain.Product
	Loyalty    domain.LoyaltyState
	Thresholds domain.GradeThresholds
	Policies   domain.ShippingPolicies
}

// Evaluation accumulates what the rules derive from a request.
type Evaluation struct {
	State       State
	Request     domain.PurchaseRequest
	Snapshot    Snapshot
	ItemsTotal  decimal.Decimal
	DeliveryFee decimal.Decimal
}

func (e Evaluation) ExpectedTotal() decimal.Decimal {
	return e.ItemsTotal.Add(e.DeliveryFee)
}

// Rejection reports the first rule a request failed.
type Rejection struct {
	Step Step
	Err  error
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("purchase rejected at %s: %v", r.Step, r.Err)
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

type Rule struct {
	Step  Step
	Check func(e *Evaluation) error
}

// Pipeline lists the rules in evaluation order. Validation stops at the first failure.
var Pipeline = []Rule{
	{Step: StepExistence, Check: CheckExistence},
	{Step: StepStock, Check: CheckStock},
	{Step: StepPrice, Check: PriceItems},
	{Step: StepDelivery, Check: PriceDelivery},
	{Step: StepTotal, Check: CheckTotal},
}

// Validate runs the request through Pipeline. It reads snap and never modifies it.
func Validate(req domain.PurchaseRequest, snap Snapshot) (Evaluation, error) {
	e := Evaluation{State: StatePending, Request: req, Snapshot: snap}

	if err := req.Validate(); err != nil {
		e.State = StateRejected
		return e, &Rejection{Step: StepShape, Err: err}
	}

	for _, rule := range Pipeline {
		if err := rule.Check(&e); err != nil {
			e.State = StateRejected
			return e, &Rejection{Step: rule.Step, Err: err}
		}
	}

	e.State = StateValidated
	return e, nil
}

func CheckExistence(e *Evaluation) error {
	for _, item := range e.Request.Items {
		if _, ok := e.Snapshot.Products[item.ProductID]; !ok {
			return fmt.Errorf("product %d: %w", item.ProductID, domain.ErrProductNotFound)
		}
	}
	return nil
}

func CheckStock(e *Evaluation) error {
	for _, item := range e.Request.Items {
		p := e.Snapshot.Products[item.ProductID]
		if p.Stock < item.Quantity {
			return fmt.Errorf("product %d: requested %d, in stock %d: %w", item.ProductID, item.Quantity, p.Stock, domain.ErrInsufficientStock)
		}
	}
	return nil
}

// PriceItems recomputes the items total from current catalog prices.
func PriceItems(e *Evaluation) error {
	total := decimal.Zero
	for _, item := range e.Request.Items {
		p, ok := e.Snapshot.Products[item.ProductID]
		if !ok {
			return fmt.Errorf("product %d: %w", item.ProductID, domain.ErrProductNotFound)
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	e.ItemsTotal = total
	return nil
}

// PriceDelivery recomputes the fee from the owner's current grade.
func PriceDelivery(e *Evaluation) error {
	fee, err := checkout.DeliveryFee(e.Request.DeliveryType, e.ItemsTotal, e.Snapshot.Loyalty.Grade, e.Snapshot.Policies)
	if err != nil {
		return fmt.Errorf("checkout.DeliveryFee: %w", err)
	}

	e.DeliveryFee = fee
	return nil
}

func CheckTotal(e *Evaluation) error {
	expected := e.ExpectedTotal()
	if e.Request.ClaimedTotal.Sub(expected).Abs().GreaterThan(TotalTolerance) {
		return fmt.Errorf("claimed %s, expected %s: %w", e.Request.ClaimedTotal, expected, domain.ErrTotalMismatch)
	}
	return nil
}
