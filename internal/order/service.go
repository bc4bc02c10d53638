package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
	"go.uber.org/zap"
)

type Service struct {
	store  port.PurchaseStore
	logger *zap.Logger
	newID  func() uuid.UUID
}

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

func NewService(store port.PurchaseStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: zap.NewNop(),
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Purchase validates req against the current state and commits it. A rejected
// request returns a *Rejection and leaves the state untouched.
func (s *Service) Purchase(ctx context.Context, req domain.PurchaseRequest) (domain.PurchaseReceipt, error) {
	logger := s.logger.With(zap.String("owner_id", req.OwnerID), zap.String("delivery", string(req.DeliveryType)))

	if err := req.Validate(); err != nil {
		logger.Info("purchase rejected", zap.String("step", string(StepShape)), zap.Error(err))
		return domain.PurchaseReceipt{}, &Rejection{Step: StepShape, Err: err}
	}

	var receipt domain.PurchaseReceipt

	err := s.store.Atomically(ctx, req.OwnerID, func(tx port.PurchaseTx) error {
		snap, err := loadSnapshot(ctx, tx, req)
		if err != nil {
			return fmt.Errorf("loadSnapshot: %w", err)
		}

		e, err := Validate(req, snap)
		if err != nil {
			return err
		}

		receipt, err = s.commit(ctx, tx, e)
		if err != nil {
			return fmt.Errorf("commit: %w", err)
		}

		return nil
	})
	if err != nil {
		if rejection, ok := asRejection(err); ok {
			logger.Info("purchase rejected", zap.String("step", string(rejection.Step)), zap.Error(rejection.Err))
		} else {
			logger.Error("purchase failed", zap.Error(err))
		}
		return domain.PurchaseReceipt{}, err
	}

	logger.Info("purchase committed",
		zap.Stringer("order_id", receipt.OrderID),
		zap.String("total", receipt.Total.String()),
		zap.String("points", receipt.Loyalty.Points.String()),
		zap.String("grade", string(receipt.Loyalty.Grade)),
	)

	return receipt, nil
}

func loadSnapshot(ctx context.Context, tx port.PurchaseTx, req domain.PurchaseRequest) (Snapshot, error) {
	ids := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := tx.Products(ctx, ids)
	if err != nil {
		return Snapshot{}, fmt.Errorf("tx.Products: %w", err)
	}

	loyalty, err := tx.Loyalty(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("tx.Loyalty: %w", err)
	}

	thresholds, err := tx.GradeThresholds(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("tx.GradeThresholds: %w", err)
	}

	policies, err := tx.ShippingPolicies(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("tx.ShippingPolicies: %w", err)
	}

	return Snapshot{
		Products:   products,
		Loyalty:    loyalty,
		Thresholds: thresholds,
		Policies:   policies,
	}, nil
}

func (s *Service) commit(ctx context.Context, tx port.PurchaseTx, e Evaluation) (domain.PurchaseReceipt, error) {
	if e.State != StateValidated {
		return domain.PurchaseReceipt{}, fmt.Errorf("evaluation is %s", e.State)
	}

	recent := make([]domain.RecentPurchase, 0, len(e.Request.Items))
	for _, item := range e.Request.Items {
		if err := tx.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return domain.PurchaseReceipt{}, fmt.Errorf("tx.DecrementStock: %w", err)
		}
		recent = append(recent, domain.NewRecentPurchase(e.Snapshot.Products[item.ProductID]))
	}

	if err := tx.ReplaceRecentPurchases(ctx, recent); err != nil {
		return domain.PurchaseReceipt{}, fmt.Errorf("tx.ReplaceRecentPurchases: %w", err)
	}

	loyalty := e.Snapshot.Loyalty.Earn(e.ItemsTotal, e.Snapshot.Thresholds)
	if err := tx.SetLoyalty(ctx, loyalty); err != nil {
		return domain.PurchaseReceipt{}, fmt.Errorf("tx.SetLoyalty: %w", err)
	}

	receipt := domain.PurchaseReceipt{
		OrderID:     s.newID(),
		ItemsTotal:  e.ItemsTotal,
		DeliveryFee: e.DeliveryFee,
		Total:       e.ExpectedTotal(),
		Earned:      domain.PointsEarned(e.ItemsTotal),
		Loyalty:     loyalty,
		Recent:      recent,
	}

	err := tx.RecordOrder(ctx, port.Order{
		Receipt:  receipt,
		Delivery: e.Request.DeliveryType,
		Items:    e.Request.Items,
		Claimed:  e.Request.ClaimedTotal,
	})
	if err != nil {
		return domain.PurchaseReceipt{}, fmt.Errorf("tx.RecordOrder: %w", err)
	}

	return receipt, nil
}

func asRejection(err error) (*Rejection, bool) {
	var rejection *Rejection
	if errors.As(err, &rejection) {
		return rejection, true
	}
	return nil, false
}
