package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/nikolayk812/shopcore/internal/api"
	"github.com/nikolayk812/shopcore/internal/domain"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func (s *Server) purchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := ownerOf(r)

	body, err := decodePurchase(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	req, err := body.ToDomain(owner)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	receipt, err := s.Purchaser.Purchase(ctx, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.Carts.Clear(ctx, owner); err != nil {
		s.logger.Warn("clear cart after purchase", zap.String("owner_id", owner), zap.Error(err))
	}

	s.writeJSON(w, http.StatusOK, api.FromReceipt(receipt))
}

// decodePurchase accepts the {"data": {...}} envelope as well as a bare body.
func decodePurchase(r io.Reader) (api.Purchase, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return api.Purchase{}, fmt.Errorf("read body: %w: %w", domain.ErrMalformedRequest, err)
	}

	var envelope api.PurchaseEnvelope
	if err := api.Decode(bytes.NewReader(raw), &envelope); err == nil && envelope.Data != nil {
		return *envelope.Data, nil
	}

	var body api.Purchase
	if err := api.Decode(bytes.NewReader(raw), &body); err != nil {
		return api.Purchase{}, fmt.Errorf("%w: %w", domain.ErrMalformedRequest, err)
	}

	return body, nil
}
