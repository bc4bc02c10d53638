// Package httpapi serves the storefront contracts over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/nikolayk812/shopcore/internal/api"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
	"go.uber.org/zap"
)

const (
	OwnerHeader  = "X-Owner-ID"
	DefaultOwner = "me"
)

type Purchaser interface {
	Purchase(ctx context.Context, req domain.PurchaseRequest) (domain.PurchaseReceipt, error)
}

type Deps struct {
	Catalog   port.CatalogReader
	Reference port.ReferenceReader
	Accounts  port.AccountReader
	Carts     port.CartRepository
	Purchaser Purchaser
}

type Server struct {
	Deps
	logger *zap.Logger
}

func NewServer(deps Deps, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Deps: deps, logger: logger}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+api.PathProductList, s.listProducts)
	mux.HandleFunc("GET "+api.PathProduct+"{id}", s.getProduct)
	mux.HandleFunc("GET "+api.PathRecommend+"{id}", s.recommendations)
	mux.HandleFunc("GET "+api.PathExchangeRate, s.exchangeRates)
	mux.HandleFunc("GET "+api.PathGradePoint, s.gradePoints)
	mux.HandleFunc("GET "+api.PathGradeShipping, s.gradeShipping)
	mux.HandleFunc("GET "+api.PathMe, s.me)
	mux.HandleFunc("GET "+api.PathRecentProducts, s.recentProducts)
	mux.HandleFunc("POST "+api.PathPurchase, s.purchase)

	mux.HandleFunc("GET "+api.PathCart, s.getCart)
	mux.HandleFunc("DELETE "+api.PathCart, s.clearCart)
	mux.HandleFunc("POST "+api.PathCart+"/{productId}/increase", s.increase)
	mux.HandleFunc("POST "+api.PathCart+"/{productId}/decrease", s.decrease)
	mux.HandleFunc("PUT "+api.PathCart+"/{productId}", s.setQuantity)
	mux.HandleFunc("DELETE "+api.PathCart+"/{productId}", s.removeItem)

	return mux
}

func ownerOf(r *http.Request) string {
	if owner := r.Header.Get(OwnerHeader); owner != "" {
		return owner
	}
	return DefaultOwner
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := api.Encode(w, v); err != nil {
		s.logger.Warn("write response", zap.Error(err))
	}
}

// writeError maps domain failures to the purchase error kinds.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := classify(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		s.writeJSON(w, status, api.Error{Error: kind})
		return
	}

	s.writeJSON(w, status, api.Error{Error: kind, Message: err.Error()})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMalformedRequest), errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, "MalformedRequest"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusBadRequest, "ProductNotFound"
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusBadRequest, "InsufficientStock"
	case errors.Is(err, domain.ErrTotalMismatch):
		return http.StatusBadRequest, "TotalMismatch"
	default:
		return http.StatusInternalServerError, "Internal"
	}
}
