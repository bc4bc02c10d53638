package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nikolayk812/shopcore/internal/api"
	"github.com/nikolayk812/shopcore/internal/domain"
)

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.Catalog.ListProducts(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.FromProducts(products))
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	p, err := s.Catalog.GetProduct(r.Context(), id)
	if errors.Is(err, domain.ErrProductNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.FromProduct(p))
}

func (s *Server) recommendations(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	ids, err := s.Catalog.Recommendations(r.Context(), id)
	if errors.Is(err, domain.ErrProductNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.Recommendations{RecommendProductIDs: ids})
}

func (s *Server) exchangeRates(w http.ResponseWriter, r *http.Request) {
	rates, err := s.Reference.ExchangeRates(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.FromExchangeRates(rates))
}

func (s *Server) gradePoints(w http.ResponseWriter, r *http.Request) {
	thresholds, err := s.Reference.GradeThresholds(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.FromGradeThresholds(thresholds))
}

func (s *Server) gradeShipping(w http.ResponseWriter, r *http.Request) {
	policies, err := s.Reference.ShippingPolicies(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.FromShippingPolicies(policies))
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	loyalty, err := s.Accounts.Loyalty(ctx, ownerOf(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	thresholds, err := s.Reference.GradeThresholds(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.FromLoyalty(loyalty, thresholds))
}

func (s *Server) recentProducts(w http.ResponseWriter, r *http.Request) {
	recent, err := s.Accounts.RecentPurchases(r.Context(), ownerOf(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.FromRecentPurchases(recent))
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, api.Error{Error: "MalformedRequest", Message: name + " is not a number"})
		return 0, false
	}
	return id, true
}
