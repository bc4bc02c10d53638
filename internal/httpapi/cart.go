package httpapi

import (
	"net/http"

	"github.com/nikolayk812/shopcore/internal/api"
	"github.com/nikolayk812/shopcore/internal/checkout"
	"github.com/nikolayk812/shopcore/internal/domain"
)

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.Carts.GetCart(r.Context(), ownerOf(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.FromCart(cart))
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := s.Carts.Clear(r.Context(), ownerOf(r)); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// increase refuses to go past the product's current stock. The purchase
// re-checks stock, since it may drop after the item was added.
func (s *Server) increase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := s.pathID(w, r, "productId")
	if !ok {
		return
	}

	p, err := s.Catalog.GetProduct(ctx, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cart, err := s.Carts.Increase(ctx, ownerOf(r), id, p.Stock)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.FromCart(cart))
}

func (s *Server) decrease(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "productId")
	if !ok {
		return
	}

	cart, err := s.Carts.Decrease(r.Context(), ownerOf(r), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.FromCart(cart))
}

func (s *Server) setQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := ownerOf(r)

	id, ok := s.pathID(w, r, "productId")
	if !ok {
		return
	}

	var body api.CartQuantity
	if err := api.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes), &body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, api.Error{Error: "MalformedRequest", Message: err.Error()})
		return
	}
	if body.Quantity < 1 {
		s.writeError(w, r, domain.ErrInvalidQuantity)
		return
	}

	p, err := s.Catalog.GetProduct(ctx, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var scratch domain.Cart
	if err := checkout.SetQuantity(&scratch, p, body.Quantity); err != nil {
		s.writeError(w, r, err)
		return
	}

	cart, err := s.Carts.SetQuantity(ctx, owner, id, body.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.FromCart(cart))
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "productId")
	if !ok {
		return
	}

	if _, err := s.Carts.DeleteItem(r.Context(), ownerOf(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
