package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the handler into the REST surface
func NewRouter(h *Handler, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(h.logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", h.GetMenu)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Post("/pizzas", h.AddPizza)
			r.Post("/hamburgers", h.AddHamburger)
			r.Post("/drinks", h.AddDrink)
			r.Put("/items/{id}", h.SetQuantity)
		})

		r.Post("/checkout", h.RequestCheckout)
		r.Post("/checkout/back", h.Back)
		r.Post("/payment", h.SubmitPayment)
		r.Get("/receipt", h.GetReceipt)
		r.Post("/orders/new", h.NewOrder)
	})

	return r
}
