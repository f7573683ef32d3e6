package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Reissam/cardapio-virtual/internal/cart"
	"github.com/Reissam/cardapio-virtual/internal/catalog"
	"github.com/Reissam/cardapio-virtual/internal/message"
	"github.com/Reissam/cardapio-virtual/internal/order"
	"github.com/Reissam/cardapio-virtual/internal/payment"
)

// Handler exposes the order flow over REST
type Handler struct {
	flow           *order.Flow
	whatsAppNumber string
	logger         zerolog.Logger
}

func NewHandler(flow *order.Flow, whatsAppNumber string, logger zerolog.Logger) *Handler {
	return &Handler{
		flow:           flow,
		whatsAppNumber: whatsAppNumber,
		logger:         logger,
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type AddPizzaRequestDTO struct {
	Size    string   `json:"size"`
	Flavors []string `json:"flavors"`
}

type AddByNameRequestDTO struct {
	Name string `json:"name"`
}

type SetQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type SubmitPaymentRequestDTO struct {
	Method      string  `json:"method"`
	ChangeFor   float64 `json:"change_for,omitempty"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	Observation string  `json:"observation,omitempty"`
}

type EntryDTO struct {
	ID        string   `json:"id"`
	Category  string   `json:"category"`
	Name      string   `json:"name"`
	Size      string   `json:"size,omitempty"`
	Flavors   []string `json:"flavors,omitempty"`
	UnitPrice string   `json:"unit_price"`
	Quantity  int      `json:"quantity"`
	LineTotal string   `json:"line_total"`
}

type CartResponseDTO struct {
	State     string     `json:"state"`
	Items     []EntryDTO `json:"items"`
	ItemCount int        `json:"item_count"`
	Total     string     `json:"total"`
}

type ReceiptResponseDTO struct {
	OrderNumber  string     `json:"order_number"`
	Items        []EntryDTO `json:"items"`
	Total        string     `json:"total"`
	PaymentLabel string     `json:"payment_label"`
	Change       string     `json:"change,omitempty"`
	Address      string     `json:"address"`
	Phone        string     `json:"phone"`
	Observation  string     `json:"observation,omitempty"`
	Summary      string     `json:"summary"`
	WhatsAppURL  string     `json:"whatsapp_url"`
}

type MenuResponseDTO struct {
	PizzaSizes   []PizzaSizeDTO `json:"pizza_sizes"`
	PizzaFlavors []string       `json:"pizza_flavors"`
	Hamburgers   []MenuItemDTO  `json:"hamburgers"`
	Drinks       []DrinkDTO     `json:"drinks"`
}

type PizzaSizeDTO struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	MaxFlavors int    `json:"max_flavors"`
}

type MenuItemDTO struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type DrinkDTO struct {
	Name  string `json:"name"`
	Size  string `json:"size"`
	Price string `json:"price"`
}

func (h *Handler) GetMenu(w http.ResponseWriter, _ *http.Request) {
	menu := MenuResponseDTO{
		PizzaFlavors: catalog.PizzaFlavors(),
	}
	for _, s := range catalog.PizzaSizes() {
		menu.PizzaSizes = append(menu.PizzaSizes, PizzaSizeDTO{
			Code:       s.Code,
			Name:       s.Name,
			Price:      s.Price.StringFixed(2),
			MaxFlavors: s.MaxFlavors,
		})
	}
	for _, hb := range catalog.Hamburgers() {
		menu.Hamburgers = append(menu.Hamburgers, MenuItemDTO{
			Name:  hb.Name,
			Price: hb.Price.StringFixed(2),
		})
	}
	for _, d := range catalog.Drinks() {
		menu.Drinks = append(menu.Drinks, DrinkDTO{
			Name:  d.Name,
			Size:  d.Size,
			Price: d.Price.StringFixed(2),
		})
	}
	respondJSON(w, http.StatusOK, menu)
}

func (h *Handler) GetCart(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *Handler) AddPizza(w http.ResponseWriter, r *http.Request) {
	var req AddPizzaRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	candidate, err := catalog.BuildPizza(req.Size, req.Flavors)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.addCandidate(w, candidate)
}

func (h *Handler) AddHamburger(w http.ResponseWriter, r *http.Request) {
	h.addByName(w, r, catalog.BuildHamburger)
}

func (h *Handler) AddDrink(w http.ResponseWriter, r *http.Request) {
	h.addByName(w, r, catalog.BuildDrink)
}

func (h *Handler) addByName(w http.ResponseWriter, r *http.Request, build func(string) (cart.Candidate, error)) {
	var req AddByNameRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	candidate, err := build(req.Name)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.addCandidate(w, candidate)
}

func (h *Handler) addCandidate(w http.ResponseWriter, candidate cart.Candidate) {
	entry, err := h.flow.AddItem(candidate)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entryDTO(entry))
}

func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req SetQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.flow.SetQuantity(id, req.Quantity); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *Handler) RequestCheckout(w http.ResponseWriter, _ *http.Request) {
	if err := h.flow.RequestCheckout(); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *Handler) Back(w http.ResponseWriter, _ *http.Request) {
	if err := h.flow.Back(); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *Handler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var req SubmitPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	draft := payment.Draft{
		Method:      payment.Method(req.Method),
		ChangeFor:   decimal.NewFromFloat(req.ChangeFor),
		Address:     req.Address,
		Phone:       req.Phone,
		Observation: req.Observation,
	}

	placed, err := h.flow.SubmitPayment(draft)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.receiptDTO(placed))
}

func (h *Handler) GetReceipt(w http.ResponseWriter, _ *http.Request) {
	placed, err := h.flow.Receipt()
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.receiptDTO(placed))
}

func (h *Handler) NewOrder(w http.ResponseWriter, _ *http.Request) {
	if err := h.flow.NewOrder(); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *Handler) cartResponse() CartResponseDTO {
	entries := h.flow.Entries()
	items := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryDTO(e))
	}
	return CartResponseDTO{
		State:     h.flow.State().String(),
		Items:     items,
		ItemCount: h.flow.ItemCount(),
		Total:     h.flow.Total().StringFixed(2),
	}
}

func (h *Handler) receiptDTO(o *order.Order) ReceiptResponseDTO {
	items := make([]EntryDTO, 0, len(o.Entries))
	for _, e := range o.Entries {
		items = append(items, entryDTO(e))
	}

	body := message.Summary(o)
	dto := ReceiptResponseDTO{
		OrderNumber:  o.Number,
		Items:        items,
		Total:        o.Total.StringFixed(2),
		PaymentLabel: message.MethodLabel(o.Submission),
		Address:      o.Submission.Address,
		Phone:        o.Submission.Phone,
		Observation:  o.Submission.Observation,
		Summary:      body,
		WhatsAppURL:  message.HandoffURL(h.whatsAppNumber, body),
	}
	if o.Submission.Method == payment.MethodCash {
		dto.Change = o.Change().StringFixed(2)
	}
	return dto
}

func entryDTO(e cart.Entry) EntryDTO {
	return EntryDTO{
		ID:        e.ID,
		Category:  e.Category.String(),
		Name:      e.Name,
		Size:      e.Size,
		Flavors:   e.Flavors,
		UnitPrice: e.UnitPrice.StringFixed(2),
		Quantity:  e.Quantity,
		LineTotal: e.LineTotal().StringFixed(2),
	}
}

// respondDomainError maps domain errors onto HTTP statuses: user-input
// validation failures are 422, menu lookups 400/404, and contract
// violations (undefined transitions) 409.
func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrEmptyCart):
		respondError(w, http.StatusUnprocessableEntity, "empty_cart", err.Error())
	case errors.Is(err, payment.ErrMissingAddress):
		respondError(w, http.StatusUnprocessableEntity, "missing_address", err.Error())
	case errors.Is(err, payment.ErrMissingPhone):
		respondError(w, http.StatusUnprocessableEntity, "missing_phone", err.Error())
	case errors.Is(err, payment.ErrInsufficientChange):
		respondError(w, http.StatusUnprocessableEntity, "insufficient_change", err.Error())
	case errors.Is(err, payment.ErrInvalidMethod):
		respondError(w, http.StatusUnprocessableEntity, "invalid_method", err.Error())
	case errors.Is(err, catalog.ErrUnknownSize),
		errors.Is(err, catalog.ErrUnknownFlavor),
		errors.Is(err, catalog.ErrFlavorCount),
		errors.Is(err, catalog.ErrDuplicateFlavor):
		respondError(w, http.StatusBadRequest, "invalid_selection", err.Error())
	case errors.Is(err, catalog.ErrUnknownItem), errors.Is(err, cart.ErrEntryNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, cart.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, order.ErrIllegalTransition):
		h.logger.Error().Err(err).Msg("illegal order flow transition")
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
	default:
		h.logger.Error().Err(err).Msg("unexpected error")
		respondError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg, Code: code})
}
