package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/akarpov/online-store/internal/cart/domain"
	"github.com/akarpov/online-store/internal/cart/usecase/command"
	"github.com/akarpov/online-store/internal/cart/usecase/query"
	productdomain "github.com/akarpov/online-store/internal/product/domain"
	userhttp "github.com/akarpov/online-store/internal/user/delivery/http"
	userdomain "github.com/akarpov/online-store/internal/user/domain"
	"github.com/akarpov/online-store/pkg/logger"
)

// CartHandler handles HTTP requests for the shopping cart using CQRS pattern
type CartHandler struct {
	addHandler    *command.AddItemHandler
	removeHandler *command.RemoveItemHandler
	clearHandler  *command.ClearCartHandler

	getHandler *query.GetCartHandler

	users userdomain.UserRepository

	itemsAdded prometheus.Counter
}

// NewCartHandler creates a new cart handler with CQRS pattern
func NewCartHandler(
	cart domain.CartRepository,
	products productdomain.ProductRepository,
	users userdomain.UserRepository,
) *CartHandler {
	itemsAdded := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "store_cart_items_added_total",
			Help: "Total number of cart additions",
		},
	)

	prometheus.MustRegister(itemsAdded)

	return &CartHandler{
		addHandler:    command.NewAddItemHandler(cart, products),
		removeHandler: command.NewRemoveItemHandler(cart),
		clearHandler:  command.NewClearCartHandler(cart),
		getHandler:    query.NewGetCartHandler(cart, products),
		users:         users,
		itemsAdded:    itemsAdded,
	}
}

// Response is the JSON envelope for all cart endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes mounts the cart endpoints. Everything requires a login.
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	authn := userhttp.AuthMiddleware(h.users)

	router.HandleFunc("/cart", authn(h.GetCart)).Methods("GET")
	router.HandleFunc("/cart/items", authn(h.AddItem)).Methods("POST")
	router.HandleFunc("/cart/items/{product_id}", authn(h.RemoveItem)).Methods("DELETE")
	router.HandleFunc("/cart", authn(h.ClearCart)).Methods("DELETE")
}

type addItemPayload struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// GetCart handles GET /cart
// @Summary View the cart
// @Description Cart lines with current prices and the running total
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /cart [get]
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	user, ok := userhttp.UserFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Authentication required"})
		return
	}

	view, err := h.getHandler.Handle(query.GetCartQuery{UserID: user.ID})
	if err != nil {
		h.respondError(w, r, err, "Failed to load cart")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: view})
}

// AddItem handles POST /cart/items
// @Summary Add a product to the cart
// @Description Adding an already carted product raises its quantity
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body addItemPayload true "Item data"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /cart/items [post]
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user, ok := userhttp.UserFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Authentication required"})
		return
	}

	var req addItemPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	item, err := h.addHandler.Handle(command.AddItemCommand{
		UserID:    user.ID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to add item")
		return
	}

	h.itemsAdded.Inc()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Item added to cart",
		Data:    item,
	})
}

// RemoveItem handles DELETE /cart/items/{product_id}
// @Summary Remove a product from the cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user, ok := userhttp.UserFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Authentication required"})
		return
	}

	raw := mux.Vars(r)["product_id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product_id"})
		return
	}

	if err := h.removeHandler.Handle(command.RemoveItemCommand{UserID: user.ID, ProductID: uint(id)}); err != nil {
		h.respondError(w, r, err, "Failed to remove item")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Item removed from cart"})
}

// ClearCart handles DELETE /cart
// @Summary Empty the cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Router /cart [delete]
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	user, ok := userhttp.UserFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Authentication required"})
		return
	}

	if err := h.clearHandler.Handle(command.ClearCartCommand{UserID: user.ID}); err != nil {
		h.respondError(w, r, err, "Failed to clear cart")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Cart cleared"})
}

func (h *CartHandler) respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg(fallback)
		respondJSON(w, status, Response{Success: false, Error: fallback})
		return
	}
	respondJSON(w, status, Response{Success: false, Error: err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrOutOfStock):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, productdomain.ErrProductNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
