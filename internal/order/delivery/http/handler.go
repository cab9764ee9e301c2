package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	cartdomain "github.com/akarpov/online-store/internal/cart/domain"
	"github.com/akarpov/online-store/internal/order/domain"
	"github.com/akarpov/online-store/internal/order/usecase/command"
	"github.com/akarpov/online-store/internal/order/usecase/query"
	productdomain "github.com/akarpov/online-store/internal/product/domain"
	userhttp "github.com/akarpov/online-store/internal/user/delivery/http"
	userdomain "github.com/akarpov/online-store/internal/user/domain"
	"github.com/akarpov/online-store/pkg/logger"
)

// OrderHandler handles HTTP requests for orders using CQRS pattern
type OrderHandler struct {
	createHandler *command.CreateOrderHandler
	cancelHandler *command.CancelOrderHandler

	getHandler  *query.GetOrderHandler
	listHandler *query.ListMyOrdersHandler

	users userdomain.UserRepository

	ordersPlaced prometheus.Counter
	orderValue   prometheus.Histogram
}

// NewOrderHandler creates a new order handler with CQRS pattern
func NewOrderHandler(
	orders domain.OrderRepository,
	cart cartdomain.CartRepository,
	products productdomain.ProductRepository,
	users userdomain.UserRepository,
) *OrderHandler {
	ordersPlaced := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "store_orders_placed_total",
			Help: "Total number of placed orders",
		},
	)

	orderValue := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "store_order_value",
			Help:    "Distribution of order totals",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	prometheus.MustRegister(ordersPlaced)
	prometheus.MustRegister(orderValue)

	return &OrderHandler{
		createHandler: command.NewCreateOrderHandler(orders, cart, products),
		cancelHandler: command.NewCancelOrderHandler(orders, products),
		getHandler:    query.NewGetOrderHandler(orders),
		listHandler:   query.NewListMyOrdersHandler(orders),
		users:         users,
		ordersPlaced:  ordersPlaced,
		orderValue:    orderValue,
	}
}

// Response is the JSON envelope for all order endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes mounts the order endpoints. Everything requires a login.
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	authn := userhttp.AuthMiddleware(h.users)

	router.HandleFunc("/orders", authn(h.ListOrders)).Methods("GET")
	router.HandleFunc("/orders", authn(h.CreateOrder)).Methods("POST")
	router.HandleFunc("/orders/{order_id}", authn(h.GetOrder)).Methods("GET")
	router.HandleFunc("/orders/{order_id}/cancel", authn(h.CancelOrder)).Methods("POST")
}

// ListOrders handles GET /orders
// @Summary List own orders
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param page_size query int false "Page size (1-100)"
// @Success 200 {object} Response
// @Router /orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := userhttp.UserFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Authentication required"})
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	orders, err := h.listHandler.Handle(query.ListMyOrdersQuery{UserID: user.ID, Page: page, PageSize: pageSize})
	if err != nil {
		h.respondError(w, r, err, "Failed to list orders")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: orders})
}

// CreateOrder handles POST /orders
// @Summary Place an order from the cart
// @Description Freezes current prices, decrements stock and empties the cart
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := userhttp.UserFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Authentication required"})
		return
	}

	order, err := h.createHandler.Handle(command.CreateOrderCommand{UserID: user.ID})
	if err != nil {
		h.respondError(w, r, err, "Failed to place order")
		return
	}

	h.ordersPlaced.Inc()
	h.orderValue.Observe(order.Total)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order placed successfully",
		Data:    order,
	})
}

// GetOrder handles GET /orders/{order_id}
// @Summary Get an order
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param order_id path int true "Order ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /orders/{order_id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := userhttp.UserFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Authentication required"})
		return
	}

	id, ok := pathID(w, r, "order_id")
	if !ok {
		return
	}

	order, err := h.getHandler.Handle(query.GetOrderQuery{
		UserID:  user.ID,
		OrderID: id,
		IsAdmin: user.IsAdmin(),
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to get order")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: order})
}

// CancelOrder handles POST /orders/{order_id}/cancel
// @Summary Cancel a pending order
// @Description Cancelling returns the reserved stock
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param order_id path int true "Order ID"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /orders/{order_id}/cancel [post]
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := userhttp.UserFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Authentication required"})
		return
	}

	id, ok := pathID(w, r, "order_id")
	if !ok {
		return
	}

	order, err := h.cancelHandler.Handle(command.CancelOrderCommand{UserID: user.ID, OrderID: id})
	if err != nil {
		h.respondError(w, r, err, "Failed to cancel order")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order cancelled successfully",
		Data:    order,
	})
}

func (h *OrderHandler) respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
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
	case errors.Is(err, cartdomain.ErrEmptyCart),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrNotCancellable):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, productdomain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotOrderOwner):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
