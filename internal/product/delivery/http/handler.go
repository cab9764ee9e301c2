package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	categorydomain "github.com/akarpov/online-store/internal/category/domain"
	"github.com/akarpov/online-store/internal/product/domain"
	"github.com/akarpov/online-store/internal/product/usecase/command"
	"github.com/akarpov/online-store/internal/product/usecase/query"
	userhttp "github.com/akarpov/online-store/internal/user/delivery/http"
	userdomain "github.com/akarpov/online-store/internal/user/domain"
	"github.com/akarpov/online-store/pkg/logger"
)

// ProductHandler handles HTTP requests for the catalog using CQRS pattern
type ProductHandler struct {
	// Command handlers
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler

	// Query handlers
	getHandler            *query.GetProductHandler
	listHandler           *query.ListProductsHandler
	listByCategoryHandler *query.ListByCategoryHandler

	users userdomain.UserRepository
	repo  domain.ProductRepository

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	activeProducts prometheus.Gauge
}

// NewProductHandler creates a new product handler with CQRS pattern (manual DI)
func NewProductHandler(
	products domain.ProductRepository,
	categories categorydomain.CategoryRepository,
	users userdomain.UserRepository,
) *ProductHandler {
	return NewProductHandlerWithDI(
		command.NewCreateProductHandler(products, categories),
		command.NewUpdateProductHandler(products, categories),
		command.NewDeleteProductHandler(products),
		query.NewGetProductHandler(products, categories),
		query.NewListProductsHandler(products),
		query.NewListByCategoryHandler(products, categories),
		products,
		users,
	)
}

// NewProductHandlerWithDI creates a new product handler using dependency
// injection. This is the constructor Wire builds.
func NewProductHandlerWithDI(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	getHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	listByCategoryHandler *query.ListByCategoryHandler,
	repo domain.ProductRepository,
	users userdomain.UserRepository,
) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_catalog_requests_total",
			Help: "Total number of catalog requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Summary metric for percentile calculation (p50, p90, p95, p99)
	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "store_catalog_request_duration_summary",
			Help: "Summary of catalog request durations with client-side quantiles",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	activeProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_catalog_active_products",
			Help: "Number of active products in the catalog",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(requestSummary)
	prometheus.MustRegister(activeProducts)

	return &ProductHandler{
		createHandler:         createHandler,
		updateHandler:         updateHandler,
		deleteHandler:         deleteHandler,
		getHandler:            getHandler,
		listHandler:           listHandler,
		listByCategoryHandler: listByCategoryHandler,
		users:                 users,
		repo:                  repo,
		requestCounter:        requestCounter,
		requestLatency:        requestLatency,
		requestSummary:        requestSummary,
		activeProducts:        activeProducts,
	}
}

// Response is the JSON envelope for all catalog endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes mounts the catalog endpoints.
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	seller := userhttp.SellerMiddleware(h.users)

	// Public routes
	router.HandleFunc("/products", h.metricsMiddleware("/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/products/category/{category_id}", h.metricsMiddleware("/products/category/{category_id}", h.ListByCategory)).Methods("GET")
	router.HandleFunc("/products/{product_id}", h.metricsMiddleware("/products/{product_id}", h.GetProduct)).Methods("GET")

	// Seller routes
	router.HandleFunc("/products", h.metricsMiddleware("/products", seller(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/products/{product_id}", h.metricsMiddleware("/products/{product_id}", seller(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/products/{product_id}", h.metricsMiddleware("/products/{product_id}", seller(h.DeleteProduct))).Methods("DELETE")
}

// productPayload is the request body shared by create and update.
type productPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  uint    `json:"category_id"`
}

// ListProducts handles GET /products
// @Summary List catalog products
// @Description Paginated listing of active products with optional filters
// @Tags Products
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param page_size query int false "Page size (1-100)"
// @Param category_id query int false "Category filter"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param in_stock query bool false "In-stock filter"
// @Param seller_id query int false "Seller filter"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := query.ListProductsQuery{}

	var err error
	if q.Page, err = intParam(r, "page"); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid page"})
		return
	}
	if q.PageSize, err = intParam(r, "page_size"); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid page_size"})
		return
	}
	if q.CategoryID, err = uintPtrParam(r, "category_id"); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid category_id"})
		return
	}
	if q.MinPrice, err = floatPtrParam(r, "min_price"); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid min_price"})
		return
	}
	if q.MaxPrice, err = floatPtrParam(r, "max_price"); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid max_price"})
		return
	}
	if q.InStock, err = boolPtrParam(r, "in_stock"); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid in_stock"})
		return
	}
	if q.SellerID, err = uintPtrParam(r, "seller_id"); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid seller_id"})
		return
	}

	result, err := h.listHandler.Handle(q)
	if err != nil {
		h.respondError(w, r, err, "Failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// GetProduct handles GET /products/{product_id}
// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /products/{product_id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "product_id")
	if !ok {
		return
	}

	product, err := h.getHandler.Handle(query.GetProductQuery{ProductID: id})
	if err != nil {
		h.respondError(w, r, err, "Failed to get product")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// ListByCategory handles GET /products/category/{category_id}
// @Summary List products of a category
// @Tags Products
// @Produce json
// @Param category_id path int true "Category ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /products/category/{category_id} [get]
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "category_id")
	if !ok {
		return
	}

	products, err := h.listByCategoryHandler.Handle(query.ListByCategoryQuery{CategoryID: id})
	if err != nil {
		h.respondError(w, r, err, "Failed to list category products")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// CreateProduct handles POST /products
// @Summary Create a product
// @Description Create a product under an active category (sellers only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body productPayload true "Product data"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	seller, ok := userhttp.UserFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Authentication required"})
		return
	}

	var req productPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.createHandler.Handle(command.CreateProductCommand{
		SellerID:    seller.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to create product")
		return
	}

	h.refreshActiveProductsMetric()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// UpdateProduct handles PUT /products/{product_id}
// @Summary Update a product
// @Description Update an owned product (sellers only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product_id path int true "Product ID"
// @Param request body productPayload true "Product data"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /products/{product_id} [put]
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	seller, ok := userhttp.UserFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Authentication required"})
		return
	}

	id, ok := pathID(w, r, "product_id")
	if !ok {
		return
	}

	var req productPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.updateHandler.Handle(command.UpdateProductCommand{
		SellerID:    seller.ID,
		ProductID:   id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to update product")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /products/{product_id}
// @Summary Soft-delete a product
// @Description Deactivate an owned product; the row is retained
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /products/{product_id} [delete]
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	seller, ok := userhttp.UserFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Authentication required"})
		return
	}

	id, ok := pathID(w, r, "product_id")
	if !ok {
		return
	}

	product, err := h.deleteHandler.Handle(command.DeleteProductCommand{
		SellerID:  seller.ID,
		ProductID: id,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to delete product")
		return
	}

	h.refreshActiveProductsMetric()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
		Data:    product,
	})
}

// RegisterHealthCheck mounts the /health probe.
func (h *ProductHandler) RegisterHealthCheck(router *mux.Router, ping func() error) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "Database unavailable"})
			return
		}
		respondJSON(w, http.StatusOK, Response{Success: true, Message: "Store is healthy"})
	}).Methods("GET")
}

// respondError maps business outcomes to status codes. Store-level failures
// stay 500 and keep a generic message; the cause goes to the log only.
func (h *ProductHandler) respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
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
	case errors.Is(err, domain.ErrInvalidPriceRange), errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// refreshActiveProductsMetric updates the active products gauge
func (h *ProductHandler) refreshActiveProductsMetric() {
	count, err := h.repo.CountActive(domain.Filter{})
	if err == nil {
		h.activeProducts.Set(float64(count))
	}
}

// pathID parses a numeric path variable, responding 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func uintPtrParam(r *http.Request, name string) (*uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	u := uint(v)
	return &u, nil
}

func floatPtrParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	if v < 0 {
		return nil, errors.New("must be non-negative")
	}
	return &v, nil
}

func boolPtrParam(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
