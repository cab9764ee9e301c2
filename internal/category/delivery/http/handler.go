package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/akarpov/online-store/internal/category/domain"
	"github.com/akarpov/online-store/internal/category/usecase/command"
	"github.com/akarpov/online-store/internal/category/usecase/query"
	userhttp "github.com/akarpov/online-store/internal/user/delivery/http"
	userdomain "github.com/akarpov/online-store/internal/user/domain"
	"github.com/akarpov/online-store/pkg/logger"
)

// CategoryHandler handles HTTP requests for categories using CQRS pattern
type CategoryHandler struct {
	createHandler *command.CreateCategoryHandler
	updateHandler *command.UpdateCategoryHandler
	deleteHandler *command.DeleteCategoryHandler

	listHandler *query.ListCategoriesHandler

	users userdomain.UserRepository

	mutations *prometheus.CounterVec
}

// NewCategoryHandler creates a new category handler with CQRS pattern
func NewCategoryHandler(categories domain.CategoryRepository, users userdomain.UserRepository) *CategoryHandler {
	mutations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_category_mutations_total",
			Help: "Category mutations by operation",
		},
		[]string{"operation"},
	)

	prometheus.MustRegister(mutations)

	return &CategoryHandler{
		createHandler: command.NewCreateCategoryHandler(categories),
		updateHandler: command.NewUpdateCategoryHandler(categories),
		deleteHandler: command.NewDeleteCategoryHandler(categories),
		listHandler:   query.NewListCategoriesHandler(categories),
		users:         users,
		mutations:     mutations,
	}
}

// Response is the JSON envelope for all category endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes mounts the category endpoints.
func (h *CategoryHandler) RegisterRoutes(router *mux.Router) {
	admin := userhttp.AdminMiddleware(h.users)

	router.HandleFunc("/categories", h.ListCategories).Methods("GET")
	router.HandleFunc("/categories", admin(h.CreateCategory)).Methods("POST")
	router.HandleFunc("/categories/{category_id}", admin(h.UpdateCategory)).Methods("PUT")
	router.HandleFunc("/categories/{category_id}", admin(h.DeleteCategory)).Methods("DELETE")
}

type categoryPayload struct {
	Name string `json:"name"`
}

// ListCategories handles GET /categories
// @Summary List active categories
// @Tags Categories
// @Produce json
// @Success 200 {object} Response
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listHandler.Handle(query.ListCategoriesQuery{})
	if err != nil {
		h.respondError(w, r, err, "Failed to list categories")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: categories})
}

// CreateCategory handles POST /categories
// @Summary Create a category
// @Tags Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body categoryPayload true "Category data"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	category, err := h.createHandler.Handle(command.CreateCategoryCommand{Name: req.Name})
	if err != nil {
		h.respondError(w, r, err, "Failed to create category")
		return
	}

	h.mutations.WithLabelValues("create").Inc()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Category created successfully",
		Data:    category,
	})
}

// UpdateCategory handles PUT /categories/{category_id}
// @Summary Rename a category
// @Tags Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param category_id path int true "Category ID"
// @Param request body categoryPayload true "Category data"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /categories/{category_id} [put]
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	category, err := h.updateHandler.Handle(command.UpdateCategoryCommand{CategoryID: id, Name: req.Name})
	if err != nil {
		h.respondError(w, r, err, "Failed to update category")
		return
	}

	h.mutations.WithLabelValues("update").Inc()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Category updated successfully",
		Data:    category,
	})
}

// DeleteCategory handles DELETE /categories/{category_id}
// @Summary Deactivate a category
// @Description Deactivate a category; existing products keep their association
// @Tags Categories
// @Security BearerAuth
// @Produce json
// @Param category_id path int true "Category ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /categories/{category_id} [delete]
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	category, err := h.deleteHandler.Handle(command.DeleteCategoryCommand{CategoryID: id})
	if err != nil {
		h.respondError(w, r, err, "Failed to delete category")
		return
	}

	h.mutations.WithLabelValues("delete").Inc()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Category deleted successfully",
		Data:    category,
	})
}

func (h *CategoryHandler) pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := mux.Vars(r)["category_id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid category_id"})
		return 0, false
	}
	return uint(id), true
}

func (h *CategoryHandler) respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
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
	case errors.Is(err, command.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCategoryNotFound):
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
