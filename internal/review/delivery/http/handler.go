package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	productdomain "github.com/akarpov/online-store/internal/product/domain"
	"github.com/akarpov/online-store/internal/review/domain"
	"github.com/akarpov/online-store/internal/review/usecase/command"
	"github.com/akarpov/online-store/internal/review/usecase/query"
	userhttp "github.com/akarpov/online-store/internal/user/delivery/http"
	userdomain "github.com/akarpov/online-store/internal/user/domain"
	"github.com/akarpov/online-store/pkg/logger"
)

// ReviewHandler handles HTTP requests for product reviews using CQRS pattern
type ReviewHandler struct {
	addHandler    *command.AddReviewHandler
	deleteHandler *command.DeleteReviewHandler

	listHandler *query.ListByProductHandler

	users userdomain.UserRepository

	reviewsPosted prometheus.Counter
}

// NewReviewHandler creates a new review handler with CQRS pattern
func NewReviewHandler(
	reviews domain.ReviewRepository,
	products productdomain.ProductRepository,
	users userdomain.UserRepository,
) *ReviewHandler {
	reviewsPosted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "store_reviews_posted_total",
			Help: "Total number of posted reviews",
		},
	)

	prometheus.MustRegister(reviewsPosted)

	return &ReviewHandler{
		addHandler:    command.NewAddReviewHandler(reviews, products),
		deleteHandler: command.NewDeleteReviewHandler(reviews),
		listHandler:   query.NewListByProductHandler(reviews, products),
		users:         users,
		reviewsPosted: reviewsPosted,
	}
}

// Response is the JSON envelope for all review endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes mounts the review endpoints.
func (h *ReviewHandler) RegisterRoutes(router *mux.Router) {
	authn := userhttp.AuthMiddleware(h.users)

	router.HandleFunc("/products/{product_id}/reviews", h.ListReviews).Methods("GET")
	router.HandleFunc("/products/{product_id}/reviews", authn(h.AddReview)).Methods("POST")
	router.HandleFunc("/reviews/{review_id}", authn(h.DeleteReview)).Methods("DELETE")
}

type reviewPayload struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ListReviews handles GET /products/{product_id}/reviews
// @Summary List reviews of a product
// @Description Reviews plus the average rating of an active product
// @Tags Reviews
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /products/{product_id}/reviews [get]
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "product_id")
	if !ok {
		return
	}

	result, err := h.listHandler.Handle(query.ListByProductQuery{ProductID: id})
	if err != nil {
		h.respondError(w, r, err, "Failed to list reviews")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// AddReview handles POST /products/{product_id}/reviews
// @Summary Review a product
// @Tags Reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product_id path int true "Product ID"
// @Param request body reviewPayload true "Review data"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /products/{product_id}/reviews [post]
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	user, ok := userhttp.UserFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Authentication required"})
		return
	}

	id, ok := pathID(w, r, "product_id")
	if !ok {
		return
	}

	var req reviewPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	review, err := h.addHandler.Handle(command.AddReviewCommand{
		UserID:    user.ID,
		ProductID: id,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to add review")
		return
	}

	h.reviewsPosted.Inc()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Review added successfully",
		Data:    review,
	})
}

// DeleteReview handles DELETE /reviews/{review_id}
// @Summary Remove a review
// @Description Remove an own review; admins may remove any review
// @Tags Reviews
// @Security BearerAuth
// @Produce json
// @Param review_id path int true "Review ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /reviews/{review_id} [delete]
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	user, ok := userhttp.UserFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Authentication required"})
		return
	}

	id, ok := pathID(w, r, "review_id")
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteReviewCommand{Actor: user, ReviewID: id}); err != nil {
		h.respondError(w, r, err, "Failed to delete review")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Review deleted successfully"})
}

func (h *ReviewHandler) respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
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
	case errors.Is(err, domain.ErrInvalidRating):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrReviewNotFound), errors.Is(err, productdomain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotAuthor):
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
