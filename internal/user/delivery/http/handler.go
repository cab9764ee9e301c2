package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/akarpov/online-store/internal/user/domain"
	"github.com/akarpov/online-store/internal/user/usecase/command"
	"github.com/akarpov/online-store/internal/user/usecase/query"
	"github.com/akarpov/online-store/pkg/logger"
)

// UserHandler handles HTTP requests for accounts using CQRS pattern
type UserHandler struct {
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler

	getHandler  *query.GetUserHandler
	listHandler *query.ListUsersHandler

	users domain.UserRepository

	registrations  prometheus.Counter
	loginAttempts  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewUserHandler creates a new user handler with CQRS pattern
func NewUserHandler(users domain.UserRepository) *UserHandler {
	registrations := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "store_user_registrations_total",
			Help: "Total number of registered accounts",
		},
	)

	loginAttempts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_user_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_user_request_duration_seconds",
			Help:    "Duration of account requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(registrations)
	prometheus.MustRegister(loginAttempts)
	prometheus.MustRegister(requestLatency)

	return &UserHandler{
		registerHandler: command.NewRegisterUserHandler(users),
		loginHandler:    command.NewLoginUserHandler(users),
		getHandler:      query.NewGetUserHandler(users),
		listHandler:     query.NewListUsersHandler(users),
		users:           users,
		registrations:   registrations,
		loginAttempts:   loginAttempts,
		requestLatency:  requestLatency,
	}
}

// Response is the JSON envelope for all account endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes mounts the account endpoints.
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	authn := AuthMiddleware(h.users)
	admin := AdminMiddleware(h.users)

	router.HandleFunc("/auth/register", h.timed("/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/auth/login", h.timed("/auth/login", h.Login)).Methods("POST")

	router.HandleFunc("/users/me", h.timed("/users/me", authn(h.Me))).Methods("GET")
	router.HandleFunc("/admin/users", h.timed("/admin/users", admin(h.ListUsers))).Methods("GET")
}

func (h *UserHandler) timed(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

type registerPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /auth/register
// @Summary Register an account
// @Description Create a customer or seller account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body registerPayload true "Account data"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Router /auth/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	user, err := h.registerHandler.Handle(command.RegisterUserCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to register account")
		return
	}

	h.registrations.Inc()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Account registered successfully",
		Data:    user,
	})
}

// Login handles POST /auth/login
// @Summary Log in
// @Description Exchange credentials for a Bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body loginPayload true "Credentials"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /auth/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	result, err := h.loginHandler.Handle(command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.loginAttempts.WithLabelValues("failure").Inc()
		h.respondError(w, r, err, "Failed to log in")
		return
	}

	h.loginAttempts.WithLabelValues("success").Inc()

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// Me handles GET /users/me
// @Summary Get the authenticated profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /users/me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Authentication required"})
		return
	}

	profile, err := h.getHandler.Handle(query.GetUserQuery{UserID: user.ID})
	if err != nil {
		h.respondError(w, r, err, "Failed to get profile")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: profile})
}

// ListUsers handles GET /admin/users
// @Summary List accounts
// @Description Paginated account listing (admins only)
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param page_size query int false "Page size (1-100)"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	result, err := h.listHandler.Handle(query.ListUsersQuery{Page: page, PageSize: pageSize})
	if err != nil {
		h.respondError(w, r, err, "Failed to list accounts")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

func (h *UserHandler) respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
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
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrAccountDisabled):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAccount):
		return http.StatusBadRequest
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
