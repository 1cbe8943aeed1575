package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/domain"
	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

const maxBodySize = 1 << 20 // 1MB

// HTTPHandler обрабатывает HTTP запросы для Admin Service
type HTTPHandler struct {
	createUserUC      in.CreateUserUseCase
	listUsersUC       in.ListUsersUseCase
	overviewUC        in.GetOverviewUseCase
	pendingRequestsUC in.GetPendingRequestsUseCase
	getStockUC        in.GetBloodStockUseCase
	updateStockUC     in.UpdateBloodStockUseCase
	listVentilatorsUC in.ListVentilatorsUseCase
	updateVentUC      in.UpdateVentilatorUseCase
	log               *logger.Logger
}

// NewHTTPHandler создает новый HTTP handler
func NewHTTPHandler(
	createUserUC in.CreateUserUseCase,
	listUsersUC in.ListUsersUseCase,
	overviewUC in.GetOverviewUseCase,
	pendingRequestsUC in.GetPendingRequestsUseCase,
	getStockUC in.GetBloodStockUseCase,
	updateStockUC in.UpdateBloodStockUseCase,
	listVentilatorsUC in.ListVentilatorsUseCase,
	updateVentUC in.UpdateVentilatorUseCase,
	log *logger.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		createUserUC:      createUserUC,
		listUsersUC:       listUsersUC,
		overviewUC:        overviewUC,
		pendingRequestsUC: pendingRequestsUC,
		getStockUC:        getStockUC,
		updateStockUC:     updateStockUC,
		listVentilatorsUC: listVentilatorsUC,
		updateVentUC:      updateVentUC,
		log:               log,
	}
}

// RegisterRoutes регистрирует все HTTP маршруты
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.HandlerFunc) http.HandlerFunc) {
	// liveness
	mux.HandleFunc("GET /health", h.handleHealth)

	// users
	mux.HandleFunc("POST /admin/users", authMiddleware(h.handleCreateUser))
	mux.HandleFunc("GET /admin/users", authMiddleware(h.handleListUsers))

	// dashboards
	mux.HandleFunc("GET /admin/overview", authMiddleware(h.handleOverview))
	mux.HandleFunc("GET /admin/requests", authMiddleware(h.handlePendingRequests))

	// hospital resources
	mux.HandleFunc("GET /admin/blood-stock", authMiddleware(h.handleGetBloodStock))
	mux.HandleFunc("PUT /admin/blood-stock", authMiddleware(h.handleUpdateBloodStock))
	mux.HandleFunc("GET /admin/ventilators", authMiddleware(h.handleListVentilators))
	mux.HandleFunc("PUT /admin/ventilators/{ventilator_id}", authMiddleware(h.handleUpdateVentilator))
}

// handleHealth обрабатывает health check
func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// CreateUserHTTPRequest — HTTP DTO для создания пользователя
type CreateUserHTTPRequest struct {
	Email    string                 `json:"email"`
	Phone    string                 `json:"phone,omitempty"`
	Password string                 `json:"password"`
	Role     string                 `json:"role"`
	Status   string                 `json:"status,omitempty"`
	Profile  map[string]interface{} `json:"profile,omitempty"`
}

// handleCreateUser обрабатывает POST /admin/users
func (h *HTTPHandler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserHTTPRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if req.Email == "" {
		h.respondError(w, http.StatusBadRequest, "email is required")
		return
	}
	if req.Role == "" {
		h.respondError(w, http.StatusBadRequest, "role is required")
		return
	}

	output, err := h.createUserUC.Execute(r.Context(), in.CreateUserInput{
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
		Status:   req.Status,
		Profile:  req.Profile,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, output)
}

// handleListUsers обрабатывает GET /admin/users
func (h *HTTPHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	output, err := h.listUsersUC.Execute(r.Context(), in.ListUsersInput{
		Role:   query.Get("role"),
		Status: query.Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// handleOverview обрабатывает GET /admin/overview
func (h *HTTPHandler) handleOverview(w http.ResponseWriter, r *http.Request) {
	output, err := h.overviewUC.Execute(r.Context(), in.GetOverviewInput{})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// handlePendingRequests обрабатывает GET /admin/requests
func (h *HTTPHandler) handlePendingRequests(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))

	output, err := h.pendingRequestsUC.Execute(r.Context(), in.GetPendingRequestsInput{
		Status: query.Get("status"),
		Limit:  limit,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// handleGetBloodStock обрабатывает GET /admin/blood-stock
func (h *HTTPHandler) handleGetBloodStock(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	output, err := h.getStockUC.Execute(r.Context(), in.GetBloodStockInput{
		HospitalID: query.Get("hospital_id"),
		BloodGroup: query.Get("blood_group"),
		OnlyLow:    query.Get("only_low") == "true",
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// UpdateBloodStockHTTPRequest — HTTP DTO для корректировки запаса
type UpdateBloodStockHTTPRequest struct {
	HospitalID   string `json:"hospital_id"`
	BloodGroup   string `json:"blood_group"`
	QuantityML   int    `json:"quantity_ml"`
	MinThreshold int    `json:"min_threshold"`
}

// handleUpdateBloodStock обрабатывает PUT /admin/blood-stock
func (h *HTTPHandler) handleUpdateBloodStock(w http.ResponseWriter, r *http.Request) {
	var req UpdateBloodStockHTTPRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if req.HospitalID == "" {
		h.respondError(w, http.StatusBadRequest, "hospital_id is required")
		return
	}
	if req.BloodGroup == "" {
		h.respondError(w, http.StatusBadRequest, "blood_group is required")
		return
	}

	output, err := h.updateStockUC.Execute(r.Context(), in.UpdateBloodStockInput{
		HospitalID:   req.HospitalID,
		BloodGroup:   req.BloodGroup,
		QuantityML:   req.QuantityML,
		MinThreshold: req.MinThreshold,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// handleListVentilators обрабатывает GET /admin/ventilators
func (h *HTTPHandler) handleListVentilators(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	output, err := h.listVentilatorsUC.Execute(r.Context(), in.ListVentilatorsInput{
		HospitalID: query.Get("hospital_id"),
		Status:     query.Get("status"),
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// UpdateVentilatorHTTPRequest — HTTP DTO для смены статуса аппарата
type UpdateVentilatorHTTPRequest struct {
	Status string `json:"status"`
}

// handleUpdateVentilator обрабатывает PUT /admin/ventilators/{ventilator_id}
func (h *HTTPHandler) handleUpdateVentilator(w http.ResponseWriter, r *http.Request) {
	ventilatorID := r.PathValue("ventilator_id")
	if ventilatorID == "" {
		h.respondError(w, http.StatusBadRequest, "ventilator_id is required")
		return
	}

	var req UpdateVentilatorHTTPRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	output, err := h.updateVentUC.Execute(r.Context(), in.UpdateVentilatorInput{
		VentilatorID: ventilatorID,
		Status:       req.Status,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// decodeBody разбирает JSON тело запроса. false — ответ уже отправлен.
func (h *HTTPHandler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			h.respondError(w, http.StatusBadRequest, "empty request body")
			return false
		}
		h.log.Error(logger.Entry{
			Action:  "decode_request_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		h.respondError(w, http.StatusBadRequest, "invalid request format")
		return false
	}
	return true
}

// handleUseCaseError обрабатывает ошибки use case
func (h *HTTPHandler) handleUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrMissingProfileField),
		errors.Is(err, domain.ErrInvalidStockQuantity),
		errors.Is(err, domain.ErrInvalidVentilatorStatus),
		errors.Is(err, matchdomain.ErrInvalidBloodGroup):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrHospitalNotFound),
		errors.Is(err, domain.ErrVentilatorNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUserAlreadyExists):
		h.respondError(w, http.StatusConflict, err.Error())
	default:
		h.log.Error(logger.Entry{
			Action:  "usecase_error",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// respondJSON отправляет JSON ответ
func (h *HTTPHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error(logger.Entry{
			Action:  "encode_response_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
}

// respondError отправляет JSON с ошибкой
func (h *HTTPHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
