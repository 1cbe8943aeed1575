package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

const maxBodySize = 1 << 20 // 1MB

// HTTPHandler обрабатывает HTTP запросы для Request Service
type HTTPHandler struct {
	submitUC in.SubmitRequestUseCase
	cancelUC in.CancelRequestUseCase
	listUC   in.ListMyRequestsUseCase
	getUC    in.GetRequestUseCase
	log      *logger.Logger
}

// NewHTTPHandler создает новый HTTP handler
func NewHTTPHandler(
	submitUC in.SubmitRequestUseCase,
	cancelUC in.CancelRequestUseCase,
	listUC in.ListMyRequestsUseCase,
	getUC in.GetRequestUseCase,
	log *logger.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		submitUC: submitUC,
		cancelUC: cancelUC,
		listUC:   listUC,
		getUC:    getUC,
		log:      log,
	}
}

// RegisterRoutes регистрирует все HTTP маршруты
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.HandlerFunc) http.HandlerFunc) {
	// liveness
	mux.HandleFunc("GET /health", h.handleHealth)

	// donation requests
	mux.HandleFunc("POST /requests", authMiddleware(h.handleSubmitRequest))
	mux.HandleFunc("GET /requests/my", authMiddleware(h.handleListMyRequests))
	mux.HandleFunc("GET /requests/{request_id}", authMiddleware(h.handleGetRequest))
	mux.HandleFunc("POST /requests/{request_id}/cancel", authMiddleware(h.handleCancelRequest))
}

// handleHealth обрабатывает health check
func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// SubmitRequestHTTPRequest — HTTP DTO для создания заявки
type SubmitRequestHTTPRequest struct {
	RequestType string  `json:"request_type"`
	BloodGroup  string  `json:"blood_group,omitempty"`
	QuantityML  int     `json:"quantity_ml,omitempty"`
	Urgency     string  `json:"urgency"`
	HospitalID  *string `json:"hospital_id,omitempty"`
	RequiredBy  *string `json:"required_by,omitempty"`
	Reason      *string `json:"reason,omitempty"`
}

// handleSubmitRequest обрабатывает POST /requests
func (h *HTTPHandler) handleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFrom(ctx)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// Ограничиваем размер тела запроса
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req SubmitRequestHTTPRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			h.respondError(w, http.StatusBadRequest, "empty request body")
			return
		}
		h.log.Error(logger.Entry{
			Action:  "parse_request_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		h.respondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	if req.RequestType == "" {
		h.respondError(w, http.StatusBadRequest, "request_type is required")
		return
	}
	if req.Urgency == "" {
		h.respondError(w, http.StatusBadRequest, "urgency is required")
		return
	}

	var requiredBy *time.Time
	if req.RequiredBy != nil && *req.RequiredBy != "" {
		parsed, err := time.Parse(time.RFC3339, *req.RequiredBy)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "required_by must be RFC3339 timestamp")
			return
		}
		requiredBy = &parsed
	}

	input := in.SubmitRequestInput{
		PatientUserID: userID,
		HospitalID:    req.HospitalID,
		RequestType:   req.RequestType,
		BloodGroup:    req.BloodGroup,
		QuantityML:    req.QuantityML,
		Urgency:       req.Urgency,
		RequiredBy:    requiredBy,
		Reason:        req.Reason,
	}

	output, err := h.submitUC.Execute(ctx, input)
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, output)
}

// handleListMyRequests обрабатывает GET /requests/my
func (h *HTTPHandler) handleListMyRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFrom(ctx)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	output, err := h.listUC.Execute(ctx, in.ListMyRequestsInput{PatientUserID: userID})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// handleGetRequest обрабатывает GET /requests/{request_id}
func (h *HTTPHandler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requestID := r.PathValue("request_id")
	if requestID == "" {
		h.respondError(w, http.StatusBadRequest, "request_id is required")
		return
	}

	output, err := h.getUC.Execute(ctx, in.GetRequestInput{RequestID: requestID})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// handleCancelRequest обрабатывает POST /requests/{request_id}/cancel
func (h *HTTPHandler) handleCancelRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFrom(ctx)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID := r.PathValue("request_id")
	if requestID == "" {
		h.respondError(w, http.StatusBadRequest, "request_id is required")
		return
	}

	output, err := h.cancelUC.Execute(ctx, in.CancelRequestInput{
		RequestID:     requestID,
		PatientUserID: userID,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// handleUseCaseError обрабатывает ошибки use case
func (h *HTTPHandler) handleUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequestType),
		errors.Is(err, domain.ErrInvalidUrgency),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrMissingBloodGroup),
		errors.Is(err, matchdomain.ErrInvalidBloodGroup):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrRequestNotFound):
		h.respondError(w, http.StatusNotFound, "request not found")
	case errors.Is(err, matchdomain.ErrPatientNotFound):
		h.respondError(w, http.StatusNotFound, "patient profile not found")
	case errors.Is(err, domain.ErrRequestAlreadyResolved),
		errors.Is(err, domain.ErrInvalidStatusTransition):
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
