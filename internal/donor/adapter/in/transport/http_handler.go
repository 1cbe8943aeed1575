package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/in"
	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

const maxBodySize = 1 << 20 // 1MB

// HTTPHandler обрабатывает HTTP запросы для Donor Service
type HTTPHandler struct {
	profileUC      in.GetMyProfileUseCase
	availabilityUC in.UpdateAvailabilityUseCase
	matchesUC      in.ListMyMatchesUseCase
	respondUC      in.RespondToMatchUseCase
	donationUC     in.RecordDonationUseCase
	log            *logger.Logger
}

// NewHTTPHandler создает новый HTTP handler
func NewHTTPHandler(
	profileUC in.GetMyProfileUseCase,
	availabilityUC in.UpdateAvailabilityUseCase,
	matchesUC in.ListMyMatchesUseCase,
	respondUC in.RespondToMatchUseCase,
	donationUC in.RecordDonationUseCase,
	log *logger.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		profileUC:      profileUC,
		availabilityUC: availabilityUC,
		matchesUC:      matchesUC,
		respondUC:      respondUC,
		donationUC:     donationUC,
		log:            log,
	}
}

// RegisterRoutes регистрирует все HTTP маршруты
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.HandlerFunc) http.HandlerFunc) {
	// liveness
	mux.HandleFunc("GET /health", h.handleHealth)

	// donor profile and availability
	mux.HandleFunc("GET /donors/me", authMiddleware(h.handleGetProfile))
	mux.HandleFunc("POST /donors/me/availability", authMiddleware(h.handleUpdateAvailability))
	mux.HandleFunc("POST /donors/me/donations", authMiddleware(h.handleRecordDonation))

	// match offers
	mux.HandleFunc("GET /donors/me/matches", authMiddleware(h.handleListMatches))
	mux.HandleFunc("POST /requests/{request_id}/response", authMiddleware(h.handleRespond))
}

// handleHealth обрабатывает health check
func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleGetProfile обрабатывает GET /donors/me
func (h *HTTPHandler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFrom(ctx)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	output, err := h.profileUC.Execute(ctx, in.GetMyProfileInput{DonorUserID: userID})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// UpdateAvailabilityHTTPRequest — HTTP DTO для переключения доступности
type UpdateAvailabilityHTTPRequest struct {
	Available bool `json:"available"`
}

// handleUpdateAvailability обрабатывает POST /donors/me/availability
func (h *HTTPHandler) handleUpdateAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFrom(ctx)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req UpdateAvailabilityHTTPRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			h.respondError(w, http.StatusBadRequest, "empty request body")
			return
		}
		h.respondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	output, err := h.availabilityUC.Execute(ctx, in.UpdateAvailabilityInput{
		DonorUserID: userID,
		Available:   req.Available,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// handleRecordDonation обрабатывает POST /donors/me/donations
func (h *HTTPHandler) handleRecordDonation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFrom(ctx)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	output, err := h.donationUC.Execute(ctx, in.RecordDonationInput{DonorUserID: userID})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, output)
}

// handleListMatches обрабатывает GET /donors/me/matches
func (h *HTTPHandler) handleListMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFrom(ctx)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	output, err := h.matchesUC.Execute(ctx, in.ListMyMatchesInput{DonorUserID: userID})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

// RespondHTTPRequest — HTTP DTO для ответа донора
type RespondHTTPRequest struct {
	Response string `json:"response"` // ACCEPTED | REJECTED
}

// handleRespond обрабатывает POST /requests/{request_id}/response
func (h *HTTPHandler) handleRespond(w http.ResponseWriter, r *http.Request) {
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

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req RespondHTTPRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			h.respondError(w, http.StatusBadRequest, "empty request body")
			return
		}
		h.respondError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	output, err := h.respondUC.Execute(ctx, in.RespondToMatchInput{
		DonorUserID: userID,
		RequestID:   requestID,
		Response:    req.Response,
	})
	if err != nil {
		h.handleUseCaseError(w, err)
		return
	}

	h.respondJSON(w, http.StatusAccepted, output)
}

// handleUseCaseError обрабатывает ошибки use case
func (h *HTTPHandler) handleUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, matchdomain.ErrInvalidResponse):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, matchdomain.ErrDonorNotFound):
		h.respondError(w, http.StatusNotFound, "donor profile not found")
	case errors.Is(err, matchdomain.ErrMatchNotFound):
		h.respondError(w, http.StatusNotFound, "match not found")
	case errors.Is(err, matchdomain.ErrMatchAlreadyResolved):
		h.respondError(w, http.StatusConflict, "match already resolved")
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
