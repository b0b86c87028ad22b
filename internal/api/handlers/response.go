package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/khetisetu/search-backend/internal/infrastructure/observability"
	apperrors "github.com/khetisetu/search-backend/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		observability.GetLogger().Debug().Err(err).Msg("failed to encode response")
	}
}

func respondWithError(w http.ResponseWriter, statusCode int, message, field string) {
	body := map[string]interface{}{
		"success": false,
		"error":   message,
	}
	if field != "" {
		body["field"] = field
	}
	respondWithJSON(w, statusCode, body)
}

// respondWithAppError maps the error taxonomy onto HTTP status codes
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message, appErr.Field)
		case apperrors.ErrorTypeUnauthorized:
			respondWithError(w, http.StatusUnauthorized, appErr.Message, "")
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message, "")
		case apperrors.ErrorTypeUnavailable:
			respondWithError(w, http.StatusServiceUnavailable, appErr.Message, "")
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error", "")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error", "")
}
