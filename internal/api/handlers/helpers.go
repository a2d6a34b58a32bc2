package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/services"

	"go.uber.org/zap"
)

const maxJSONBody = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, log *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("encode failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, status int, msg string) {
	writeJSON(w, r, log, status, map[string]string{"error": msg})
}

type failureBody struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Retriable bool   `json:"retriable,omitempty"`
}

// writeFailure maps an error from the domain taxonomy onto a status code.
func writeFailure(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		msg := verr.Message
		if msg == "" {
			msg = verr.Error()
		}
		writeJSON(w, r, log, http.StatusBadRequest, failureBody{Error: msg, Code: verr.Code})
	case errors.Is(err, services.ErrSuperseded):
		writeJSON(w, r, log, http.StatusConflict, failureBody{Error: "superseded by a newer submission", Kind: "superseded"})
	case errors.Is(err, services.ErrNoItinerary):
		writeError(w, r, log, http.StatusNotFound, "no itinerary has been planned")
	default:
		kind := domain.Kind(err)
		if kind == domain.KindUnknown {
			log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
			writeError(w, r, log, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, r, log, http.StatusBadGateway, failureBody{
			Error:     err.Error(),
			Kind:      kind,
			Retriable: domain.Retriable(err),
		})
	}
}

// decodeJSON reads exactly one JSON object from the request body.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return &domain.ValidationError{Code: "invalid_json", Message: "invalid json body"}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return &domain.ValidationError{Code: "invalid_json", Message: "body must contain only one JSON object"}
	}
	return nil
}

func writeFile(w http.ResponseWriter, name, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
