package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/gartstein/propertyhub/internal/core/processes"
	"github.com/gartstein/propertyhub/internal/pkg/httpjson"
	"go.uber.org/zap"
)

type ComponentProcess interface {
	Run(ctx context.Context, req processes.AddComponentRequest) (*processes.AddComponentResult, error)
}

// processError is the body of a failed process run. Error is the failure
// name.
type processError struct {
	Error         string   `json:"error"`
	Message       string   `json:"message,omitempty"`
	MissingFields []string `json:"missingFields,omitempty"`
}

func (h *Handler) runAddComponent(w http.ResponseWriter, r *http.Request) {
	var req processes.AddComponentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}

	result, err := h.addComponent.Run(r.Context(), req)
	if err == nil {
		httpjson.Content(w, http.StatusCreated, result)
		return
	}

	var failed *processes.Error
	if !errors.As(err, &failed) {
		h.logger.Error("Add component failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	body := processError{Error: string(failed.Failure), Message: failed.Error(), MissingFields: failed.MissingFields}
	switch failed.Failure {
	case processes.InvalidRequest, processes.MissingModelFields:
		httpjson.Write(w, http.StatusBadRequest, body)
	case processes.AmbiguousModel:
		httpjson.Write(w, http.StatusConflict, body)
	default:
		h.logger.Error("Add component failed", zap.Error(err))
		httpjson.Write(w, http.StatusInternalServerError, body)
	}
}
