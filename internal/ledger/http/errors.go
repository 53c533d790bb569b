package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cinefin/cinefin/internal/ledger/shared"
	"github.com/cinefin/cinefin/internal/platform/httpx"
)

// respondError maps ledger errors to problem responses. Validation failures
// echo the domain message (it carries the computed totals); store failures
// stay generic and get logged.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, shared.ErrInsufficientLines),
		errors.Is(err, shared.ErrLineBothSides),
		errors.Is(err, shared.ErrLineNoSide),
		errors.Is(err, shared.ErrUnbalanced):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrAccountExists):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrAccountNotFound), errors.Is(err, shared.ErrEntryNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		if logger != nil {
			logger.Error("ledger request failed", slog.Any("error", err))
		}
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
