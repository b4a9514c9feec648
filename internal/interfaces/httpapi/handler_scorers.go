package httpapi

import "net/http"

func (h *Handler) ListTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopScorers")
	defer span.End()

	scorers, err := h.scorerService.GetTopScorers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "top scorers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, topScorersToDTO(scorers))
}
