package httpapi

import "net/http"

func (h *Handler) StartTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartTournament")
	defer span.End()

	started, err := h.tournamentService.GenerateBracket(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "start tournament failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := startTournamentDTO{Started: started}
	if count, err := h.teamService.CountTeams(ctx); err == nil {
		dto.TeamsCount = count
	}
	if started {
		matches, err := h.matchService.ListMatches(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "list matches after draw failed", "error", err)
			writeError(ctx, w, err)
			return
		}
		dto.Matches = matchesToDTO(ctx, matches)
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

func (h *Handler) ResetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetTournament")
	defer span.End()

	if err := h.tournamentService.ResetBracket(ctx); err != nil {
		h.logger.ErrorContext(ctx, "reset tournament failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	status, err := h.tournamentService.Status(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statusToDTO(ctx, status))
}

func (h *Handler) TournamentStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TournamentStatus")
	defer span.End()

	status, err := h.tournamentService.Status(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "tournament status failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statusToDTO(ctx, status))
}
