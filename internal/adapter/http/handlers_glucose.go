package adapthttp

import (
	"net/http"

	"healthlog/internal/app"
	"healthlog/internal/domain"
)

func (s *Server) handleGlucoseCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var form domain.GlucoseForm
	if err := parseJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rec, err := s.glucose.Create(r.Context(), form)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": rec})
}

func (s *Server) handleGlucoseRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	limit := intQuery(r, "limit", app.DefaultGlucoseWindow)
	p, _ := s.profile.Get(ctx)
	writeJSON(w, http.StatusOK, map[string]any{
		"items": s.stats.RecentGlucose(ctx, limit),
		"unit":  domain.DisplayGlucoseUnit(p.GlucoseUnit),
	})
}

func (s *Server) handleGlucoseItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := pathID(r)

	switch r.Method {
	case http.MethodGet:
		rec, err := s.glucose.Get(ctx, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": rec})

	case http.MethodPut:
		var form domain.GlucoseForm
		if err := parseJSON(r, &form); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		rec, err := s.glucose.Update(ctx, id, form)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": rec})

	case http.MethodDelete:
		confirm := deleteConfirmer(r)
		if !confirm.Confirm(app.DeletePrompt) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": false})
			return
		}
		deleted, err := s.glucose.Delete(ctx, id, confirm)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !deleted {
			writeServiceError(w, domain.ErrNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": true})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
