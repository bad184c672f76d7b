package adapthttp

import (
	"net/http"

	"healthlog/internal/app"
	"healthlog/internal/domain"
)

func (s *Server) handleWeightCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var form domain.WeightForm
	if err := parseJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rec, merged, err := s.weight.Create(r.Context(), form)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	status := http.StatusCreated
	if merged {
		status = http.StatusOK
	}
	writeJSON(w, status, map[string]any{"entry": rec, "merged": merged})
}

func (s *Server) handleWeightRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	limit := intQuery(r, "limit", app.DefaultWeightWindow)
	writeJSON(w, http.StatusOK, map[string]any{
		"today": s.weight.Today(),
		"items": s.stats.RecentWeight(r.Context(), limit),
	})
}

func (s *Server) handleWeightItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := pathID(r)

	switch r.Method {
	case http.MethodGet:
		rec, err := s.weight.Get(ctx, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": rec})

	case http.MethodPut:
		var form domain.WeightForm
		if err := parseJSON(r, &form); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		rec, err := s.weight.Update(ctx, id, form)
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
		deleted, err := s.weight.Delete(ctx, id, confirm)
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
