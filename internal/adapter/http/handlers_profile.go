package adapthttp

import (
	"net/http"

	"healthlog/internal/domain"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		p, setup := s.profile.Get(ctx)
		writeJSON(w, http.StatusOK, map[string]any{"setupComplete": setup, "profile": p})

	case http.MethodPut:
		var form domain.ProfileForm
		if err := parseJSON(r, &form); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		p, err := s.profile.Save(ctx, form)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"setupComplete": true, "profile": p})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.profile.Summary(r.Context()))
}
