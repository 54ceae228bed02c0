package relay

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/qbotools/quickbooksrelay/httperror"
	"github.com/qbotools/quickbooksrelay/session"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("response encoding")
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"error": msg})
}

// writeError maps the error taxonomy onto outer status codes: missing
// authentication becomes a 401, an upstream rejection a 502 carrying
// the upstream code in the body, and anything else a 502 with a
// generic error body.
func writeError(w http.ResponseWriter, msg string, err error) {
	log.Error().Err(err).Msg(msg)
	if errors.Is(err, session.ErrUnauthenticated) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Not authenticated"})
		return
	}
	var clientErr *httperror.ClientError
	if errors.As(err, &clientErr) {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":       msg,
			"status_code": clientErr.Code,
		})
		return
	}
	writeJSON(w, http.StatusBadGateway, map[string]any{"error": msg})
}
