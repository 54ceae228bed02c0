package relay

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/qbotools/quickbooksrelay/quickbooks"
	"github.com/qbotools/quickbooksrelay/session"
)

// HandleRoot reports service status and the authorized company name.
// A failed company lookup triggers an opportunistic token refresh,
// the relay's only refresh heuristic; the endpoint itself always
// answers 200.
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	company := "No company authenticated"
	sess := s.store.Current()
	if sess.IsAuthenticated() {
		name, err := s.books.CompanyInfo(r.Context(), sess.AccessToken, sess.RealmID)
		if err != nil {
			log.Warn().Err(err).Msg("company lookup failed, refreshing session")
			if _, rerr := s.store.Refresh(r.Context()); rerr != nil {
				log.Error().Err(rerr).Msg("session refresh failed")
			}
		} else {
			company = name
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to QuickBooks API",
		"Company": company,
	})
}

// HandleAuth redirects the caller to the provider consent page with a
// fresh anti-forgery state. Nothing is stored locally until the
// provider calls back.
func (s *Server) HandleAuth(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.Redirect(w, r, s.auth.AuthorizationURL(state), http.StatusSeeOther)
}

// HandleCallback completes the authorization-code exchange and
// replaces the persisted session wholesale. Missing code or state
// fails before the session is touched.
func (s *Server) HandleCallback(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	code := params.Get("code")
	state := params.Get("state")
	realmID := params.Get("realmId")

	if code == "" || state == "" {
		writeBadRequest(w, "Missing code or state parameter")
		return
	}

	grant, err := s.auth.Exchange(r.Context(), code)
	if err != nil {
		writeError(w, "Authorization failed", err)
		return
	}
	next := session.Session{
		State:        state,
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		RealmID:      realmID,
		TokenExpiry:  grant.ExpiresIn,
	}
	if err := s.store.Put(next); err != nil {
		writeError(w, "Failed to persist session", err)
		return
	}
	log.Info().Str("realm_id", realmID).Msg("authorization complete")
	writeJSON(w, http.StatusOK, map[string]any{"message": "Authorization successful"})
}

// HandleCustomers lists the authorized company's customers, unwrapped
// from the query response.
func (s *Server) HandleCustomers(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Current()
	if !sess.IsAuthenticated() {
		writeError(w, "Not authenticated", session.ErrUnauthenticated)
		return
	}
	customers, err := s.books.Customers(r.Context(), sess.AccessToken, sess.RealmID)
	if err != nil {
		writeError(w, "Failed to fetch customers", err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

// HandleCreateInvoice validates the invoice body and creates the
// invoice upstream, returning the provider's response untouched.
func (s *Server) HandleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Current()
	if !sess.IsAuthenticated() {
		writeError(w, "Not authenticated", session.ErrUnauthenticated)
		return
	}
	invoice, err := quickbooks.DecodeInvoice(r.Body)
	if err != nil {
		log.Warn().Err(err).Msg("invoice rejected")
		writeBadRequest(w, "Invalid invoice body")
		return
	}
	created, err := s.books.CreateInvoice(r.Context(), sess.AccessToken, sess.RealmID, invoice)
	if err != nil {
		writeError(w, "Failed to create invoice", err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// HandleTransactions returns the transaction list report.
func (s *Server) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Current()
	if !sess.IsAuthenticated() {
		writeError(w, "Not authenticated", session.ErrUnauthenticated)
		return
	}
	report, err := s.books.Transactions(r.Context(), sess.AccessToken, sess.RealmID)
	if err != nil {
		writeError(w, "Failed to fetch transactions", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
