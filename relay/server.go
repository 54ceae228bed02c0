// Package relay exposes the HTTP surface of the QuickBooks relay. Each
// handler reads the current session, injects the bearer credential
// into an upstream call and passes the response or a classified error
// back to the caller.
package relay

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/qbotools/quickbooksrelay/auth"
	"github.com/qbotools/quickbooksrelay/quickbooks"
	"github.com/qbotools/quickbooksrelay/session"
)

// Server holds the collaborators injected into the request handlers.
type Server struct {
	store *session.Store
	auth  *auth.Client
	books *quickbooks.Client
}

// NewServer returns a Server over the given session store, auth client
// and QuickBooks client.
func NewServer(store *session.Store, authClient *auth.Client, books *quickbooks.Client) *Server {
	return &Server{store: store, auth: authClient, books: books}
}

// Routes registers the relay endpoints on r.
func (s *Server) Routes(r *mux.Router) {
	r.HandleFunc("/", s.HandleRoot).Methods(http.MethodGet)
	r.HandleFunc("/auth", s.HandleAuth).Methods(http.MethodGet)
	r.HandleFunc("/callback", s.HandleCallback).Methods(http.MethodGet)
	r.HandleFunc("/customers", s.HandleCustomers).Methods(http.MethodGet)
	r.HandleFunc("/invoices/create", s.HandleCreateInvoice).Methods(http.MethodPost)
	r.HandleFunc("/transactions", s.HandleTransactions).Methods(http.MethodGet)
}
