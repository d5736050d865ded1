package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"invoiceflow/auth"
	"invoiceflow/cache"
	"invoiceflow/customer"
	"invoiceflow/dashboard"
	"invoiceflow/invoice"
	"invoiceflow/nav"
)

const listingCacheTTL = 5 * time.Minute

// invoiceWorkflow is the mutation surface the handlers drive.
type invoiceWorkflow interface {
	Create(ctx context.Context, form invoice.Form) invoice.Outcome
	Update(ctx context.Context, id string, form invoice.Form) invoice.Outcome
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]invoice.Invoice, error)
}

// sessionWorkflow is the sign-in/sign-out surface the handlers drive.
type sessionWorkflow interface {
	SignInForm(ctx context.Context, creds auth.Credentials) nav.Redirect
	SignOutForm(ctx context.Context, token string) nav.Redirect
	CurrentUser(ctx context.Context, token string) (*auth.User, error)
	ListUsers(ctx context.Context) ([]auth.User, error)
}

type customerLister interface {
	List(ctx context.Context) ([]customer.Customer, error)
}

// Server wires the form workflows and page dumps onto plain net/http.
type Server struct {
	invoiceService  invoiceWorkflow
	sessionService  sessionWorkflow
	customerService customerLister
	dashService     *dashboard.Service
	listings        cache.Store
	log             *zap.Logger
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/invoices", s.handleInvoices)
	mux.HandleFunc("/api/invoices/", s.handleInvoiceDetail)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc(nav.RouteDashboard, s.handleDashboard)
	mux.HandleFunc(nav.RouteInvoiceList, s.handleInvoiceListing)
	mux.HandleFunc("/dashboard/customers", s.handleCustomers)
	mux.HandleFunc("/notes", s.handleNotes)
	return mux
}

// handleInvoices accepts the create form.
func (s *Server) handleInvoices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	outcome := s.invoiceService.Create(r.Context(), formFromRequest(r))
	s.writeOutcome(w, r, outcome)
}

// handleInvoiceDetail accepts the update form at /api/invoices/{id} and the
// delete form at /api/invoices/{id}/delete.
func (s *Server) handleInvoiceDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/invoices/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		http.Error(w, "missing invoice id", http.StatusBadRequest)
		return
	}

	switch action {
	case "":
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		outcome := s.invoiceService.Update(r.Context(), id, formFromRequest(r))
		s.writeOutcome(w, r, outcome)
	case "delete":
		if err := s.invoiceService.Delete(r.Context(), id); err != nil {
			s.log.Error("delete invoice", zap.String("id", id), zap.Error(err))
			http.Error(w, "delete failed", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, nav.RouteInvoiceList, http.StatusSeeOther)
	default:
		http.Error(w, "unknown action", http.StatusNotFound)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	redirect := s.sessionService.SignInForm(r.Context(), auth.Credentials{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	})

	if redirect.Token != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     "session",
			Value:    redirect.Token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	http.Redirect(w, r, redirect.Target, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	redirect := s.sessionService.SignOutForm(r.Context(), sessionToken(r))
	http.SetCookie(w, &http.Cookie{Name: "session", Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, redirect.Target, http.StatusSeeOther)
}

// handleDashboard dumps the full snapshot as indented JSON text.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap, err := s.dashService.Load(r.Context())
	if err != nil {
		s.log.Error("load dashboard", zap.Error(err))
		http.Error(w, "dashboard unavailable", http.StatusInternalServerError)
		return
	}

	s.writeDump(w, snap)
}

// handleInvoiceListing serves the cached invoice listing, recomputing it on
// a miss. Mutations invalidate this entry, so a fresh read always follows a
// committed write.
func (s *Server) handleInvoiceListing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.listings != nil {
		if body, err := s.listings.Get(r.Context(), nav.RouteInvoiceList); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		} else if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn("listing cache read", zap.Error(err))
		}
	}

	invoices, err := s.invoiceService.List(r.Context())
	if err != nil {
		s.log.Error("list invoices", zap.Error(err))
		http.Error(w, "listing unavailable", http.StatusInternalServerError)
		return
	}

	body, err := dashboard.RenderJSON(invoices)
	if err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	if s.listings != nil {
		if err := s.listings.Set(r.Context(), nav.RouteInvoiceList, []byte(body), listingCacheTTL); err != nil {
			s.log.Warn("listing cache write", zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	customers, err := s.customerService.List(r.Context())
	if err != nil {
		s.log.Error("list customers", zap.Error(err))
		http.Error(w, "customers unavailable", http.StatusInternalServerError)
		return
	}

	s.writeDump(w, customers)
}

// handleNotes dumps every user row, the notes page behavior.
func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	users, err := s.sessionService.ListUsers(r.Context())
	if err != nil {
		s.log.Error("list users", zap.Error(err))
		http.Error(w, "notes unavailable", http.StatusInternalServerError)
		return
	}

	s.writeDump(w, users)
}

// writeOutcome maps a mutation outcome onto the wire: rejected forms come
// back as 422 with the field errors, committed mutations redirect.
func (s *Server) writeOutcome(w http.ResponseWriter, r *http.Request, outcome invoice.Outcome) {
	if outcome.Form != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"errors":  outcome.Form.Errors,
			"message": outcome.Form.Message,
		})
		return
	}
	http.Redirect(w, r, outcome.Redirect, http.StatusSeeOther)
}

func (s *Server) writeDump(w http.ResponseWriter, v any) {
	body, err := dashboard.RenderJSON(v)
	if err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func formFromRequest(r *http.Request) invoice.Form {
	return invoice.Form{
		CustomerID: r.PostFormValue("customerId"),
		Amount:     r.PostFormValue("amount"),
		Status:     r.PostFormValue("status"),
	}
}

// sessionToken finds the session in the cookie or a bearer header.
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie("session"); err == nil {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
