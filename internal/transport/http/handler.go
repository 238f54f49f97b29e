// Package httptransport is the thin HTTP layer over the verification
// pipeline. Every mutating route runs the same straight line: decode, recover
// the signer, gate the action, touch the registry or ledger. Handlers hold no
// business logic beyond that sequencing.
package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"events-tracker/internal/authz"
	"events-tracker/internal/domain"
	"events-tracker/internal/ledger"
	"events-tracker/internal/platform/metrics"
	"events-tracker/internal/platform/middleware"
	"events-tracker/internal/registry"
	"events-tracker/internal/signing"
	dErrors "events-tracker/pkg/domain-errors"
)

const requestTimeout = 15 * time.Second

// HealthChecker reports backing store health for the liveness endpoint.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler wires the verification pipeline to routes.
type Handler struct {
	logger   *slog.Logger
	metrics  *metrics.Metrics
	verifier *signing.Verifier
	gate     *authz.Gate
	registry *registry.Service
	ledger   *ledger.Service
	health   HealthChecker
}

// New creates the HTTP handler.
func New(
	logger *slog.Logger,
	m *metrics.Metrics,
	verifier *signing.Verifier,
	gate *authz.Gate,
	reg *registry.Service,
	led *ledger.Service,
	health HealthChecker,
) *Handler {
	return &Handler{
		logger:   logger,
		metrics:  m,
		verifier: verifier,
		gate:     gate,
		registry: reg,
		ledger:   led,
		health:   health,
	}
}

// NewRouter builds the chi router with the shared middleware stack.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Timeout(requestTimeout))

	r.Post("/api/expenses", h.handleMemberExpense)
	r.Post("/api/admin/event", h.handleEventCreate)
	r.Post("/api/admin/events", h.handleEventsList)
	r.Post("/api/admin/expenses", h.handleExpensesList)
	r.Post("/api/admin/expense", h.handleAdminExpense)
	r.Get("/api/events/{slug}", h.handleEventGet)

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// recoverSigner runs verification and the signer match. It writes the
// response on failure and returns ok=false; callers proceed only with a
// verified address.
func (h *Handler) recoverSigner(w http.ResponseWriter, r *http.Request, kind domain.ActionKind, msg signing.Message, signature, claimedSigner string) (common.Address, bool) {
	recovered, err := h.verifier.Recover(kind, msg, signature)
	if err != nil {
		h.metrics.ActionsRejected.WithLabelValues(kind.String()).Inc()
		if signing.IsMalformed(err) {
			writeUnverified(w, http.StatusUnauthorized)
		} else {
			writeUnverified(w, http.StatusBadRequest)
		}
		return common.Address{}, false
	}

	if !common.IsHexAddress(claimedSigner) || common.HexToAddress(claimedSigner) != recovered {
		h.metrics.ActionsRejected.WithLabelValues(kind.String()).Inc()
		writeUnverified(w, http.StatusUnauthorized)
		return common.Address{}, false
	}

	h.metrics.ActionsVerified.WithLabelValues(kind.String()).Inc()
	return recovered, true
}

// authorize applies the gate. On denial it writes the per-policy response
// and returns false. The exact failing policy branch is not detailed beyond
// the short reason.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, kind domain.ActionKind, addr common.Address) bool {
	err := h.gate.Authorize(r.Context(), kind, addr)
	if err == nil {
		return true
	}
	h.metrics.ActionsDenied.WithLabelValues(kind.String()).Inc()
	if kind.RequiresMembership() {
		writeJSON(w, http.StatusForbidden, memberResponse{Verified: true, Member: false})
	} else {
		writeJSON(w, http.StatusForbidden, verifiedResponse{Verified: false, Message: dErrors.UserMessage(err)})
	}
	return false
}

// serviceError routes a registry/ledger error: coded business failures go
// out verbatim with 400, anything unexpected is logged and becomes a bare
// 500.
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	if dErrors.HasCode(err, dErrors.CodeInternal) || !isBusinessError(err) {
		h.logger.ErrorContext(r.Context(), "request failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeUnverified(w, http.StatusInternalServerError)
		return
	}
	writeBusinessError(w, dErrors.UserMessage(err))
}

func isBusinessError(err error) bool {
	return dErrors.HasCode(err, dErrors.CodeValidation) ||
		dErrors.HasCode(err, dErrors.CodeConflict) ||
		dErrors.HasCode(err, dErrors.CodeNotFound) ||
		dErrors.HasCode(err, dErrors.CodeBadRequest)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeUnverified(w, http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) handleMemberExpense(w http.ResponseWriter, r *http.Request) {
	var req memberExpenseRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Signature == "" || req.Signer == "" || req.Event == "" || req.Amount == 0 ||
		req.Action != domain.ActionMemberExpense.String() {
		writeUnverified(w, http.StatusBadRequest)
		return
	}

	msg := signing.Message{Event: req.Event, Amount: req.Amount}
	addr, ok := h.recoverSigner(w, r, domain.ActionMemberExpense, msg, req.Signature, req.Signer)
	if !ok {
		return
	}
	if !h.authorize(w, r, domain.ActionMemberExpense, addr) {
		return
	}

	if err := h.ledger.Submit(r.Context(), registry.Slugify(req.Event), addr, req.Amount); err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.metrics.ExpensesRecorded.Inc()
	writeJSON(w, http.StatusCreated, memberResponse{Verified: true, Member: true})
}

func (h *Handler) handleEventCreate(w http.ResponseWriter, r *http.Request) {
	var req adminEventCreateRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Signature == "" || req.Signer == "" || req.Event == "" {
		writeBusinessError(w, "Wrong parameters")
		return
	}

	msg := signing.Message{Event: req.Event}
	addr, ok := h.recoverSigner(w, r, domain.ActionEventCreate, msg, req.Signature, req.Signer)
	if !ok {
		return
	}
	if !h.authorize(w, r, domain.ActionEventCreate, addr) {
		return
	}

	slug, err := h.registry.Create(r.Context(), req.Event)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.metrics.EventsCreated.Inc()
	writeJSON(w, http.StatusCreated, eventCreatedResponse{Verified: true, Created: true, Slug: slug})
}

func (h *Handler) handleEventsList(w http.ResponseWriter, r *http.Request) {
	var req adminEventsListRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Signature == "" || req.Signer == "" {
		writeBusinessError(w, "Wrong parameters")
		return
	}

	addr, ok := h.recoverSigner(w, r, domain.ActionEventsShow, signing.Message{}, req.Signature, req.Signer)
	if !ok {
		return
	}
	if !h.authorize(w, r, domain.ActionEventsShow, addr) {
		return
	}

	events, err := h.registry.List(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	if events == nil {
		events = []string{}
	}
	writeJSON(w, http.StatusCreated, eventsListResponse{Verified: true, Events: events})
}

func (h *Handler) handleExpensesList(w http.ResponseWriter, r *http.Request) {
	var req adminExpensesListRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Signature == "" || req.Signer == "" || req.Event == "" {
		writeBusinessError(w, "Wrong parameters")
		return
	}

	msg := signing.Message{Event: req.Event}
	addr, ok := h.recoverSigner(w, r, domain.ActionExpensesShow, msg, req.Signature, req.Signer)
	if !ok {
		return
	}
	if !h.authorize(w, r, domain.ActionExpensesShow, addr) {
		return
	}

	expenses, err := h.ledger.List(r.Context(), registry.Slugify(req.Event))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, expensesListResponse{Verified: true, Expenses: toExpenseViews(expenses)})
}

func (h *Handler) handleAdminExpense(w http.ResponseWriter, r *http.Request) {
	var req adminExpenseAddRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Signature == "" || req.Signer == "" || req.Event == "" || req.Amount == 0 || req.Address == "" {
		writeBusinessError(w, "Wrong parameters")
		return
	}

	msg := signing.Message{Event: req.Event, Amount: req.Amount, Address: req.Address}
	addr, ok := h.recoverSigner(w, r, domain.ActionAdminExpense, msg, req.Signature, req.Signer)
	if !ok {
		return
	}
	if !h.authorize(w, r, domain.ActionAdminExpense, addr) {
		return
	}

	// The booked address comes from the signed message, not the admin's key.
	beneficiary := common.HexToAddress(req.Address)
	if err := h.ledger.Submit(r.Context(), registry.Slugify(req.Event), beneficiary, req.Amount); err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.metrics.ExpensesRecorded.Inc()
	writeJSON(w, http.StatusCreated, memberResponse{Verified: true, Member: true})
}

// handleEventGet is the public, unauthenticated read path.
func (h *Handler) handleEventGet(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	event, err := h.registry.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, eventResponse{Error: true, Message: "No Event"})
			return
		}
		h.logger.ErrorContext(r.Context(), "event lookup failed",
			"error", err,
			"slug", slug,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeJSON(w, http.StatusInternalServerError, eventResponse{Error: true})
		return
	}
	writeJSON(w, http.StatusCreated, eventResponse{Error: false, Event: event.Name})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
