package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/services"
)

const qrImageSize = 256

type assignRequest struct {
	Email string `json:"email"`
	Force bool   `json:"force"`
}

type sellRequest struct {
	Email string `json:"email"`
}

type statusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

type scanRequest struct {
	Payload string `json:"payload"`
}

type scanResponse struct {
	Ignored bool `json:"ignored"`
	*services.ValidationResult
}

type batchResponse struct {
	Tickets []domain.Ticket `json:"tickets"`
	Error   string          `json:"error,omitempty"`
}

type TicketHandler struct {
	svc    *services.TicketService
	policy services.AuthorizationPolicy
	logger *slog.Logger
}

func NewTicketHandler(svc *services.TicketService, policy services.AuthorizationPolicy, logger *slog.Logger) *TicketHandler {
	return &TicketHandler{svc: svc, policy: policy, logger: logger}
}

// MyTickets handles GET /me/tickets
func (h *TicketHandler) MyTickets(w http.ResponseWriter, r *http.Request) {
	principal, _ := services.PrincipalFrom(r.Context())

	tickets, err := h.svc.ListByHolder(r.Context(), principal.Email)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if tickets == nil {
		tickets = []domain.Ticket{}
	}

	writeJSON(w, http.StatusOK, tickets)
}

// GetTicket handles GET /tickets/{id}
// Holders see their own tickets; admins see any.
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticket, ok := h.visibleTicket(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, ticket)
}

// TicketQR handles GET /tickets/{id}/qr.png
func (h *TicketHandler) TicketQR(w http.ResponseWriter, r *http.Request) {
	ticket, ok := h.visibleTicket(w, r)
	if !ok {
		return
	}

	png, err := qrcode.Encode(h.svc.QRPayload(ticket), qrcode.Medium, qrImageSize)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// ListEventTickets handles GET /admin/events/{id}/tickets?status=
func (h *TicketHandler) ListEventTickets(w http.ResponseWriter, r *http.Request) {
	status := domain.TicketStatus(r.URL.Query().Get("status"))

	tickets, err := h.svc.ListByEvent(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if tickets == nil {
		tickets = []domain.Ticket{}
	}

	writeJSON(w, http.StatusOK, tickets)
}

// EventStats handles GET /admin/events/{id}/stats
func (h *TicketHandler) EventStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// CreateBatch handles POST /admin/tickets/batch
// A partially inserted batch answers 207 with the inserted tickets and the
// aggregated failure.
func (h *TicketHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	tickets, err := h.svc.CreateBatch(r.Context(), req)
	if err != nil && len(tickets) == 0 {
		respondError(w, r, h.logger, err)
		return
	}

	if tickets == nil {
		tickets = []domain.Ticket{}
	}

	if err != nil {
		h.logger.Warn("ticket batch partially created", "event_id", req.EventID, "created", len(tickets), "requested", req.Quantity, "error", err)
		writeJSON(w, http.StatusMultiStatus, batchResponse{Tickets: tickets, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, batchResponse{Tickets: tickets})
}

// Assign handles POST /admin/tickets/{id}/assign
func (h *TicketHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ticket, err := h.svc.AssignToHolder(r.Context(), chi.URLParam(r, "id"), req.Email, req.Force)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, ticket)
}

// Sell handles POST /admin/tickets/{id}/sell
func (h *TicketHandler) Sell(w http.ResponseWriter, r *http.Request) {
	var req sellRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ticket, err := h.svc.Sell(r.Context(), chi.URLParam(r, "id"), req.Email)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, ticket)
}

// SellLocal handles POST /admin/tickets/{id}/sell-local
func (h *TicketHandler) SellLocal(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.svc.SellLocal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, ticket)
}

// UpdateStatus handles PUT /admin/tickets/{id}/status
func (h *TicketHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Validate handles POST /admin/tickets/{id}/validate
// Rejections answer 200 with success=false; only store failures are errors.
func (h *TicketHandler) Validate(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Validate(r.Context(), chi.URLParam(r, "id"))
	h.writeValidation(w, r, result, err)
}

// Scan handles POST /admin/scan
// Payloads the scanner does not accept are acknowledged and ignored.
func (h *TicketHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.svc.ValidateScan(r.Context(), req.Payload)
	if errors.Is(err, domain.ErrPayloadIgnored) {
		writeJSON(w, http.StatusOK, scanResponse{Ignored: true})
		return
	}

	h.writeValidation(w, r, result, err)
}

func (h *TicketHandler) writeValidation(w http.ResponseWriter, r *http.Request, result *services.ValidationResult, err error) {
	if err != nil && result == nil {
		respondError(w, r, h.logger, err)
		return
	}
	if err != nil {
		h.logger.Error("ticket validation failed", "error", err)
		writeJSON(w, statusFor(err), result)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *TicketHandler) visibleTicket(w http.ResponseWriter, r *http.Request) (*domain.Ticket, bool) {
	principal, _ := services.PrincipalFrom(r.Context())

	ticket, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return nil, false
	}

	if h.policy.IsAdmin(principal) {
		return ticket, true
	}
	if ticket.HolderEmail == nil || *ticket.HolderEmail != principal.Email {
		respondError(w, r, h.logger, domain.ErrForbidden)
		return nil, false
	}

	return ticket, true
}
