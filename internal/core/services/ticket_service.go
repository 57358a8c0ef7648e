package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/ports"
	"github.com/srgjo27/event_ticketing/internal/platform/metrics"
)

const (
	MsgValidated       = "ticket validated"
	MsgAlreadyUsed     = "already used"
	MsgNotSold         = "not sold"
	MsgPaymentPending  = "payment pending"
	MsgValidationError = "error validating ticket"
)

const (
	defaultCodeAttempts = 5
	maxBatchQuantity    = 1000
)

type CodeGenerator interface {
	NewCode() (string, error)
}

type CreateBatchRequest struct {
	EventID      string              `json:"event_id"`
	TicketTypeID string              `json:"ticket_type_id"`
	Quantity     int                 `json:"quantity"`
	Status       domain.TicketStatus `json:"status"`
}

type ValidationResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Ticket  *domain.Ticket `json:"ticket,omitempty"`
}

type TicketServiceConfig struct {
	// MaxCodeAttempts bounds how often a colliding ticket code is regenerated.
	MaxCodeAttempts int
	LocalSaleEmail  string
	// QRTrailer defaults to domain.DefaultQRTrailer.
	QRTrailer string
	Codes     CodeGenerator
	Now       func() time.Time
}

type TicketService struct {
	ticketRepo     ports.TicketRepository
	ticketTypeRepo ports.TicketTypeRepository
	codes          CodeGenerator
	scanner        domain.QRScanner
	cfg            TicketServiceConfig
	logger         *slog.Logger
}

func NewTicketService(ticketRepo ports.TicketRepository, ticketTypeRepo ports.TicketTypeRepository, cfg TicketServiceConfig, logger *slog.Logger) *TicketService {
	if cfg.MaxCodeAttempts <= 0 {
		cfg.MaxCodeAttempts = defaultCodeAttempts
	}
	if cfg.QRTrailer == "" {
		cfg.QRTrailer = domain.DefaultQRTrailer
	}
	if cfg.Codes == nil {
		cfg.Codes = domain.TicketCodeGenerator{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = nopLogger()
	}

	return &TicketService{
		ticketRepo:     ticketRepo,
		ticketTypeRepo: ticketTypeRepo,
		codes:          cfg.Codes,
		scanner:        domain.QRScanner{Trailer: cfg.QRTrailer},
		cfg:            cfg,
		logger:         logger,
	}
}

// CreateBatch inserts req.Quantity tickets one row at a time. Rows that fail
// are reported together in the returned error; rows already inserted stay.
func (s *TicketService) CreateBatch(ctx context.Context, req CreateBatchRequest) ([]domain.Ticket, error) {
	if req.EventID == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrValidation)
	}
	if req.TicketTypeID == "" {
		return nil, fmt.Errorf("%w: ticket type id is required", domain.ErrValidation)
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}
	if req.Quantity > maxBatchQuantity {
		return nil, fmt.Errorf("%w: quantity cannot exceed %d", domain.ErrValidation, maxBatchQuantity)
	}
	if req.Status == "" {
		req.Status = domain.TicketAvailable
	}
	if !req.Status.ValidInitial() {
		return nil, fmt.Errorf("%w: invalid initial status %q", domain.ErrValidation, req.Status)
	}

	ticketType, err := s.ticketTypeRepo.GetByID(ctx, req.TicketTypeID)
	if err != nil {
		return nil, err
	}
	if ticketType.EventID != req.EventID {
		return nil, fmt.Errorf("%w: ticket type does not belong to this event", domain.ErrValidation)
	}

	created := make([]domain.Ticket, 0, req.Quantity)
	var errs []error

	for i := 0; i < req.Quantity; i++ {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		ticket, err := s.insertWithFreshCode(ctx, req)
		if err != nil {
			errs = append(errs, fmt.Errorf("ticket %d/%d: %w", i+1, req.Quantity, err))
			continue
		}

		created = append(created, *ticket)
	}

	metrics.TrackTicketsCreated(string(req.Status), len(created))

	if len(errs) > 0 {
		s.logger.Warn("ticket batch partially failed",
			"event_id", req.EventID,
			"requested", req.Quantity,
			"created", len(created),
			"failed", len(errs),
		)
		return created, errors.Join(errs...)
	}

	s.logger.Info("ticket batch created", "event_id", req.EventID, "ticket_type_id", req.TicketTypeID, "count", len(created), "status", req.Status)

	return created, nil
}

func (s *TicketService) insertWithFreshCode(ctx context.Context, req CreateBatchRequest) (*domain.Ticket, error) {
	for attempt := 1; attempt <= s.cfg.MaxCodeAttempts; attempt++ {
		code, err := s.codes.NewCode()
		if err != nil {
			return nil, err
		}

		now := s.cfg.Now().UTC()
		ticket := &domain.Ticket{
			ID:           code,
			EventID:      req.EventID,
			TicketTypeID: req.TicketTypeID,
			Status:       req.Status,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		err = s.ticketRepo.Insert(ctx, ticket)
		if err == nil {
			return ticket, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}

		metrics.TrackCodeCollision()
		s.logger.Warn("ticket code collision", "code", code, "attempt", attempt)
	}

	return nil, fmt.Errorf("%w: no unused ticket code after %d attempts", domain.ErrConflict, s.cfg.MaxCodeAttempts)
}

// AssignToHolder sells ticketID to email. With force the holder and status
// are overwritten whatever the current status is. Otherwise the ticket must
// be available and the write is version checked.
func (s *TicketService) AssignToHolder(ctx context.Context, ticketID, email string, force bool) (*domain.Ticket, error) {
	if ticketID == "" {
		return nil, fmt.Errorf("%w: ticket id is required", domain.ErrValidation)
	}

	email = normalizeEmail(email)
	if !isValidEmail(email) {
		return nil, fmt.Errorf("%w: %q is not a valid email address", domain.ErrValidation, email)
	}

	mode := "checked"
	if force {
		mode = "force"
	}

	ticket, err := s.assign(ctx, ticketID, email, force)
	if err != nil {
		metrics.TrackAssignment(mode, "error")
		return nil, err
	}

	metrics.TrackAssignment(mode, "ok")
	s.logger.Info("ticket assigned", "ticket_id", ticketID, "holder", email, "mode", mode)

	return ticket, nil
}

func (s *TicketService) assign(ctx context.Context, ticketID, email string, force bool) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	sold := domain.TicketSold
	patch := domain.TicketPatch{Status: &sold, HolderEmail: &email}

	if force {
		if err := s.ticketRepo.Update(ctx, ticketID, patch); err != nil {
			return nil, err
		}
		updated := patch.Apply(*ticket)
		return &updated, nil
	}

	if !ticket.IsAvailable() {
		return nil, fmt.Errorf("%w: ticket %s is not available (status: %s)", domain.ErrConflict, ticketID, ticket.Status)
	}

	if err := s.ticketRepo.UpdateIfVersion(ctx, ticketID, ticket.Version, patch); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: ticket %s was modified by another request", domain.ErrConflict, ticketID)
		}
		return nil, err
	}

	updated := patch.Apply(*ticket)
	return &updated, nil
}

func (s *TicketService) Sell(ctx context.Context, ticketID, email string) (*domain.Ticket, error) {
	return s.AssignToHolder(ctx, ticketID, email, false)
}

// SellLocal sells an available ticket at the door to the box-office address.
func (s *TicketService) SellLocal(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	if s.cfg.LocalSaleEmail == "" {
		return nil, fmt.Errorf("%w: local sale email is not configured", domain.ErrValidation)
	}
	return s.AssignToHolder(ctx, ticketID, s.cfg.LocalSaleEmail, false)
}

// UpdateStatus writes status without checking the transition.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID string, status domain.TicketStatus) error {
	if ticketID == "" {
		return fmt.Errorf("%w: ticket id is required", domain.ErrValidation)
	}
	if !status.Valid() {
		return fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}

	if err := s.ticketRepo.Update(ctx, ticketID, domain.TicketPatch{Status: &status}); err != nil {
		return err
	}

	s.logger.Info("ticket status overwritten", "ticket_id", ticketID, "status", status)
	return nil
}

// Validate admits the holder of a sold ticket, moving it to used. Rejections
// come back as an unsuccessful result with a nil error. The returned ticket
// is the one read before the write, so its status is stale on success.
func (s *TicketService) Validate(ctx context.Context, ticketID string) (*ValidationResult, error) {
	if ticketID == "" {
		return nil, fmt.Errorf("%w: ticket id is required", domain.ErrValidation)
	}

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.TrackValidation("not found")
		}
		return nil, err
	}

	result, err := s.validate(ctx, ticket)
	if errors.Is(err, domain.ErrConflict) {
		// Someone wrote the ticket between our read and write.
		ticket, err = s.ticketRepo.GetByID(ctx, ticketID)
		if err != nil {
			return nil, err
		}
		result, err = s.validate(ctx, ticket)
		if errors.Is(err, domain.ErrConflict) {
			result = &ValidationResult{Success: false, Message: MsgValidationError, Ticket: ticket}
		}
	}

	metrics.TrackValidation(result.Message)

	if err != nil {
		s.logger.Error("ticket validation failed", "ticket_id", ticketID, "error", err)
		return result, err
	}
	if !result.Success {
		s.logger.Info("ticket rejected", "ticket_id", ticketID, "status", ticket.Status, "reason", result.Message)
	}

	return result, nil
}

func (s *TicketService) validate(ctx context.Context, ticket *domain.Ticket) (*ValidationResult, error) {
	switch ticket.Status {
	case domain.TicketUsed:
		return &ValidationResult{Message: MsgAlreadyUsed, Ticket: ticket}, nil
	case domain.TicketAvailable:
		return &ValidationResult{Message: MsgNotSold, Ticket: ticket}, nil
	case domain.TicketReserved:
		return &ValidationResult{Message: MsgPaymentPending, Ticket: ticket}, nil
	case domain.TicketSold:
	default:
		return &ValidationResult{Message: MsgValidationError, Ticket: ticket},
			fmt.Errorf("%w: ticket %s has unknown status %q", domain.ErrValidation, ticket.ID, ticket.Status)
	}

	used := domain.TicketUsed
	err := s.ticketRepo.UpdateIfVersion(ctx, ticket.ID, ticket.Version, domain.TicketPatch{Status: &used})
	if errors.Is(err, domain.ErrConflict) {
		return nil, err
	}
	if err != nil {
		if !errors.Is(err, domain.ErrPersistence) {
			err = fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		return &ValidationResult{Message: MsgValidationError, Ticket: ticket}, err
	}

	return &ValidationResult{Success: true, Message: MsgValidated, Ticket: ticket}, nil
}

// ValidateScan validates the ticket named in a scanned QR payload. Payloads
// the scanner does not accept return domain.ErrPayloadIgnored.
func (s *TicketService) ValidateScan(ctx context.Context, payload string) (*ValidationResult, error) {
	ticketID, ok := s.scanner.Parse(payload)
	if !ok {
		return nil, domain.ErrPayloadIgnored
	}
	return s.Validate(ctx, ticketID)
}

func (s *TicketService) QRPayload(ticket *domain.Ticket) string {
	var name, date string
	if ticket.Event != nil {
		name, date = ticket.Event.Name, ticket.Event.Date
	}
	return domain.FormatQRPayload(ticket.ID, name, date)
}

func (s *TicketService) Get(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	if ticketID == "" {
		return nil, fmt.Errorf("%w: ticket id is required", domain.ErrValidation)
	}
	return s.ticketRepo.GetByID(ctx, ticketID)
}

// ListByEvent returns the event's tickets, optionally only those in status.
func (s *TicketService) ListByEvent(ctx context.Context, eventID string, status domain.TicketStatus) ([]domain.Ticket, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrValidation)
	}
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}

	tickets, err := s.ticketRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return tickets, nil
	}

	filtered := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (s *TicketService) ListByHolder(ctx context.Context, email string) ([]domain.Ticket, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	return s.ticketRepo.ListByHolder(ctx, email)
}

func (s *TicketService) Stats(ctx context.Context, eventID string) (domain.TicketStats, error) {
	tickets, err := s.ListByEvent(ctx, eventID, "")
	if err != nil {
		return domain.TicketStats{}, err
	}
	return domain.CountByStatus(tickets), nil
}
