package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-chat-service/internal/domain"
)

// --- in-memory repositories ---

type memTicketRepo struct {
	tickets   []*domain.Ticket
	createErr error
}

func (r *memTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	if r.createErr != nil {
		return r.createErr
	}
	ticket.ID = fmt.Sprintf("ticket-%d", len(r.tickets)+1)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	r.tickets = append(r.tickets, &stored)
	return nil
}

func (r *memTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	for i, existing := range r.tickets {
		if existing.ID == ticket.ID {
			updated := *ticket
			r.tickets[i] = &updated
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	for _, ticket := range r.tickets {
		if ticket.ID == id {
			copied := *ticket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memTicketRepo) GetByNumber(ctx context.Context, ticketNumber string) (*domain.Ticket, error) {
	for _, ticket := range r.tickets {
		if ticket.TicketNumber == ticketNumber {
			copied := *ticket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memTicketRepo) ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.SessionID != nil && *ticket.SessionID == sessionID {
			result = append(result, *ticket)
		}
	}
	return result, nil
}

type memNotificationRepo struct {
	notifications []*domain.Notification
	createErr     error
	updateErr     error
	updateCalls   int
}

func (r *memNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	n.ID = fmt.Sprintf("notification-%d", len(r.notifications)+1)
	n.CreatedAt = time.Now()
	stored := *n
	r.notifications = append(r.notifications, &stored)
	return nil
}

func (r *memNotificationRepo) UpdateStatus(ctx context.Context, n *domain.Notification) error {
	r.updateCalls++
	if r.updateErr != nil {
		return r.updateErr
	}
	for i, existing := range r.notifications {
		if existing.ID == n.ID {
			updated := *n
			r.notifications[i] = &updated
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memNotificationRepo) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	for _, n := range r.notifications {
		if n.ID == id {
			copied := *n
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memNotificationRepo) ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]domain.Notification, error) {
	var result []domain.Notification
	for _, n := range r.notifications {
		if n.SessionID != nil && *n.SessionID == sessionID {
			result = append(result, *n)
		}
	}
	return result, nil
}

type memFAQRepo struct {
	records []domain.FAQRecord
	listErr error
}

func (r *memFAQRepo) Create(ctx context.Context, record *domain.FAQRecord) error {
	record.ID = fmt.Sprintf("faq-%d", len(r.records)+1)
	r.records = append(r.records, *record)
	return nil
}

func (r *memFAQRepo) ListActive(ctx context.Context) ([]domain.FAQRecord, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var result []domain.FAQRecord
	for _, record := range r.records {
		if record.IsActive {
			result = append(result, record)
		}
	}
	return result, nil
}

func (r *memFAQRepo) Count(ctx context.Context) (int, error) {
	return len(r.records), nil
}

type memExchangeRepo struct {
	exchanges []*domain.ChatExchange
}

func (r *memExchangeRepo) Create(ctx context.Context, exchange *domain.ChatExchange) error {
	exchange.ID = fmt.Sprintf("exchange-%d", len(r.exchanges)+1)
	exchange.CreatedAt = time.Now()
	stored := *exchange
	r.exchanges = append(r.exchanges, &stored)
	return nil
}

func (r *memExchangeRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.ChatExchange, error) {
	var result []domain.ChatExchange
	for _, exchange := range r.exchanges {
		if exchange.SessionID == sessionID {
			result = append(result, *exchange)
		}
	}
	return result, nil
}

// --- fake senders ---

type fakeEmailSender struct {
	err       error
	lastTo    string
	lastSubj  string
	lastBody  string
	sendCount int
}

func (s *fakeEmailSender) Send(ctx context.Context, from, to, subject, htmlBody string) error {
	s.sendCount++
	s.lastTo = to
	s.lastSubj = subject
	s.lastBody = htmlBody
	return s.err
}

type fakeSMSSender struct {
	err       error
	lastFrom  string
	lastTo    string
	lastBody  string
	sendCount int
}

func (s *fakeSMSSender) Send(ctx context.Context, from, to, body string) error {
	s.sendCount++
	s.lastFrom = from
	s.lastTo = to
	s.lastBody = body
	return s.err
}

func strPtr(s string) *string {
	return &s
}
