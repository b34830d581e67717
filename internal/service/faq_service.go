package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-chat-service/internal/classifier"
	"github.com/spec-kit/support-chat-service/internal/domain"
	"github.com/spec-kit/support-chat-service/internal/repository"
)

const noMatchResponse = `I don't have a specific FAQ that matches your question, but I'd be happy to help!

Here are a few things you can try:
- Check our help center for more detailed guides
- Contact our support team for personalized assistance
- Try rephrasing your question with different keywords

Is there anything specific I can help you with?`

// FAQService ranks catalog records against a message and assembles the FAQ
// handler response.
type FAQService struct {
	faqs   repository.FAQRepository
	logger *zap.Logger
}

// NewFAQService constructs the service.
func NewFAQService(faqs repository.FAQRepository, logger *zap.Logger) *FAQService {
	return &FAQService{faqs: faqs, logger: logger}
}

// Rank scores candidates against the message and returns survivors ordered
// by score descending. Equal scores keep candidate input order (stable
// sort); records scoring zero or below are excluded.
func (s *FAQService) Rank(message string, candidates []domain.FAQRecord) []domain.ScoredFAQ {
	keywords := classifier.ExtractKeywords(message)
	lowered := strings.ToLower(message)

	scored := make([]domain.ScoredFAQ, 0, len(candidates))
	for _, record := range candidates {
		score := scoreRecord(lowered, keywords, record)
		if score <= 0 {
			continue
		}
		scored = append(scored, domain.ScoredFAQ{Record: record, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func scoreRecord(loweredMessage string, keywords []string, record domain.FAQRecord) float64 {
	recordText := strings.ToLower(record.Question + " " + record.Answer)

	score := 0.0
	for _, keyword := range keywords {
		if strings.Contains(recordText, keyword) {
			score += 1.0
		}
	}
	for _, recordKeyword := range record.Keywords {
		if strings.Contains(loweredMessage, strings.ToLower(recordKeyword)) {
			score += 1.5
		}
	}
	return score
}

// HandlerResult is the outcome of one support handler invocation.
type HandlerResult struct {
	Response             string
	TicketID             *string
	TicketNumber         *string
	RequiresNotification bool
	RequiresVerification bool
}

// Process answers a message from the FAQ catalog: the top-ranked record is
// the primary answer, ranks two and three become secondary suggestions. A
// catalog read failure degrades to the generic guidance response rather than
// failing the chat.
func (s *FAQService) Process(ctx context.Context, message string, reqCtx domain.RequestContext) HandlerResult {
	records, err := s.faqs.ListActive(ctx)
	if err != nil {
		s.logger.Error("faq catalog unavailable", zap.Error(err))
		return HandlerResult{Response: noMatchResponse}
	}

	ranked := s.Rank(message, records)
	if len(ranked) == 0 {
		return HandlerResult{Response: noMatchResponse}
	}

	best := ranked[0].Record
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your question, here's what I found:\n\n")
	fmt.Fprintf(&b, "Q: %s\nA: %s\n", best.Question, best.Answer)

	if len(ranked) > 1 {
		b.WriteString("\nYou might also find these helpful:\n")
		for _, suggestion := range ranked[1:min(len(ranked), 3)] {
			fmt.Fprintf(&b, "- %s\n", suggestion.Record.Question)
		}
	}
	b.WriteString("\nIf this doesn't answer your question, please let me know and I'll be happy to help further!")

	return HandlerResult{Response: b.String()}
}
