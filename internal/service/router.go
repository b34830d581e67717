package service

import (
	"errors"
	"fmt"

	"github.com/spec-kit/support-chat-service/internal/domain"
)

// ErrMissingIntent signals a caller contract violation: routing was requested
// without a classified intent. This is never silently defaulted.
var ErrMissingIntent = errors.New("intent required for routing")

var handlerTable = map[domain.Intent]domain.HandlerName{
	domain.IntentFAQ:            domain.HandlerFAQ,
	domain.IntentComplaint:      domain.HandlerTicket,
	domain.IntentAccountInquiry: domain.HandlerAccount,
	domain.IntentGeneral:        domain.HandlerFAQ,
}

// Router maps a classified intent to its support handler.
type Router struct{}

// NewRouter constructs a router over the static handler table.
func NewRouter() *Router {
	return &Router{}
}

// Route resolves the target handler for an intent. An empty intent is a
// caller error; an unrecognized intent value falls back to the FAQ handler
// with a reason noting the default.
func (r *Router) Route(intent domain.Intent) (domain.RoutingDecision, error) {
	if intent == "" {
		return domain.RoutingDecision{}, ErrMissingIntent
	}

	target, ok := handlerTable[intent]
	if !ok {
		return domain.RoutingDecision{
			Intent: intent,
			Target: domain.HandlerFAQ,
			Reason: fmt.Sprintf("intent %q not in routing table, defaulting to %s", intent, domain.HandlerFAQ),
		}, nil
	}

	return domain.RoutingDecision{
		Intent: intent,
		Target: target,
		Reason: fmt.Sprintf("intent %q mapped to %s", intent, target),
	}, nil
}
