package domain

// Intent enumerates the classified purpose of an inbound message.
type Intent string

const (
	IntentFAQ            Intent = "faq"
	IntentComplaint      Intent = "complaint"
	IntentAccountInquiry Intent = "account_inquiry"
	IntentGeneral        Intent = "general"
)

// ParseIntent maps a raw token to a known intent, collapsing anything
// unrecognized to IntentGeneral.
func ParseIntent(raw string) Intent {
	switch Intent(raw) {
	case IntentFAQ, IntentComplaint, IntentAccountInquiry, IntentGeneral:
		return Intent(raw)
	default:
		return IntentGeneral
	}
}

// ClassificationSource identifies which classification path produced a result.
type ClassificationSource string

const (
	SourceKeyword ClassificationSource = "keyword"
	SourceModel   ClassificationSource = "model"
)

// ClassificationResult is the immutable outcome of classifying one message.
type ClassificationResult struct {
	Intent     Intent
	Confidence float64
	Rationale  string
	Source     ClassificationSource
}

// HandlerName identifies a support handler in the routing table.
type HandlerName string

const (
	HandlerFAQ     HandlerName = "FAQHandler"
	HandlerTicket  HandlerName = "TicketHandler"
	HandlerAccount HandlerName = "AccountHandler"
)

// RoutingDecision records where a classified message was sent and why.
type RoutingDecision struct {
	Intent Intent
	Target HandlerName
	Reason string
}
