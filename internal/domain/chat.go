package domain

import "time"

// RequestContext is the immutable per-request value object threaded through
// the pipeline. It is constructed once by the orchestrator and never mutated
// by later stages.
type RequestContext struct {
	SessionID     string
	CustomerEmail *string
	CustomerPhone *string
}

// ChatExchange is one recorded user message / bot response pair.
type ChatExchange struct {
	ID          string
	SessionID   string
	UserMessage string
	BotResponse string
	Intent      Intent
	AgentType   HandlerName
	CreatedAt   time.Time
}
