package classifier

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-chat-service/internal/domain"
)

const (
	confidenceModel   = 0.8
	confidenceKeyword = 0.6
	confidenceUnknown = 0.5
)

// patternGroup is one themed set of word-boundary terms for an intent.
type patternGroup struct {
	theme string
	re    *regexp.Regexp
}

// intentPatterns holds the ordered pattern groups for one intent.
type intentPatterns struct {
	intent domain.Intent
	groups []patternGroup
}

// scoringOrder fixes the tie-break: when two intents score equal and
// positive, the one listed first here wins.
var scoringOrder = []intentPatterns{
	{
		intent: domain.IntentFAQ,
		groups: []patternGroup{
			{theme: "question words", re: regexp.MustCompile(`\b(how|what|when|where|why|can|could|would|should)\b`)},
			{theme: "guidance terms", re: regexp.MustCompile(`\b(help|guide|tutorial|instructions|explain)\b`)},
			{theme: "policy terms", re: regexp.MustCompile(`\b(policy|procedure|process|steps)\b`)},
		},
	},
	{
		intent: domain.IntentComplaint,
		groups: []patternGroup{
			{theme: "problem terms", re: regexp.MustCompile(`\b(problem|issue|error|bug|broken|not working|failed|wrong)\b`)},
			{theme: "dissatisfaction terms", re: regexp.MustCompile(`\b(complain|complaint|unhappy|dissatisfied|angry|frustrated|furious)\b`)},
			{theme: "refund terms", re: regexp.MustCompile(`\b(refund|cancel|dispute|report)\b`)},
		},
	},
	{
		intent: domain.IntentAccountInquiry,
		groups: []patternGroup{
			{theme: "account terms", re: regexp.MustCompile(`\b(account|profile|billing|payment|subscription|plan)\b`)},
			{theme: "access terms", re: regexp.MustCompile(`\b(login|password|username|access|verify|update)\b`)},
			{theme: "transaction terms", re: regexp.MustCompile(`\b(balance|charge|invoice|transaction)\b`)},
		},
	},
}

// CompletionClient is the pluggable model-classifier contract. A nil client
// means the model path is disabled and classification is keyword-only.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// IntentClassifier resolves an inbound message to a single intent. The
// keyword path is always available; when a completion client is configured
// it is tried first and any failure falls back to keywords transparently.
type IntentClassifier struct {
	model  CompletionClient
	logger *zap.Logger
}

// NewIntentClassifier constructs the classifier. model may be nil.
func NewIntentClassifier(model CompletionClient, logger *zap.Logger) *IntentClassifier {
	return &IntentClassifier{model: model, logger: logger}
}

// ModelEnabled reports whether the model path is configured.
func (c *IntentClassifier) ModelEnabled() bool {
	return c.model != nil
}

// Classify never fails outward: the worst case is IntentGeneral with an
// explanatory rationale.
func (c *IntentClassifier) Classify(ctx context.Context, message string) domain.ClassificationResult {
	if strings.TrimSpace(message) == "" {
		return domain.ClassificationResult{
			Intent:     domain.IntentGeneral,
			Confidence: confidenceUnknown,
			Rationale:  "empty message, defaulting to general",
			Source:     domain.SourceKeyword,
		}
	}
	if c.model != nil {
		result, err := c.classifyWithModel(ctx, message)
		if err == nil {
			return result
		}
		c.logger.Warn("model classification failed, falling back to keywords", zap.Error(err))
	}
	return c.classifyWithKeywords(message)
}

const classificationPrompt = `You are an intent classification agent for a customer support system.
Analyze the user's message and classify it into one of these categories:

1. FAQ - General questions about products, services, policies, or how-to queries
2. COMPLAINT - Issues, problems, dissatisfaction, or negative feedback
3. ACCOUNT_INQUIRY - Questions about account status, billing, profile, or account-related matters
4. GENERAL - Greetings, thanks, or messages that don't fit other categories

User Message: %q

Format your response as:
INTENT: [category]
REASONING: [brief explanation]`

var (
	intentLine    = regexp.MustCompile(`INTENT:\s*(\w+)`)
	reasoningLine = regexp.MustCompile(`REASONING:\s*(.+)`)
)

func (c *IntentClassifier) classifyWithModel(ctx context.Context, message string) (domain.ClassificationResult, error) {
	completion, err := c.model.Complete(ctx, fmt.Sprintf(classificationPrompt, message))
	if err != nil {
		return domain.ClassificationResult{}, err
	}

	intentMatch := intentLine.FindStringSubmatch(completion)
	if intentMatch == nil {
		return domain.ClassificationResult{}, fmt.Errorf("completion missing INTENT line: %q", completion)
	}
	token := strings.ToLower(intentMatch[1])
	intent := domain.ParseIntent(token)
	if intent == domain.IntentGeneral && token != string(domain.IntentGeneral) {
		return domain.ClassificationResult{}, fmt.Errorf("unrecognized intent token %q", intentMatch[1])
	}

	rationale := "model classification"
	if m := reasoningLine.FindStringSubmatch(completion); m != nil {
		rationale = strings.TrimSpace(m[1])
	}

	return domain.ClassificationResult{
		Intent:     intent,
		Confidence: confidenceModel,
		Rationale:  rationale,
		Source:     domain.SourceModel,
	}, nil
}

func (c *IntentClassifier) classifyWithKeywords(message string) domain.ClassificationResult {
	lowered := strings.ToLower(message)

	best := domain.IntentGeneral
	bestScore := 0
	rationale := "no specific intent keywords found, classified as general inquiry"

	for _, candidate := range scoringOrder {
		score := 0
		matchedThemes := []string{}
		for _, group := range candidate.groups {
			if matches := group.re.FindAllString(lowered, -1); len(matches) > 0 {
				score += len(matches)
				matchedThemes = append(matchedThemes, group.theme)
			}
		}
		// Strict comparison: an earlier intent in scoringOrder keeps a tie.
		if score > bestScore {
			best = candidate.intent
			bestScore = score
			if len(matchedThemes) > 2 {
				matchedThemes = matchedThemes[:2]
			}
			rationale = "matched " + strings.Join(matchedThemes, ", ")
		}
	}

	return domain.ClassificationResult{
		Intent:     best,
		Confidence: confidenceKeyword,
		Rationale:  rationale,
		Source:     domain.SourceKeyword,
	}
}
