package persistence

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/support-chat-service/internal/domain"
	"github.com/spec-kit/support-chat-service/internal/repository"
)

var sampleFAQs = []domain.FAQRecord{
	{
		Question: "How do I reset my password?",
		Answer:   "To reset your password, go to the login page and click 'Forgot Password'. Enter your email address and follow the instructions sent to your email.",
		Category: "Account",
		Keywords: []string{"password", "reset", "login", "forgot"},
		IsActive: true,
	},
	{
		Question: "What are your business hours?",
		Answer:   "Our business hours are Monday to Friday, 9 AM to 6 PM EST. Our support team is available during these hours to assist you.",
		Category: "General",
		Keywords: []string{"hours", "business", "time", "support", "open"},
		IsActive: true,
	},
	{
		Question: "How do I cancel my subscription?",
		Answer:   "To cancel your subscription, log into your account, go to Settings > Billing, and click 'Cancel Subscription'. You can also contact our support team for assistance.",
		Category: "Billing",
		Keywords: []string{"cancel", "subscription", "billing", "account"},
		IsActive: true,
	},
	{
		Question: "How do I contact customer support?",
		Answer:   "You can contact customer support through this chat system, email us at support@company.com, or call us at 1-800-SUPPORT during business hours.",
		Category: "Support",
		Keywords: []string{"contact", "support", "help", "phone", "email"},
		IsActive: true,
	},
	{
		Question: "What payment methods do you accept?",
		Answer:   "We accept all major credit cards (Visa, MasterCard, American Express), PayPal, and bank transfers. All payments are processed securely.",
		Category: "Billing",
		Keywords: []string{"payment", "credit card", "paypal", "billing", "methods"},
		IsActive: true,
	},
}

// SeedFAQs populates the FAQ catalog with the sample set when it is empty.
// Idempotent: an already-populated catalog is left untouched.
func SeedFAQs(ctx context.Context, faqRepo repository.FAQRepository, logger *zap.Logger) error {
	count, err := faqRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("faq catalog already populated, skipping seed", zap.Int("count", count))
		return nil
	}

	for i := range sampleFAQs {
		record := sampleFAQs[i]
		if err := faqRepo.Create(ctx, &record); err != nil {
			return err
		}
	}
	logger.Info("seeded sample faqs", zap.Int("count", len(sampleFAQs)))
	return nil
}
