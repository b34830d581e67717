package service

import (
	"context"

	"github.com/spec-kit/support-chat-service/internal/domain"
)

const accountResponse = `I'd be happy to help you with your account inquiry.

For security reasons, I cannot access specific account information in this chat. However, I can help you with:

Common account tasks:
- Password reset instructions
- Account verification steps
- Billing and payment information
- Profile update procedures

To get detailed help with your account, please:
1. Visit our secure account portal
2. Contact our account specialists directly
3. Provide proper verification (email, phone, or security questions)

If this is urgent, I can create a priority ticket for our account team to contact you directly. What specific account issue can I help guide you through?`

// AccountService answers account inquiries with secure guidance. It never
// exposes account data; anything needing verification is redirected.
type AccountService struct{}

// NewAccountService constructs the service.
func NewAccountService() *AccountService {
	return &AccountService{}
}

// Process returns the canned account guidance response. Account details are
// only released through verified channels, so the result always carries the
// verification flag.
func (s *AccountService) Process(ctx context.Context, message string, reqCtx domain.RequestContext) HandlerResult {
	return HandlerResult{Response: accountResponse, RequiresVerification: true}
}
