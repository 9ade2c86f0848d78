package ports

import (
	"context"

	"github.com/tributestream/livestream-api/internal/core/domain"
)

// Mailer delivers outbound email through the configured provider.
type Mailer interface {
	Send(ctx context.Context, msg domain.Email) error
}
