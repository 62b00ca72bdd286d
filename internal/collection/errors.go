package collection

import (
	"fmt"
	"time"

	"github.com/trovehq/trove/internal/domain"
)

// CooldownActiveError reports a collect attempt inside the cooldown window.
// It matches domain.ErrOnCooldown under errors.Is so callers can branch
// without losing the remaining time.
type CooldownActiveError struct {
	Remaining time.Duration
	NextAt    time.Time
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("%s: ready in %s", domain.ErrMsgOnCooldown, e.Remaining.Round(time.Second))
}

func (e *CooldownActiveError) Is(target error) bool {
	return target == domain.ErrOnCooldown
}
