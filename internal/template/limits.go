package template

// Field length caps from the template submission protocol.
const (
	maxNameLen       = 512
	maxBodyLen       = 1024
	maxHeaderTextLen = 60
	maxFooterLen     = 60
	maxButtonTextLen = 25
	maxCardBodyLen   = 160
	maxCardButtons   = 2
	maxCards         = 10
	maxCouponLen     = 20
)

var (
	allowedCodeLengths       = []int{4, 5, 6, 8}
	allowedExpirationMinutes = []int{5, 10, 15, 30, 60}
)

// Limits carries caps that differ between editing contexts. The general
// edit flow allows more buttons than the limited-time-offer composer, so
// the maximum is injected rather than hardcoded.
type Limits struct {
	MaxButtons      int
	MaxOfferButtons int
}

// DefaultLimits returns the caps used by the dashboard edit flows.
func DefaultLimits() Limits {
	return Limits{MaxButtons: 10, MaxOfferButtons: 3}
}

// ButtonMax resolves the button cap for a category.
func (l Limits) ButtonMax(c Category) int {
	if c == CategoryLimitedTimeOffer {
		return l.MaxOfferButtons
	}
	return l.MaxButtons
}
