package domain

type FailureReason uint8

const (
	ReasonNone FailureReason = iota
	ReasonUnregistered
	ReasonInvalidToken
	ReasonRateLimited
	ReasonQuotaExceeded
	ReasonUnavailable
	ReasonInternal
)

// Permanent reports whether the reason means the token will never again
// succeed and must be removed from the registry. Everything else is
// transient and leaves the registration untouched.
func (r FailureReason) Permanent() bool {
	return r == ReasonUnregistered || r == ReasonInvalidToken
}

func (r FailureReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonUnregistered:
		return "unregistered"
	case ReasonInvalidToken:
		return "invalidToken"
	case ReasonRateLimited:
		return "rateLimited"
	case ReasonQuotaExceeded:
		return "quotaExceeded"
	case ReasonUnavailable:
		return "unavailable"
	case ReasonInternal:
		return "internal"
	}
	return "unknown"
}

// DeliveryOutcome is the transport's verdict for a single token.
type DeliveryOutcome struct {
	Token   string
	Success bool
	Reason  FailureReason
}

// FailedDelivery is one permanently-or-transiently failed attempt handed to
// cleanup. UserId is a positional hint captured at snapshot time and may
// be empty when the token came from an explicit target list.
type FailedDelivery struct {
	Token  string
	Reason FailureReason
	UserId string
}
