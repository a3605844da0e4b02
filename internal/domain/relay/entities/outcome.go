package entities

// OutcomeStatus tags how a media request ended
type OutcomeStatus string

const (
	// OutcomeDelivered means the media itself reached the user
	OutcomeDelivered OutcomeStatus = "delivered"
	// OutcomeFallback means the user got a text message with a raw link instead
	OutcomeFallback OutcomeStatus = "fallback"
	// OutcomeRejected means the input was invalid and the user was told so
	OutcomeRejected OutcomeStatus = "rejected"
	// OutcomeUnsupported means the media kind has no mirrors
	OutcomeUnsupported OutcomeStatus = "unsupported"
	// OutcomeFailed means not even a text message could be delivered
	OutcomeFailed OutcomeStatus = "failed"
)

// DeliveryOutcome is the result of processing one media request
type DeliveryOutcome struct {
	Status       OutcomeStatus
	Mode         DeliveryMode
	FallbackText string
	Err          error
}

// Delivered reports whether the media itself was delivered
func (o DeliveryOutcome) Delivered() bool {
	return o.Status == OutcomeDelivered
}
