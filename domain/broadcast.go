package domain

// BroadcastRequest describes one message to deliver to many tokens.
// Targets entries may be userIds of current registrations or raw tokens;
// when empty the whole registry is addressed.
type BroadcastRequest struct {
	Title   string
	Body    string
	Data    map[string]string
	Targets []string
}

type PushPayload struct {
	Title string
	Body  string
	Data  map[string]string
}

type DeliveryReport struct {
	Success   int
	Failure   int
	Attempted int
}
