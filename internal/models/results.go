package models

// MatchResult is the outcome of one atomic match attempt: either the caller
// claimed a waiting partner, or the caller was (re-)enqueued.
type MatchResult struct {
	Matched             bool
	PartnerUserID       string
	PartnerConnectionID string
	ChatID              string
}

// ChatPartner identifies the other side of an active session.
type ChatPartner struct {
	UserID       string
	ConnectionID string
	ChatID       string
}

// DisconnectResult reports what a disconnect teardown found. The
// PartnerConnectionID is non-empty only when the user was chatting and a
// session had to be torn down.
type DisconnectResult struct {
	UserID              string
	Status              string
	PartnerConnectionID string
}
