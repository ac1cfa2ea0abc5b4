package models

import "encoding/json"

// ClientAction is an intent sent by the client over the WebSocket.
type ClientAction string

const (
	ActionStartSearch   ClientAction = "START_SEARCH"
	ActionStopSearch    ClientAction = "STOP_SEARCH"
	ActionSendMessage   ClientAction = "SEND_MESSAGE"
	ActionEndChat       ClientAction = "END_CHAT"
	ActionReportPartner ClientAction = "REPORT_PARTNER"
)

// MessageType is a notification type pushed to the client.
type MessageType string

const (
	TypeConnected           MessageType = "CONNECTED"
	TypeSearching           MessageType = "SEARCHING"
	TypeSearchEnded         MessageType = "SEARCH_ENDED"
	TypeMatched             MessageType = "MATCHED"
	TypeMessage             MessageType = "MESSAGE"
	TypeChatEnded           MessageType = "CHAT_ENDED"
	TypePartnerDisconnected MessageType = "PARTNER_DISCONNECTED"
	TypeReportReceived      MessageType = "REPORT_RECEIVED"
	TypeError               MessageType = "ERROR"
)

// IncomingMessage описує конверт клієнтського повідомлення.
// Payload декодується окремо залежно від Action.
type IncomingMessage struct {
	Action  ClientAction    `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SendMessagePayload is the SEND_MESSAGE payload. MessageID is a
// client-supplied correlation id echoed back in ERROR responses.
type SendMessagePayload struct {
	Message   string `json:"message"`
	MessageID *int   `json:"messageId,omitempty"`
}

// ReportPartnerPayload is the REPORT_PARTNER payload.
type ReportPartnerPayload struct {
	Reason string `json:"reason"`
}

// OutgoingMessage описує конверт нотифікації сервера.
type OutgoingMessage struct {
	Type      MessageType `json:"type"`
	Payload   any         `json:"payload,omitempty"`
	Timestamp int64       `json:"timestamp,omitempty"`
}

// ErrorPayload accompanies TypeError notifications.
type ErrorPayload struct {
	Message   string `json:"message"`
	MessageID *int   `json:"messageId,omitempty"`
}
