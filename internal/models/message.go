package models

// MessageType selects how a flash message is rendered.
type MessageType string

const (
	MessageGreen MessageType = "green"
	MessageRed   MessageType = "red"
	MessageBlue  MessageType = "blue"
)

// Message is a one-shot notice carried in the session and shown on the next
// rendered page.
type Message struct {
	Content string      `json:"content"`
	Type    MessageType `json:"type"`
}
