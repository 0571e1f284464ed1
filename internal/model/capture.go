package model

import "fmt"

// RawCapture is one OS notification event as delivered by the event source.
// It exists only for the duration of a single capture-and-send operation.
type RawCapture struct {
	Package string `json:"package"`
	Title   string `json:"title"`
	Text    string `json:"text"`
}

// RawMessage builds the concatenated message string forwarded to the backend.
func (c RawCapture) RawMessage() string {
	return fmt.Sprintf("package=%s | title=%s | text=%s", c.Package, c.Title, c.Text)
}

// OutboundMessage is the payload for one ingestion call. Created, sent once,
// discarded; there is no retry queue.
type OutboundMessage struct {
	Message  string `json:"message"`
	DeviceID string `json:"deviceId,omitempty"`
}
