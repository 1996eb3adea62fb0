package types

type SessionCreateRequest struct {
	Name string `json:"name,omitempty"`
}

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	APIKey    string `json:"api_key"`
}

// StreamEvent is one frame of the chat relay: token, done or error.
type StreamEvent struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
