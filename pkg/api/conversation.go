// Package api defines the wire types of the conversation HTTP API.
package api

// StartConversationResponse is returned by POST /api/conversation/start.
type StartConversationResponse struct {
	SessionID string `json:"sessionId"`
}

// MessageRequest is the body of POST /api/conversation/message and
// POST /api/conversation/message/stream. Temperature and MaxTokens are
// optional; the server applies defaults when they are absent.
type MessageRequest struct {
	SessionID   string   `json:"sessionId" validate:"required"`
	Message     string   `json:"message" validate:"required"`
	TargetLang  string   `json:"targetLang" validate:"required"`
	Temperature *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	MaxTokens   *int64   `json:"maxTokens,omitempty" validate:"omitempty,gt=0"`
}

// MessageResponse is returned by POST /api/conversation/message. ResponseID is
// the upstream continuation token recorded for the turn.
type MessageResponse struct {
	Message    string `json:"message"`
	ResponseID string `json:"responseId"`
}

// TranscriptTurn is one turn of a conversation transcript.
type TranscriptTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TranscriptResponse is returned by GET /api/conversation/{sessionID}.
type TranscriptResponse struct {
	SessionID string           `json:"sessionId"`
	Turns     []TranscriptTurn `json:"turns"`
}

// LanguageInfo describes one supported target language.
type LanguageInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ListLanguagesResponse is returned by GET /api/conversation/languages.
type ListLanguagesResponse struct {
	Languages []LanguageInfo `json:"languages"`
}
