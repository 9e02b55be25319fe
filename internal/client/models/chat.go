package models

// ConversationItem is one turn of the chat history. Role is "user" or
// "assistant".
type ConversationItem struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatInput is the request body for the conversational endpoint.
type ChatInput struct {
	Message             string             `json:"message"`
	UserID              string             `json:"user_id"`
	ConversationHistory []ConversationItem `json:"conversation_history"`
}

// ChatResponse is the assistant's reply. Field names follow the backend's
// wire format.
type ChatResponse struct {
	Reply         string `json:"respuesta"`
	DetectedDates []any  `json:"fechas_detectadas"`
}
