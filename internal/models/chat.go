package models

import "html/template"

// Sender classes used by the conversation markup.
const (
	SenderUser = "user"
	SenderBot  = "ai"
)

// ChatMessage is a single rendered turn. It is never persisted.
type ChatMessage struct {
	SenderClass string
	SenderName  string
	Message     template.HTML
}

// ChatSubmission is the payload of the chat form submit.
type ChatSubmission struct {
	UserInput string `json:"user_input" schema:"user_input"`
}

// BotReply is the classification returned by the remote bot service.
type BotReply struct {
	Category *string `json:"category"`
}

// ReplyKind identifies which branch of the category mapping produced a reply.
type ReplyKind string

const (
	ReplyPersonal    ReplyKind = "personal"
	ReplyDevopsError ReplyKind = "devops_error"
	ReplyLink        ReplyKind = "link"
	ReplyFallback    ReplyKind = "fallback"
	ReplyUnavailable ReplyKind = "unavailable"
)

// Reply is the display message produced for one user message.
type Reply struct {
	Kind     ReplyKind
	Category string
	Message  template.HTML
}

// AjaxCommand is one instruction for the front-end to apply.
type AjaxCommand struct {
	Command  string `json:"command"`
	Method   string `json:"method,omitempty"`
	Selector string `json:"selector"`
	Data     string `json:"data,omitempty"`
}

// AjaxResponse is the reply to a chat submit.
type AjaxResponse struct {
	Commands []AjaxCommand `json:"commands"`
}
