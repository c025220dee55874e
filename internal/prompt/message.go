// Package prompt turns an ordered chat history into the single input string a
// completion model consumes. It owns the template registry, the built-in
// renderers and the function-description injector.
package prompt

import "encoding/json"

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleFunction  Role = "function"
)

// FunctionCall is a structured invocation emitted by (or replayed to) the model.
type FunctionCall struct {
	Name      string
	Arguments string
}

// Message is one turn of a conversation. Values are treated as immutable once
// built; renderers never modify them.
type Message struct {
	Role         Role
	Content      string
	FunctionCall *FunctionCall
}

// FunctionDefinition describes a function the model may choose to invoke.
// Parameters is a JSON-schema object kept verbatim.
type FunctionDefinition struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}
