package prompt

import (
	"bytes"
	"strings"
)

// FunctionCallMarker is the literal the model must emit inside a function-call
// envelope. Its presence in generated text triggers envelope parsing.
const FunctionCallMarker = "FUNC_CALL"

const functionEnvelope = `{"type": "` + FunctionCallMarker + `", "name": "<function name>", "parameters": {<arguments matching the function parameters schema>}}`

// InjectFunctions returns msgs with a synthesized system message appended that
// describes fns and the required output envelope. With no functions msgs is
// returned unchanged. The input slice is never modified.
func InjectFunctions(msgs []Message, fns []FunctionDefinition) []Message {
	if len(fns) == 0 {
		return msgs
	}
	out := make([]Message, 0, len(msgs)+1)
	out = append(out, msgs...)
	return append(out, Message{Role: RoleSystem, Content: describeFunctions(fns)})
}

func describeFunctions(fns []FunctionDefinition) string {
	var b strings.Builder
	b.WriteString("You have access to the following functions. You may invoke at most one function per response.\n")
	for _, fn := range fns {
		b.WriteString("\nFunction: ")
		b.WriteString(fn.Name)
		b.WriteString("\nDescription: ")
		b.WriteString(fn.Description)
		b.WriteString("\nParameters: ")
		params := bytes.TrimSpace(fn.Parameters)
		if len(params) == 0 {
			params = []byte("{}")
		}
		b.Write(params)
		b.WriteString("\n")
	}
	b.WriteString("\nTo invoke a function, respond with a single JSON object in exactly this format:\n")
	b.WriteString(functionEnvelope)
	return b.String()
}
