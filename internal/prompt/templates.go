package prompt

import (
	"strings"
	"text/template"
)

// defaultTemplate renders nothing. Models loaded without a template therefore
// receive an empty prompt; a minimal echo renderer can replace it by
// registering another Template under DefaultTemplateName.
type defaultTemplate struct{}

func (defaultTemplate) Name() string                       { return DefaultTemplateName }
func (defaultTemplate) Render(_ []Message) (string, error) { return "", nil }
func (defaultTemplate) Stop() string                       { return "" }

// ChatML markers.
const (
	chatMLStart = "<|im_start|>"
	chatMLEnd   = "<|im_end|>"
)

const chatMLSource = `{{range .}}` + chatMLStart + `{{.Role}}
{{.Content}}` + chatMLEnd + `
{{end}}` + chatMLStart + `assistant`

type chatMLTemplate struct {
	tmpl *template.Template
}

func newChatMLTemplate() chatMLTemplate {
	return chatMLTemplate{tmpl: template.Must(template.New("chatml").Parse(chatMLSource))}
}

func (chatMLTemplate) Name() string { return "chatml" }
func (chatMLTemplate) Stop() string { return chatMLEnd }

// Render emits one delimited turn per message followed by an open assistant turn.
func (t chatMLTemplate) Render(msgs []Message) (string, error) {
	var b strings.Builder
	if err := t.tmpl.Execute(&b, msgs); err != nil {
		return "", err
	}
	return b.String(), nil
}
