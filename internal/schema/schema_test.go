package schema

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"llamagate/internal/inference"
	"llamagate/internal/pipeline"
	"llamagate/internal/prompt"
	"llamagate/pkg/types"
)

func decode(t *testing.T, body string) *types.CreateChatCompletionRequest {
	t.Helper()
	var req types.CreateChatCompletionRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return &req
}

func TestToRequestTemperaturePresence(t *testing.T) {
	defaults := inference.DefaultParams()

	absent := ToRequest(decode(t, `{"model":"m","messages":[{"role":"user","content":"Hi"}]}`), defaults)
	if absent.Params.Temperature != defaults.Temperature {
		t.Fatalf("absent temperature changed default: %v", absent.Params.Temperature)
	}

	set := ToRequest(decode(t, `{"model":"m","temperature":0.5,"messages":[{"role":"user","content":"Hi"}]}`), defaults)
	if set.Params.Temperature != 0.5 {
		t.Fatalf("temperature=%v", set.Params.Temperature)
	}

	zero := ToRequest(decode(t, `{"model":"m","temperature":0,"max_tokens":16,"top_p":0.5,"top_k":3,"messages":[{"role":"user","content":"Hi"}]}`), defaults)
	want := inference.Params{MaxTokens: 16, Temperature: 0, TopP: 0.5, TopK: 3}
	if zero.Params != want {
		t.Fatalf("params=%+v want %+v", zero.Params, want)
	}
}

func TestToRequestMessagesAndFunctions(t *testing.T) {
	req := decode(t, `{
		"model":"m",
		"prompt_template":"chatml",
		"messages":[
			{"role":"system","content":"Be brief"},
			{"role":"assistant","content":null,"function_call":{"name":"f","arguments":"{}"}},
			{"role":"user","content":"Hi"}
		],
		"functions":[{"name":"lookup","description":"Search","parameters":{"type":"object"}}]
	}`)
	got := ToRequest(req, inference.DefaultParams())
	if got.Template != "chatml" {
		t.Fatalf("template=%q", got.Template)
	}
	if len(got.Messages) != 3 {
		t.Fatalf("messages=%d", len(got.Messages))
	}
	if got.Messages[0].Role != prompt.RoleSystem || got.Messages[0].Content != "Be brief" {
		t.Fatalf("first message=%+v", got.Messages[0])
	}
	if got.Messages[1].Content != "" || got.Messages[1].FunctionCall != nil {
		t.Fatalf("inbound function call must not be carried over: %+v", got.Messages[1])
	}
	if len(got.Functions) != 1 || got.Functions[0].Name != "lookup" || string(got.Functions[0].Parameters) != `{"type":"object"}` {
		t.Fatalf("functions=%+v", got.Functions)
	}
}

func TestToResponse(t *testing.T) {
	res := &pipeline.Result{
		ID:      "chatcmpl-1",
		Created: 1700000000,
		Usage:   inference.Usage{CompletionTokens: 2, PromptTokens: 5, TotalTokens: 7},
		Choices: []pipeline.Choice{
			{Index: 0, FinishReason: "stop", Text: "Hello there"},
			{Index: 1, FinishReason: "stop", Text: "FUNC_CALL {...}", FunctionCall: &prompt.FunctionCall{Name: "lookup", Arguments: `{"q": "x"}`}},
		},
	}
	out := ToResponse("mistral", res)
	if out.Object != "chat.completion" || out.Model != "mistral" || out.ID != "chatcmpl-1" || out.Created != 1700000000 {
		t.Fatalf("header fields: %+v", out)
	}
	if out.Usage != (types.CompletionUsage{CompletionTokens: 2, PromptTokens: 5, TotalTokens: 7}) {
		t.Fatalf("usage=%+v", out.Usage)
	}
	if len(out.Choices) != 2 {
		t.Fatalf("choices=%d", len(out.Choices))
	}
	c0 := out.Choices[0]
	if c0.Message.Role != GeneratedRole || *c0.Message.Content != "Hello there" || c0.Message.FunctionCall != nil {
		t.Fatalf("choice 0=%+v", c0)
	}
	c1 := out.Choices[1]
	if c1.Index != 1 || c1.Message.FunctionCall == nil || c1.Message.FunctionCall.Arguments != `{"q": "x"}` {
		t.Fatalf("choice 1=%+v", c1)
	}
	b, err := json.Marshal(c0)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "function_call") {
		t.Fatalf("plain choice carries function_call: %s", b)
	}
}

func TestToLoadOptions(t *testing.T) {
	defaults := inference.LoadOptions{ContextSize: 2048, BatchSize: 1024, GPULayers: -1, TemplateName: "default"}
	if got := ToLoadOptions(nil, defaults); got != defaults {
		t.Fatalf("nil options=%+v", got)
	}
	ctx, gpu, tmpl := 4096, 0, "chatml"
	got := ToLoadOptions(&types.ModelLoadingOptions{ContextSize: &ctx, GPULayers: &gpu, PromptTemplate: &tmpl}, defaults)
	want := inference.LoadOptions{ContextSize: 4096, BatchSize: 1024, GPULayers: 0, TemplateName: "chatml"}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestToLoadedModel(t *testing.T) {
	at := time.Unix(1700000000, 0)
	lm := ToLoadedModel(inference.ModelInfo{Path: "/m.gguf", Options: inference.LoadOptions{ContextSize: 2048, TemplateName: "chatml"}, LoadedAt: at})
	if lm.Path != "/m.gguf" || lm.PromptTemplate != "chatml" || lm.ContextSize != 2048 || lm.LoadedAt != 1700000000 {
		t.Fatalf("loaded model=%+v", lm)
	}
}

func TestValidateAccepts(t *testing.T) {
	bodies := []string{
		`{"model":"m","messages":[{"role":"user","content":"Hi"}]}`,
		`{"model":"m","messages":[{"role":"function","content":null}],"function_call":"auto","stop":["\n"],"stream":false,"n":1}`,
		`{"model":"m","messages":[{"role":"user","content":"Hi"}],"function_call":{"name":"lookup"},"stop":"END","temperature":2,"top_p":0}`,
		`{"model":"m","messages":[{"role":"user","content":"Hi"}],"presence_penalty":-2,"frequency_penalty":2,"function_call":"none"}`,
	}
	for _, b := range bodies {
		if err := Validate(decode(t, b)); err != nil {
			t.Fatalf("%s: %v", b, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		body  string
		field string
	}{
		{`{"model":"m","messages":[]}`, "messages"},
		{`{"model":"m"}`, "messages"},
		{`{"messages":[{"role":"user","content":"Hi"}]}`, "model"},
		{`{"model":"m","messages":[{"role":"robot","content":"Hi"}]}`, "messages[0].role"},
		{`{"model":"m","messages":[{"role":"user"}],"temperature":2.5}`, "temperature"},
		{`{"model":"m","messages":[{"role":"user"}],"temperature":-0.1}`, "temperature"},
		{`{"model":"m","messages":[{"role":"user"}],"top_p":1.5}`, "top_p"},
		{`{"model":"m","messages":[{"role":"user"}],"n":0}`, "n"},
		{`{"model":"m","messages":[{"role":"user"}],"n":129}`, "n"},
		{`{"model":"m","messages":[{"role":"user"}],"presence_penalty":3}`, "presence_penalty"},
		{`{"model":"m","messages":[{"role":"user"}],"frequency_penalty":-3}`, "frequency_penalty"},
		{`{"model":"m","messages":[{"role":"user"}],"max_tokens":0}`, "max_tokens"},
		{`{"model":"m","messages":[{"role":"user"}],"function_call":"always"}`, "function_call"},
		{`{"model":"m","messages":[{"role":"user"}],"function_call":{}}`, "function_call"},
		{`{"model":"m","messages":[{"role":"user"}],"stop":[1]}`, "stop"},
		{`{"model":"m","messages":[{"role":"user"}],"stream":true}`, "stream"},
		{`{"model":"m","messages":[{"role":"user"}],"functions":[{"description":"x"}]}`, "functions[0].name"},
	}
	for _, c := range cases {
		err := Validate(decode(t, c.body))
		if !IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", c.body, err)
		}
		if !strings.Contains(err.Error(), c.field+" ") {
			t.Fatalf("%s: error %q does not name %s", c.body, err, c.field)
		}
	}
}

func TestValidateLoadRequest(t *testing.T) {
	if err := Validate(&types.LoadModelRequest{Path: "/m.gguf"}); err != nil {
		t.Fatalf("valid load request: %v", err)
	}
	bad := -2
	err := Validate(&types.LoadModelRequest{Path: "/m.gguf", Options: &types.ModelLoadingOptions{GPULayers: &bad}})
	if !IsValidation(err) || !strings.Contains(err.Error(), "options.n_gpu_layers") {
		t.Fatalf("expected n_gpu_layers error, got %v", err)
	}
	if err := Validate(&types.LoadModelRequest{}); !IsValidation(err) {
		t.Fatalf("expected missing path error, got %v", err)
	}
}
