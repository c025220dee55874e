package pipeline

import (
	"context"
	"testing"
)

func TestDetectFunctionCallLookup(t *testing.T) {
	raw := `FUNC_CALL {"type":"FUNC_CALL","name":"lookup","parameters":{"q":"x"}}`
	fc, err := DetectFunctionCall("  \n" + raw)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if fc == nil || fc.Name != "lookup" {
		t.Fatalf("unexpected call: %+v", fc)
	}
	if fc.Arguments != `{"q": "x"}` {
		t.Fatalf("arguments=%q", fc.Arguments)
	}
}

func TestDetectPreservesOriginalText(t *testing.T) {
	p, _ := newLoaded(t, "chatml", text(` Sure. {"type":"FUNC_CALL","name":"lookup","parameters":{"q":"x"}}`))
	res, err := p.Complete(context.Background(), userHi())
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	c := res.Choices[0]
	if c.Text != `Sure. {"type":"FUNC_CALL","name":"lookup","parameters":{"q":"x"}}` {
		t.Fatalf("content changed: %q", c.Text)
	}
	if c.FunctionCall == nil || c.FunctionCall.Arguments != `{"q": "x"}` {
		t.Fatalf("function call=%+v", c.FunctionCall)
	}
}

func TestDetectNoMarker(t *testing.T) {
	fc, err := DetectFunctionCall(`{"name":"lookup"}`)
	if err != nil || fc != nil {
		t.Fatalf("expected no call, got %+v err=%v", fc, err)
	}
}

func TestDetectInvalidEnvelopes(t *testing.T) {
	cases := map[string]string{
		"no braces":      "FUNC_CALL please",
		"truncated":      `FUNC_CALL {"type":"FUNC_CALL","name":"f","parameters":{}`,
		"wrong type":     `FUNC_CALL {"type":"CALL","name":"f","parameters":{}}`,
		"missing name":   `{"type":"FUNC_CALL","parameters":{}}`,
		"name not text":  `{"type":"FUNC_CALL","name":3}`,
		"reversed brace": `} FUNC_CALL {`,
		"upper keys":     `{"TYPE":"FUNC_CALL","NAME":"f"}`,
		"title name":     `{"type":"FUNC_CALL","Name":"f","parameters":{}}`,
		"null type":      `{"type":null,"name":"f","FUNC_CALL":1}`,
	}
	for name, in := range cases {
		if _, err := DetectFunctionCall(in); err == nil {
			t.Fatalf("%s: expected error for %q", name, in)
		}
	}
}

func TestDetectNullParameters(t *testing.T) {
	for _, in := range []string{
		`{"type":"FUNC_CALL","name":"ping"}`,
		`{"type":"FUNC_CALL","name":"ping","parameters":null}`,
	} {
		fc, err := DetectFunctionCall(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if fc.Arguments != "{}" {
			t.Fatalf("%q: arguments=%q", in, fc.Arguments)
		}
	}
}

func TestEncodePythonJSON(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{"q":"x"}`, `{"q": "x"}`},
		{`{"b":1,"a":[1,2.50,{"z":true,"y":null}]}`, `{"b": 1, "a": [1, 2.5, {"z": true, "y": null}]}`},
		{`{}`, `{}`},
		{`[]`, `[]`},
		{`{"city":"Zürich"}`, `{"city": "Z\u00fcrich"}`},
		{`{"e":"😀"}`, `{"e": "\ud83d\ude00"}`},
		{`{"s":"a\"b\\c\nd</x>"}`, `{"s": "a\"b\\c\nd</x>"}`},
		{`"plain"`, `"plain"`},
	}
	for _, c := range cases {
		got, err := encodePythonJSON([]byte(c.in))
		if err != nil {
			t.Fatalf("%s: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%s:\n got %s\nwant %s", c.in, got, c.want)
		}
	}
}

func TestEncodePythonJSONNumbers(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{"n":1.50,"e":1e5}`, `{"n": 1.5, "e": 100000.0}`},
		{`[12345678901234567890]`, `[12345678901234567890]`},
		{`[-0]`, `[0]`},
		{`[-0.0]`, `[-0.0]`},
		{`[2.0E0]`, `[2.0]`},
		{`[1e16]`, `[1e+16]`},
		{`[1e15]`, `[1000000000000000.0]`},
		{`[0.0001]`, `[0.0001]`},
		{`[0.00001]`, `[1e-05]`},
		{`[1.25e-7]`, `[1.25e-07]`},
		{`[0.1]`, `[0.1]`},
		{`[1e400,-1e400]`, `[Infinity, -Infinity]`},
	}
	for _, c := range cases {
		got, err := encodePythonJSON([]byte(c.in))
		if err != nil {
			t.Fatalf("%s: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%s:\n got %s\nwant %s", c.in, got, c.want)
		}
	}
}

func TestParseEnvelopeFields(t *testing.T) {
	env, err := ParseEnvelope(`noise {"type":"FUNC_CALL","name":"f","parameters":{"a":1}} trailing`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if env.Type != "FUNC_CALL" || env.Name != "f" || string(env.Parameters) != `{"a":1}` {
		t.Fatalf("env=%+v", env)
	}
}
