package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCmd(t *testing.T, stdin string, environ []string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr, environ)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRun_Usage(t *testing.T) {
	if code, _, stderr := runCmd(t, "", nil); code != exitUsage || !strings.Contains(stderr, "usage") {
		t.Errorf("no args: code = %d, stderr = %q", code, stderr)
	}
	if code, _, _ := runCmd(t, "", nil, "frobnicate"); code != exitUsage {
		t.Errorf("unknown command: code = %d", code)
	}
	if code, _, _ := runCmd(t, "", nil, "blocks", "-env", ""); code != exitUsage {
		t.Errorf("missing FILE: code = %d", code)
	}
}

func TestRun_Blocks(t *testing.T) {
	code, stdout, stderr := runCmd(t, "a{b{c}} d{e}", nil, "blocks", "-env", "", "-")
	if code != exitOK {
		t.Fatalf("code = %d, stderr = %s", code, stderr)
	}
	if stdout != "1\t6\n9\t11\n" {
		t.Errorf("stdout = %q", stdout)
	}

	code, stdout, _ = runCmd(t, "f(x, g(y)) h(z)", nil, "blocks", "-env", "", "-start", "(", "-end", ")", "-print", "inner", "-")
	if code != exitOK || stdout != "x, g(y)\nz\n" {
		t.Errorf("inner: code = %d, stdout = %q", code, stdout)
	}
}

func TestRun_BlocksError(t *testing.T) {
	code, stdout, stderr := runCmd(t, "{ok} {open", nil, "blocks", "-env", "", "-print", "text", "-")
	if code != exitFailed {
		t.Errorf("code = %d, want %d", code, exitFailed)
	}
	if stdout != "{ok}\n" {
		t.Errorf("partial output = %q", stdout)
	}
	if !strings.Contains(stderr, "input ended inside an open block") {
		t.Errorf("stderr = %q", stderr)
	}

	if code, _, _ := runCmd(t, "x", nil, "blocks", "-env", "", "-start", "|", "-end", "|", "-"); code != exitUsage {
		t.Errorf("same delimiters: code = %d", code)
	}
	if code, _, _ := runCmd(t, "x", nil, "blocks", "-env", "", "-start", "ab", "-"); code != exitUsage {
		t.Errorf("two-character delimiter: code = %d", code)
	}
}

func TestRun_BlocksJSONRejectsDelimiterFlags(t *testing.T) {
	for _, flagArgs := range [][]string{
		{"-start", "("},
		{"-end", ")"},
		{"-print", "inner"},
	} {
		args := append([]string{"blocks", "-env", "", "-json"}, flagArgs...)
		args = append(args, "-")
		code, stdout, stderr := runCmd(t, `{"a":1}`, nil, args...)
		if code != exitUsage || stdout != "" || !strings.Contains(stderr, "cannot be combined with -json") {
			t.Errorf("%v: code = %d, stdout = %q, stderr = %q", flagArgs, code, stdout, stderr)
		}
	}
}

func TestRun_BlocksJSON(t *testing.T) {
	input := `result: {"a": 1} and {b: 'two',}`
	code, stdout, stderr := runCmd(t, input, nil, "blocks", "-env", "", "-json", "-")
	if code != exitOK {
		t.Fatalf("code = %d, stderr = %s", code, stderr)
	}
	if stdout != "{\"a\":1}\n{\"b\":\"two\"}\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

const cardsDoc = `<deck>
  <card id="a"><title>Alpha</title></card>
  <card id="b"/>
  <card id="c"><title>Gamma</title></card>
</deck>`

func TestRun_Elements(t *testing.T) {
	path := writeFile(t, "deck.xml", cardsDoc)

	code, stdout, stderr := runCmd(t, "", nil, "elements", "-env", "", "-tag", "card:4", path)
	if code != exitOK {
		t.Fatalf("code = %d, stderr = %s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), stdout)
	}
	if !strings.HasPrefix(lines[0], "card\t4\t[") || !strings.Contains(lines[1], "(self-closing)") {
		t.Errorf("unexpected lines:\n%s", stdout)
	}
}

func TestRun_ElementsFormatFromEnv(t *testing.T) {
	path := writeFile(t, "deck.xml", cardsDoc)

	code, stdout, stderr := runCmd(t, "", []string{"SPANSEEK_FORMAT=json"}, "elements", "-env", "", "-tag", "title", path)
	if code != exitOK {
		t.Fatalf("code = %d, stderr = %s", code, stderr)
	}
	var first struct {
		Tag  string `json:"tag"`
		Text string `json:"text"`
	}
	line := strings.SplitN(stdout, "\n", 2)[0]
	if err := json.Unmarshal([]byte(line), &first); err != nil {
		t.Fatalf("first line %q is not JSON: %v", line, err)
	}
	if first.Tag != "title" || first.Text != "<title>Alpha</title>" {
		t.Errorf("first = %+v", first)
	}
}

func TestRun_ElementsMarkdown(t *testing.T) {
	envFile := writeFile(t, ".env", "SPANSEEK_FORMAT=markdown\nSPANSEEK_LENIENT=true\n")
	doc := `<div class=post><section><h1>Hello</h1><p>World &amp; friends</p></section></div>`

	code, stdout, stderr := runCmd(t, doc, nil, "elements", "-env", envFile, "-tag", "section", "-")
	if code != exitOK {
		t.Fatalf("code = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "# Hello") || !strings.Contains(stdout, "friends") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRun_ElementsMalformed(t *testing.T) {
	code, _, stderr := runCmd(t, "<a><b></a>", nil, "elements", "-env", "", "-tag", "b", "-")
	if code != exitFailed || !strings.Contains(stderr, "malformed markup") {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
	if code, _, _ := runCmd(t, "<a/>", nil, "elements", "-env", "", "-"); code != exitUsage {
		t.Errorf("missing -tag: code = %d", code)
	}
}

func TestRun_Decode(t *testing.T) {
	path := writeFile(t, "deck.xml", cardsDoc)

	code, stdout, stderr := runCmd(t, "", nil, "decode", "-env", "", "-tag", "card", "-size-hint", "1", path)
	if code != exitOK {
		t.Fatalf("code = %d, stderr = %s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (self-closing card excluded):\n%s", len(lines), stdout)
	}

	var n Node
	if err := json.Unmarshal([]byte(lines[1]), &n); err != nil {
		t.Fatalf("line %q is not JSON: %v", lines[1], err)
	}
	if n.Name != "card" || n.Attrs["id"] != "c" || len(n.Children) != 1 || n.Children[0].Text != "Gamma" {
		t.Errorf("node = %+v", n)
	}
}

func TestRun_DecodePolicy(t *testing.T) {
	doc := `<deck><card id="a">ok</card><card>bad</card><card id="c">ok</card></deck>`

	code, stdout, _ := runCmd(t, doc, nil, "decode", "-env", "", "-tag", "card", "-require", "id", "-")
	if code != exitFailed {
		t.Errorf("abort: code = %d, want %d", code, exitFailed)
	}
	if got := strings.Count(stdout, "\n"); got != 1 {
		t.Errorf("abort: %d lines printed, want 1", got)
	}

	code, stdout, stderr := runCmd(t, doc, []string{"SPANSEEK_POLICY=skip"}, "decode", "-env", "", "-tag", "card", "-require", "id", "-")
	if code != exitOK {
		t.Errorf("skip: code = %d, stderr = %s", code, stderr)
	}
	if got := strings.Count(stdout, "\n"); got != 2 {
		t.Errorf("skip: %d lines printed, want 2", got)
	}
	if !strings.Contains(stderr, "element does not match schema") {
		t.Errorf("skip: warning not logged: %q", stderr)
	}
}

func TestRun_DecodeLenient(t *testing.T) {
	doc := `<root><item id=a>caf&eacute;</item></root>`

	if code, _, _ := runCmd(t, doc, nil, "decode", "-env", "", "-tag", "item", "-"); code != exitFailed {
		t.Errorf("strict: code = %d, want %d", code, exitFailed)
	}

	code, stdout, stderr := runCmd(t, doc, nil, "decode", "-env", "", "-tag", "item", "-lenient", "-require", "id", "-")
	if code != exitOK {
		t.Fatalf("lenient: code = %d, stderr = %s", code, stderr)
	}
	var n Node
	if err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &n); err != nil {
		t.Fatalf("output %q is not JSON: %v", stdout, err)
	}
	if n.Attrs["id"] != "a" || n.Text != "café" {
		t.Errorf("node = %+v", n)
	}
}

func TestRun_ConfigErrors(t *testing.T) {
	if code, _, _ := runCmd(t, "", []string{"SPANSEEK_POLICY=maybe"}, "decode", "-env", "", "-tag", "x", "-"); code != exitConfig {
		t.Errorf("bad env: code = %d, want %d", code, exitConfig)
	}
	if code, _, _ := runCmd(t, "", nil, "blocks", "-env", "", filepath.Join(t.TempDir(), "missing.txt")); code != exitConfig {
		t.Errorf("missing file: code = %d, want %d", code, exitConfig)
	}
	if code, _, _ := runCmd(t, "", nil, "decode", "-env", "", "-tag", "x", "-size-hint", "-4", "-"); code != exitUsage {
		t.Errorf("negative size hint: code = %d, want %d", code, exitUsage)
	}
}

func TestRun_ByteOrderMark(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "utf-8 bom", data: "\xEF\xBB\xBF{x}"},
		{name: "utf-16le bom", data: "\xFF\xFE{\x00x\x00}\x00"},
		{name: "utf-16be bom", data: "\xFE\xFF\x00{\x00x\x00}"},
		{name: "no bom", data: "{x}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "doc.txt", tt.data)
			code, stdout, stderr := runCmd(t, "", nil, "blocks", "-env", "", "-print", "text", path)
			if code != exitOK {
				t.Fatalf("code = %d, stderr = %s", code, stderr)
			}
			if stdout != "{x}\n" {
				t.Errorf("stdout = %q, want %q", stdout, "{x}\n")
			}
		})
	}

	if code, _, _ := runCmd(t, "{\xff}", nil, "blocks", "-env", "", "-"); code != exitConfig {
		t.Errorf("invalid UTF-8: code = %d, want %d", code, exitConfig)
	}
}

func TestRun_ElementsColor(t *testing.T) {
	code, stdout, _ := runCmd(t, "<a><b/></a>", nil, "elements", "-env", "", "-tag", "b", "-color", "always", "-")
	if code != exitOK || !strings.Contains(stdout, "\x1b[") {
		t.Errorf("always: code = %d, stdout = %q", code, stdout)
	}
	code, stdout, _ = runCmd(t, "<a><b/></a>", nil, "elements", "-env", "", "-tag", "b", "-")
	if code != exitOK || strings.Contains(stdout, "\x1b[") {
		t.Errorf("auto to a buffer: code = %d, stdout = %q", code, stdout)
	}
	if code, _, _ := runCmd(t, "<a/>", nil, "elements", "-env", "", "-tag", "a", "-color", "rainbow", "-"); code != exitUsage {
		t.Errorf("bad color mode: code = %d", code)
	}
}
