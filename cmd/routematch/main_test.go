package main

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/routematch/internal/config"
	"github.com/vango-dev/routematch/internal/errors"
	"github.com/vango-dev/routematch/pkg/matcher"
)

const testConfig = `{
  "routes": [
    {"name": "home", "pattern": "/"},
    {"name": "user", "pattern": "/user/{id}(/posts/{post})"},
    {"name": "files", "pattern": "/files/{*:path}"}
  ]
}`

func init() {
	errors.DisableColors()
}

// run executes the CLI with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var re *errors.RouteError
	if !stderrors.As(err, &re) {
		t.Fatalf("error = %v, want *errors.RouteError", err)
	}
	if re.Code != code {
		t.Errorf("Code = %q, want %q", re.Code, code)
	}
}

func TestCompileCommand(t *testing.T) {
	out, err := run(t, "compile", "/user/{id}(/posts/{post})")
	if err != nil {
		t.Fatalf("compile error = %v", err)
	}
	for _, want := range []string{
		"tokens: /user/{id}(/posts/{post})(/)",
		"keys:   id, post",
		`match    "/user/"`,
		"optional",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCompileCommandJSON(t *testing.T) {
	out, err := run(t, "compile", "--json", "/about", "/toggle/{state(on|off)}")
	if err != nil {
		t.Fatalf("compile error = %v", err)
	}

	var got []compiledPattern
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	wantAbout := []tokenNode{
		{Kind: "match", Literal: "/about"},
		{Kind: "optional", Inner: []tokenNode{{Kind: "match", Literal: "/"}}},
	}
	if diff := cmp.Diff(wantAbout, got[0].Tokens); diff != "" {
		t.Errorf("/about tokens mismatch (-want +got):\n%s", diff)
	}

	last := got[1].Tokens[len(got[1].Tokens)-1]
	if last.Kind != "capture" || last.Variant != "named" || !cmp.Equal(last.Allowed, []string{"on", "off"}) {
		t.Errorf("toggle capture = %+v", last)
	}
}

func TestCompileCommandFlags(t *testing.T) {
	out, err := run(t, "compile", "--json", "--no-trailing-slash", "/about")
	if err != nil {
		t.Fatalf("compile error = %v", err)
	}
	if strings.Contains(out, "optional") {
		t.Errorf("--no-trailing-slash still produced an optional slash:\n%s", out)
	}

	_, err = run(t, "compile", "--max-depth", "1", "/a((/b))")
	if err == nil {
		t.Error("compile with nesting beyond --max-depth succeeded")
	}
}

func TestCompileCommandInvalid(t *testing.T) {
	_, err := run(t, "compile", "/{a}{b}")
	assertCode(t, err, "E206")
}

func TestMatchCommand(t *testing.T) {
	out, err := run(t, "match", "/user/{id}(/posts/{post})", "/user/42/posts/7")
	if err != nil {
		t.Fatalf("match error = %v", err)
	}
	if !strings.Contains(out, "id = 42") || !strings.Contains(out, "post = 7") {
		t.Errorf("output = %q", out)
	}

	out, err = run(t, "match", "--json", "/files/{*:path}", "/files/a/b")
	if err != nil {
		t.Fatalf("match --json error = %v", err)
	}
	var got matchOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	want := matchOutput{Matched: true, Captures: []matcher.Entry{{Key: "path", Value: "a/b"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("match --json mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchCommandNoMatch(t *testing.T) {
	out, err := run(t, "match", "/user/{id}", "/account/42")
	if !stderrors.Is(err, errNoMatch) {
		t.Errorf("error = %v, want errNoMatch", err)
	}
	if !strings.Contains(out, "does not match") {
		t.Errorf("output = %q", out)
	}
}

func TestResolveCommand(t *testing.T) {
	path := writeTestConfig(t, testConfig)

	out, err := run(t, "--config", path, "resolve", "/", "/user/42", "/files/a/b")
	if err != nil {
		t.Fatalf("resolve error = %v", err)
	}
	for _, want := range []string{
		"/ → home\n",
		"/user/42 → user id=42\n",
		"/files/a/b → files path=a/b\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "--config", path, "resolve", "/user/1", "/missing")
	if !stderrors.Is(err, errNoMatch) {
		t.Errorf("error = %v, want errNoMatch", err)
	}
	if !strings.Contains(out, "/missing → (no match)") {
		t.Errorf("output = %q", out)
	}
}

func TestResolveCommandJSON(t *testing.T) {
	path := writeTestConfig(t, testConfig)

	out, err := run(t, "--config", path, "resolve", "--json", "/user/1/posts/2")
	if err != nil {
		t.Fatalf("resolve error = %v", err)
	}
	var got []resolveOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	want := []resolveOutput{{
		URL:   "/user/1/posts/2",
		Route: "user",
		Captures: []matcher.Entry{
			{Key: "id", Value: "1"},
			{Key: "post", Value: "2"},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolve --json mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveCommandMissingConfig(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "none.json"), "resolve", "/")
	assertCode(t, err, "E141")
}

func TestURLCommand(t *testing.T) {
	path := writeTestConfig(t, testConfig)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"user", "id=42"}, "/user/42\n"},
		{[]string{"user", "id=42", "post=7"}, "/user/42/posts/7\n"},
		{[]string{"home"}, "/\n"},
	}
	for _, tt := range tests {
		out, err := run(t, append([]string{"--config", path, "url"}, tt.args...)...)
		if err != nil {
			t.Errorf("url %v error = %v", tt.args, err)
			continue
		}
		if out != tt.want {
			t.Errorf("url %v = %q, want %q", tt.args, out, tt.want)
		}
	}
}

func TestURLCommandErrors(t *testing.T) {
	path := writeTestConfig(t, testConfig)

	_, err := run(t, "--config", path, "url", "user", "id")
	assertCode(t, err, "E140")

	_, err = run(t, "--config", path, "url", "nobody", "id=1")
	assertCode(t, err, "E204")
}

func TestCheckCommand(t *testing.T) {
	path := writeTestConfig(t, testConfig)

	out, err := run(t, "--config", path, "check", "--list")
	if err != nil {
		t.Fatalf("check error = %v", err)
	}
	if !strings.Contains(out, "3 routes compiled") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "/files/{*:path}") {
		t.Errorf("--list output missing route:\n%s", out)
	}

	bad := writeTestConfig(t, `{"routes": [{"name": "x", "pattern": "/{a}{b}"}]}`)
	_, err = run(t, "--config", bad, "check")
	assertCode(t, err, "E206")
}

func TestInitCommand(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			if _, err := run(t, "init", "--format", format, dir); err != nil {
				t.Fatalf("init error = %v", err)
			}

			cfg, err := config.Load(dir)
			if err != nil {
				t.Fatalf("config.Load() error = %v", err)
			}
			if diff := cmp.Diff(exampleRoutes, cfg.Routes); diff != "" {
				t.Errorf("routes mismatch (-want +got):\n%s", diff)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("generated config invalid: %v", err)
			}

			_, err = run(t, "init", "--format", format, dir)
			assertCode(t, err, "E140")

			if _, err := run(t, "init", "--force", "--format", format, dir); err != nil {
				t.Errorf("init --force error = %v", err)
			}
		})
	}

	_, err := run(t, "init", "--format", "xml", t.TempDir())
	assertCode(t, err, "E140")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if out != version+"\n" {
		t.Errorf("version --short = %q", out)
	}
}

func TestServeMux(t *testing.T) {
	cfg, err := config.LoadFile(writeTestConfig(t, testConfig))
	if err != nil {
		t.Fatal(err)
	}
	r, err := newRouter(cfg, newLogger(&bytes.Buffer{}, false))
	if err != nil {
		t.Fatalf("newRouter() error = %v", err)
	}
	srv := httptest.NewServer(newServeMux(r, cfg))
	defer srv.Close()

	get := func(path string) (int, resolveOutput) {
		t.Helper()
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		var body resolveOutput
		if resp.Header.Get("Content-Type") == "application/json" {
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("GET %s: invalid JSON: %v", path, err)
			}
		}
		return resp.StatusCode, body
	}

	status, body := get("/user/42/posts/7")
	if status != http.StatusOK || body.Route != "user" {
		t.Errorf("GET /user/42/posts/7 = %d %+v", status, body)
	}
	if diff := cmp.Diff([]matcher.Entry{{Key: "id", Value: "42"}, {Key: "post", Value: "7"}}, body.Captures); diff != "" {
		t.Errorf("captures mismatch (-want +got):\n%s", diff)
	}

	if status, _ := get("/nothing/here"); status != http.StatusNotFound {
		t.Errorf("GET /nothing/here status = %d, want 404", status)
	}

	status, body = get("/debug/resolve?url=/files/a/b")
	if status != http.StatusOK || body.Route != "files" || body.URL != "/files/a/b" {
		t.Errorf("GET /debug/resolve = %d %+v", status, body)
	}

	if status, _ := get("/debug/resolve"); status != http.StatusBadRequest {
		t.Errorf("GET /debug/resolve without url status = %d, want 400", status)
	}

	if status, _ := get("/metrics"); status != http.StatusNotFound {
		t.Errorf("GET /metrics with metrics disabled status = %d, want 404", status)
	}
}

func TestServeMuxMetrics(t *testing.T) {
	cfg, err := config.LoadFile(writeTestConfig(t, `{
  "metrics": {"enabled": true},
  "routes": [{"name": "user", "pattern": "/user/{id}"}]
}`))
	if err != nil {
		t.Fatal(err)
	}
	r, err := newRouter(cfg, newLogger(&bytes.Buffer{}, false))
	if err != nil {
		t.Fatalf("newRouter() error = %v", err)
	}
	h := newServeMux(r, cfg)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /user/1 status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "routematch_resolutions_total") {
		t.Errorf("metrics output missing resolutions counter")
	}
}

func TestParseValues(t *testing.T) {
	got, err := parseValues([]string{"a=1", "b=x=y", "c="})
	if err != nil {
		t.Fatalf("parseValues() error = %v", err)
	}
	want := map[string]string{"a": "1", "b": "x=y", "c": ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseValues() mismatch (-want +got):\n%s", diff)
	}

	_, err = parseValues([]string{"=1"})
	assertCode(t, err, "E140")
}
