package router

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/routematch/pkg/matcher"
	"github.com/vango-dev/routematch/pkg/routepath"
)

func caps(kv ...string) matcher.Captures {
	var entries []matcher.Entry
	for i := 0; i+1 < len(kv); i += 2 {
		entries = append(entries, matcher.Entry{Key: kv[i], Value: kv[i+1]})
	}
	return matcher.NewCaptures(entries...)
}

func TestBindScalars(t *testing.T) {
	type Params struct {
		Name   string  `capture:"name"`
		ID     int     `capture:"id"`
		Big    int64   `capture:"big"`
		Count  uint    `capture:"count"`
		Ratio  float64 `capture:"ratio"`
		Active bool    `capture:"active"`
		Skip   string  `capture:"-"`
		Plain  string
	}

	var p Params
	err := Bind(caps(
		"name", "hello%20world",
		"id", "123",
		"big", "9223372036854775807",
		"count", "42",
		"ratio", "0.5",
		"active", "true",
		"-", "x",
		"Plain", "y",
	), &p)
	if err != nil {
		t.Fatalf("Bind() error: %v", err)
	}

	want := Params{
		Name:   "hello world",
		ID:     123,
		Big:    9223372036854775807,
		Count:  42,
		Ratio:  0.5,
		Active: true,
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("Bind() mismatch (-want +got):\n%s", diff)
	}
}

func TestBindOptionalPointers(t *testing.T) {
	type Params struct {
		ID   int  `capture:"id"`
		Post *int `capture:"post"`
	}

	var p Params
	if err := Bind(caps("id", "1"), &p); err != nil {
		t.Fatalf("Bind() error: %v", err)
	}
	if p.Post != nil {
		t.Errorf("Post = %d, want nil", *p.Post)
	}

	if err := Bind(caps("id", "1", "post", "7"), &p); err != nil {
		t.Fatalf("Bind() error: %v", err)
	}
	if p.Post == nil || *p.Post != 7 {
		t.Errorf("Post = %v, want 7", p.Post)
	}
}

func TestBindManySegments(t *testing.T) {
	type Params struct {
		Path []string `capture:"path"`
	}

	var p Params
	if err := Bind(caps("path", "docs/a%20b/c"), &p); err != nil {
		t.Fatalf("Bind() error: %v", err)
	}
	if diff := cmp.Diff([]string{"docs", "a b", "c"}, p.Path); diff != "" {
		t.Errorf("Path mismatch (-want +got):\n%s", diff)
	}
}

func TestBindErrors(t *testing.T) {
	type Params struct {
		ID   int    `capture:"id"`
		Name string `capture:"name"`
	}

	tests := []struct {
		name    string
		caps    matcher.Captures
		wantErr error
	}{
		{name: "invalid int", caps: caps("id", "abc")},
		{name: "encoded slash", caps: caps("name", "a%2Fb"), wantErr: routepath.ErrEncodedSlashInSegment},
		{name: "bad escape", caps: caps("name", "a%G1"), wantErr: routepath.ErrInvalidPercentEscape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Params
			err := Bind(tt.caps, &p)
			if err == nil {
				t.Fatal("Bind() error = nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Bind() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBindTarget(t *testing.T) {
	if err := Bind(caps(), nil); err != nil {
		t.Errorf("Bind(nil) error = %v", err)
	}

	var s struct{}
	if err := Bind(caps(), s); err == nil {
		t.Error("Bind(non-pointer) should fail")
	}

	var n int
	if err := Bind(caps(), &n); err == nil {
		t.Error("Bind(pointer to int) should fail")
	}

	var unsupported struct {
		M map[string]string `capture:"m"`
	}
	if err := Bind(caps("m", "x"), &unsupported); err == nil {
		t.Error("Bind(map field) should fail")
	}
}
