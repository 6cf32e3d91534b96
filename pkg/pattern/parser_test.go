package pattern

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func named(name string) *Capture {
	return &Capture{CaptureVariant: CaptureVariant{Kind: Named, Name: name}}
}

func TestParseAccepts(t *testing.T) {
	tests := []struct {
		pattern string
		want    []Token
	}{
		{"/", []Token{{Kind: Separator}}},
		{"/hello", []Token{{Kind: Separator}, {Kind: Exact, Literal: "hello"}}},
		{"/user/{id}", []Token{
			{Kind: Separator},
			{Kind: Exact, Literal: "user"},
			{Kind: Separator},
			{Kind: CaptureToken, Capture: named("id")},
		}},
		{"/{}", []Token{
			{Kind: Separator},
			{Kind: CaptureToken, Capture: &Capture{CaptureVariant: CaptureVariant{Kind: Unnamed}}},
		}},
		{"/{*}", []Token{
			{Kind: Separator},
			{Kind: CaptureToken, Capture: &Capture{CaptureVariant: CaptureVariant{Kind: ManyUnnamed}}},
		}},
		{"/{*:rest}", []Token{
			{Kind: Separator},
			{Kind: CaptureToken, Capture: &Capture{CaptureVariant: CaptureVariant{Kind: ManyNamed, Name: "rest"}}},
		}},
		{"/{5}", []Token{
			{Kind: Separator},
			{Kind: CaptureToken, Capture: &Capture{CaptureVariant: CaptureVariant{Kind: NumberedUnnamed, Sections: 5}}},
		}},
		{"/{5:name}", []Token{
			{Kind: Separator},
			{Kind: CaptureToken, Capture: &Capture{CaptureVariant: CaptureVariant{Kind: NumberedNamed, Name: "name", Sections: 5}}},
		}},
		{"/{x(yes|no)}", []Token{
			{Kind: Separator},
			{Kind: CaptureToken, Capture: &Capture{
				CaptureVariant: CaptureVariant{Kind: Named, Name: "x"},
				Allowed:        []string{"yes", "no"},
			}},
		}},
		{"/{(a|b)}", []Token{
			{Kind: Separator},
			{Kind: CaptureToken, Capture: &Capture{
				CaptureVariant: CaptureVariant{Kind: Unnamed},
				Allowed:        []string{"a", "b"},
			}},
		}},
		{"/a(/b)", []Token{
			{Kind: Separator},
			{Kind: Exact, Literal: "a"},
			{Kind: Optional, Inner: []Token{{Kind: Separator}, {Kind: Exact, Literal: "b"}}},
		}},
		{"?lorem=ipsum", []Token{
			{Kind: QueryBegin},
			{Kind: QueryCapture, Ident: "lorem", Literal: "ipsum"},
		}},
		{"?lorem={ipsum}", []Token{
			{Kind: QueryBegin},
			{Kind: QueryCapture, Ident: "lorem", Capture: named("ipsum")},
		}},
		{"?lorem=ipsum&dolor=sit", []Token{
			{Kind: QueryBegin},
			{Kind: QueryCapture, Ident: "lorem", Literal: "ipsum"},
			{Kind: QuerySeparator},
			{Kind: QueryCapture, Ident: "dolor", Literal: "sit"},
		}},
		{"?lorem=ipsum(&dolor=sit)", []Token{
			{Kind: QueryBegin},
			{Kind: QueryCapture, Ident: "lorem", Literal: "ipsum"},
			{Kind: Optional, Inner: []Token{
				{Kind: QuerySeparator},
				{Kind: QueryCapture, Ident: "dolor", Literal: "sit"},
			}},
		}},
		{"?(lorem=ipsum)", []Token{
			{Kind: QueryBegin},
			{Kind: Optional, Inner: []Token{{Kind: QueryCapture, Ident: "lorem", Literal: "ipsum"}}},
		}},
		{"?(a=b)(&c=d)", []Token{
			{Kind: QueryBegin},
			{Kind: Optional, Inner: []Token{{Kind: QueryCapture, Ident: "a", Literal: "b"}}},
			{Kind: Optional, Inner: []Token{
				{Kind: QuerySeparator},
				{Kind: QueryCapture, Ident: "c", Literal: "d"},
			}},
		}},
		{"(?lorem=ipsum)", []Token{
			{Kind: Optional, Inner: []Token{
				{Kind: QueryBegin},
				{Kind: QueryCapture, Ident: "lorem", Literal: "ipsum"},
			}},
		}},
		{"#frag", []Token{{Kind: FragmentBegin}, {Kind: Exact, Literal: "frag"}}},
		{"/docs(#{section})", []Token{
			{Kind: Separator},
			{Kind: Exact, Literal: "docs"},
			{Kind: Optional, Inner: []Token{
				{Kind: FragmentBegin},
				{Kind: CaptureToken, Capture: named("section")},
			}},
		}},
		{"/a?b=c#d", []Token{
			{Kind: Separator},
			{Kind: Exact, Literal: "a"},
			{Kind: QueryBegin},
			{Kind: QueryCapture, Ident: "b", Literal: "c"},
			{Kind: FragmentBegin},
			{Kind: Exact, Literal: "d"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.pattern, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		pattern string
		want    error
	}{
		{"", ErrEmptyPattern},
		{"/{", ErrSyntax},
		{"/{}}", ErrSyntax},
		{"/{a b}", ErrSyntax},
		{"/{1a}", ErrSyntax},
		{"/{0}", ErrSyntax},
		{"/{99999999999999999999}", ErrSyntax},
		{"/{*:}", ErrSyntax},
		{"/{x()}", ErrSyntax},
		{"/a()", ErrSyntax},
		{"/a(/b", ErrSyntax},
		{"/a b", ErrSyntax},
		{"?", ErrSyntax},
		{"?lorem", ErrSyntax},
		{"?=ipsum", ErrSyntax},
		{"?a=b(&c=d)&e=f", ErrSyntax},
		{"?(&a=b)", ErrSyntax},
		{"/{a}/{a}", ErrDuplicateCapture},
		{"/{a}(/{a})", ErrDuplicateCapture},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.pattern)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.pattern, err, tt.want)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error type = %T, want *ParseError", tt.pattern, err)
			}
			if perr.Pattern != tt.pattern {
				t.Errorf("Pattern = %q, want %q", perr.Pattern, tt.pattern)
			}
		})
	}
}

func TestParseUnnamedIndex(t *testing.T) {
	tokens, err := Parse("/{}/{name}/{*}")
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, tok := range tokens {
		if tok.Kind == CaptureToken {
			got = append(got, tok.Capture.Key())
		}
	}
	want := []string{"0", "name", "1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestParseUnnamedIndexAcrossGroups(t *testing.T) {
	tokens, err := Parse("?(a={})(&b={})")
	if err != nil {
		t.Fatal(err)
	}
	got := Keys(Optimize(tokens, false))
	want := []string{"0", "1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrorDetails(t *testing.T) {
	tests := []struct {
		pattern   string
		context   string
		offset    int
		remaining string
	}{
		{"/a b", "route", 2, " b"},
		{"/{a}/{a}", "capture", 5, "{a}"},
		{"/{0}", "capture", 2, "0}"},
		{"/a()", "optional", 3, ")"},
		{"/a(/b())", "optional", 6, "))"},
		{"?(a=b)()", "optional", 7, ")"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error = %v, want *ParseError", tt.pattern, err)
			}
			if perr.Context != tt.context {
				t.Errorf("Context = %q, want %q", perr.Context, tt.context)
			}
			if perr.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", perr.Offset, tt.offset)
			}
			if got := perr.Remaining(); got != tt.remaining {
				t.Errorf("Remaining() = %q, want %q", got, tt.remaining)
			}
		})
	}
}

func TestParseEmptyOptionalMessage(t *testing.T) {
	_, err := Parse("/a()")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse error = %v, want *ParseError", err)
	}
	if perr.Message != "empty optional group" {
		t.Errorf("Message = %q, want %q", perr.Message, "empty optional group")
	}
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("error = %v, want ErrSyntax", err)
	}
}

func TestParseMaxDepth(t *testing.T) {
	deep := "/a" + "((((/b))))"

	if _, err := Parse(deep, WithMaxDepth(4)); err != nil {
		t.Errorf("depth 4 with limit 4: error = %v", err)
	}
	if _, err := Parse(deep, WithMaxDepth(3)); !errors.Is(err, ErrTooDeep) {
		t.Errorf("depth 4 with limit 3: error = %v, want ErrTooDeep", err)
	}
	if _, err := Parse(deep, WithMaxDepth(0)); err != nil {
		t.Errorf("unlimited depth: error = %v", err)
	}
}

func TestTokenString(t *testing.T) {
	patterns := []string{
		"/user/{id}",
		"/files/{*:path}",
		"/{3:date}/{}",
		"/{x(yes|no)}",
		"/a(/b(/c))",
		"?q={q}&lang=en(&page={p})",
		"/docs#{section}",
	}

	for _, p := range patterns {
		tokens, err := Parse(p)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", p, err)
		}
		var got string
		for _, tok := range tokens {
			got += tok.String()
		}
		if got != p {
			t.Errorf("rendered %q, want %q", got, p)
		}
	}
}
