// Package matcher runs compiled route patterns against URL strings.
//
// Matching walks the token sequence left to right. Literals must appear
// verbatim; a capture takes input up to the next literal the pattern
// expects, and optional groups are tried and skipped when they do not fit.
// There is no backtracking into captures that already succeeded.
//
//	tokens := pattern.MustCompile("/user/{id}(/posts/{post})")
//	caps, ok := matcher.Match(tokens, "/user/42/posts/7")
//	// ok == true, caps.Get("id") == "42", caps.Get("post") == "7"
//
// Expand runs the other way, filling a pattern from capture values.
package matcher
