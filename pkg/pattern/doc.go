// Package pattern compiles route patterns into matcher tokens.
//
// A pattern describes the path, query and fragment of a URL:
//
//	/user/{id}                 one segment captured under "id"
//	/files/{*:path}            every remaining segment under "path"
//	/archive/{3:date}          exactly three segments under "date"
//	/{}/{*}                    unnamed captures, keyed "0", "1", ...
//	/toggle/{state(on|off)}    capture restricted to a whitelist
//	/a(/b)                     "/b" may be absent
//	/search?q={q}(&page={p})   mandatory then optional query terms
//	/docs#{section}            fragment capture
//
// # Compilation
//
// Compilation runs in two passes. Parse tokenizes the pattern into Token
// values, failing with a *ParseError on the first text no rule accepts.
// Optimize folds literal tokens into Match runs and, by default, appends
// an optional trailing "/" so "/user" also matches "/user/".
//
//	tokens, err := pattern.Compile("/user/{id}")
//	if err != nil {
//	    var perr *pattern.ParseError
//	    errors.As(err, &perr) // perr.Context, perr.Offset
//	}
//
// Compiled sequences are immutable and safe to share across goroutines.
// Cache memoizes compilation for callers that compile the same patterns
// repeatedly.
package pattern
