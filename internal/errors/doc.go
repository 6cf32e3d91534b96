// Package errors provides structured, actionable error messages for
// routematch.
//
// Pattern compilation, route registration and URL building failures are
// reported as *RouteError values that carry a registered code, the pattern
// and offset where compilation stopped, and a hint on how to fix it.
//
// # Error Codes
//
// Each error has a unique code (e.g., "E200") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// Codes are grouped by range: E120 config, E140 CLI, E200 patterns and
// routes.
//
// # Usage
//
//	_, err := pattern.Compile("/user/{id}{name}")
//	fmt.Println(errors.FromPatternError(err).WithRoute("user").Format())
//	// Output:
//	// ERROR E206: Capture not delimited
//	//
//	//   route user
//	//
//	//   → /user/{id}{name}
//	//           ^
//	//   ...
package errors
