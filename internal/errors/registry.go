package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
	DocURL     string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid routematch.json",
		Detail:   "The routematch.json configuration file is malformed.",
		DocURL:   "https://routematch.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Missing required configuration",
		Detail:   "A required configuration value is not set.",
		DocURL:   "https://routematch.dev/docs/errors/E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or malformed.",
		DocURL:   "https://routematch.dev/docs/errors/E122",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
		Detail:   "The command was called with missing or malformed arguments.",
		DocURL:   "https://routematch.dev/docs/errors/E140",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Config file not found",
		Detail:   "No routematch.json was found. Pass --config or run the command from a directory containing one.",
		DocURL:   "https://routematch.dev/docs/errors/E141",
	},

	// ============================================
	// Pattern Errors (E200-E219)
	// ============================================

	"E200": {
		Category:   CategoryPattern,
		Message:    "Invalid route pattern",
		Detail:     "The pattern contains text that is not a literal, a {capture}, or a (group).",
		Suggestion: "Literals may not contain spaces or any of / ? & # = ( ) | [ ] { }.",
		DocURL:     "https://routematch.dev/docs/errors/E200",
	},
	"E201": {
		Category:   CategoryPattern,
		Message:    "Duplicate capture name",
		Detail:     "Each named capture may appear only once per pattern.",
		Suggestion: "Rename one of the captures.",
		DocURL:     "https://routematch.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryPattern,
		Message:  "Optional groups nested too deeply",
		Detail:   "The pattern nests (optional) groups deeper than the configured maxDepth.",
		DocURL:   "https://routematch.dev/docs/errors/E202",
	},
	"E206": {
		Category:   CategoryPattern,
		Message:    "Capture not delimited",
		Detail:     "A capture is followed directly by another capture, so the end of its value cannot be found.",
		Suggestion: "Put a literal such as \"/\" or \"-\" between the captures, or use a numbered capture like {2:name}.",
		DocURL:     "https://routematch.dev/docs/errors/E206",
	},
	"E207": {
		Category: CategoryPattern,
		Message:  "Empty route pattern",
		Detail:   "A route pattern must contain at least one character.",
		DocURL:   "https://routematch.dev/docs/errors/E207",
	},

	// ============================================
	// Route and Expansion Errors
	// ============================================

	"E203": {
		Category: CategoryRoute,
		Message:  "Duplicate route name",
		Detail:   "A route with this name has already been registered.",
		DocURL:   "https://routematch.dev/docs/errors/E203",
	},
	"E204": {
		Category: CategoryRoute,
		Message:  "Unknown route",
		Detail:   "No route with this name is registered.",
		DocURL:   "https://routematch.dev/docs/errors/E204",
	},
	"E205": {
		Category: CategoryExpand,
		Message:  "Missing capture value",
		Detail:   "Building a URL requires a value for every capture outside optional groups.",
		DocURL:   "https://routematch.dev/docs/errors/E205",
	},
	"E208": {
		Category: CategoryExpand,
		Message:  "Invalid capture value",
		Detail:   "The value is not in the capture's whitelist or does not have the capture's segment shape.",
		DocURL:   "https://routematch.dev/docs/errors/E208",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
