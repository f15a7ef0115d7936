package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Builder (E001-E009)
	"E001": {
		Category:   CategoryBuilder,
		Message:    "Content added before an element exists",
		Suggestion: `Start the call with a selector such as "div.card" or an existing element`,
	},

	// Script (E010-E019)
	"E010": {
		Category:   CategoryScript,
		Message:    "Script failed to compile",
		Suggestion: "Check the script for syntax errors",
	},
	"E011": {
		Category: CategoryScript,
		Message:  "Script threw an exception",
	},
	"E012": {
		Category:   CategoryScript,
		Message:    "Script did not produce an element",
		Suggestion: "End the script with an expression such as h(\"div\", ...)",
	},
	"E013": {
		Category: CategoryScript,
		Message:  "Script runtime stopped",
	},
	"E014": {
		Category: CategoryScript,
		Message:  "Script file could not be read",
	},

	// Config (E020-E029)
	"E020": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create hyperdom.json or pass --config",
	},
	"E021": {
		Category:   CategoryConfig,
		Message:    "Configuration file is invalid",
		Suggestion: "Check that the file is valid JSON or YAML",
	},
	"E022": {
		Category: CategoryConfig,
		Message:  "Configuration value out of range",
	},

	// Publish (E030-E039)
	"E030": {
		Category:   CategoryPublish,
		Message:    "No bucket configured for publishing",
		Suggestion: "Set publish.bucket in the config or pass --bucket",
	},
	"E031": {
		Category: CategoryPublish,
		Message:  "Snapshot upload failed",
	},
	"E032": {
		Category: CategoryPublish,
		Message:  "Snapshot encoding failed",
	},

	// Server (E040-E049)
	"E040": {
		Category: CategoryServer,
		Message:  "Preview server failed",
	},
	"E041": {
		Category: CategoryServer,
		Message:  "Rendering the document failed",
	},

	// CLI (E050-E059)
	"E050": {
		Category: CategoryCLI,
		Message:  "Invalid command usage",
	},
	"E051": {
		Category: CategoryCLI,
		Message:  "Output could not be written",
	},
}

// GetAllCodes returns all registered codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
