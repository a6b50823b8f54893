package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/verbose"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field    string
	Message  string
	Expected string // Expected type or schema hint
}

// Error returns the error message string.
//
// Returns:
//   - string: formatted error message with field name if available
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// VerboseError returns the error message with the expected type, if known.
func (e ValidationError) VerboseError() string {
	if e.Expected == "" {
		return e.Error()
	}
	return fmt.Sprintf("%s\n    Expected: %s", e.Error(), e.Expected)
}

// ValidationResult holds the results of configuration validation.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorMessages returns all error messages as a formatted string.
//
// With verbose output enabled each entry includes the expected value.
//
// Returns:
//   - string: formatted error messages, or empty string if no errors
func (r *ValidationResult) ErrorMessages() string {
	if len(r.Errors) == 0 {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msg := e.Error()
		if verbose.IsEnabled() {
			msg = e.VerboseError()
		}
		msgs = append(msgs, "  - "+msg)
	}
	return "Configuration validation failed:\n" + strings.Join(msgs, "\n")
}

// knownOptions lists the plugin option keys.
var knownOptions = []string{"deprecations", "skipAuth", "pkgRoot"}

// commonTypos maps common misspellings to the correct key.
var commonTypos = map[string]string{
	"deprecation":  "deprecations",
	"deprecate":    "deprecations",
	"skip_auth":    "skipAuth",
	"skip-auth":    "skipAuth",
	"skipauth":     "skipAuth",
	"pkg_root":     "pkgRoot",
	"pkg-root":     "pkgRoot",
	"pkgroot":      "pkgRoot",
	"packageRoot":  "pkgRoot",
	"versions":     "version",
	"msg":          "message",
	"messages":     "message",
	"deprecatedBy": "message",
}

// ValidateOptionsNode checks the structure of a plugin options node.
//
// Unknown keys are reported as warnings since release configs commonly share
// option objects between plugins; wrong types are errors.
//
// Parameters:
//   - node: Options mapping node
//
// Returns:
//   - *ValidationResult: Errors and warnings found
func ValidateOptionsNode(node *yaml.Node) *ValidationResult {
	result := &ValidationResult{}

	if node.Kind != yaml.MappingNode {
		if node.ShortTag() != "!!null" {
			result.Errors = append(result.Errors, ValidationError{
				Message:  fmt.Sprintf("plugin options must be a mapping (line %d)", node.Line),
				Expected: "mapping with keys " + strings.Join(knownOptions, ", "),
			})
		}
		return result
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "deprecations":
			validateRules(value, result)
		case "skipAuth":
			if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!bool" {
				result.Errors = append(result.Errors, ValidationError{
					Field: "skipAuth", Message: fmt.Sprintf("must be a boolean (line %d)", value.Line), Expected: "true or false",
				})
			}
		case "pkgRoot":
			if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!str" {
				result.Errors = append(result.Errors, ValidationError{
					Field: "pkgRoot", Message: fmt.Sprintf("must be a string (line %d)", value.Line), Expected: "directory path",
				})
			}
		default:
			result.Warnings = append(result.Warnings, unknownKey(key, ""))
		}
	}

	verbose.Printf("Config validation: %d error(s), %d warning(s)", len(result.Errors), len(result.Warnings))
	return result
}

func validateRules(node *yaml.Node, result *ValidationResult) {
	if node.ShortTag() == "!!null" {
		return
	}
	if node.Kind != yaml.SequenceNode {
		result.Errors = append(result.Errors, ValidationError{
			Field:    "deprecations",
			Message:  fmt.Sprintf("must be a list (line %d)", node.Line),
			Expected: "list of {version, message}",
		})
		return
	}

	for i, item := range node.Content {
		field := fmt.Sprintf("deprecations[%d]", i)
		if item.Kind != yaml.MappingNode {
			result.Errors = append(result.Errors, ValidationError{
				Field:    field,
				Message:  fmt.Sprintf("must be a mapping (line %d)", item.Line),
				Expected: "{version, message}",
			})
			continue
		}

		hasVersion := false
		for j := 0; j+1 < len(item.Content); j += 2 {
			key, value := item.Content[j], item.Content[j+1]
			switch key.Value {
			case "version", "message":
				if value.Kind != yaml.ScalarNode || value.ShortTag() == "!!null" {
					result.Errors = append(result.Errors, ValidationError{
						Field:    field + "." + key.Value,
						Message:  fmt.Sprintf("must be a string (line %d)", value.Line),
						Expected: "string template",
					})
				}
				if key.Value == "version" {
					hasVersion = true
				}
			default:
				result.Warnings = append(result.Warnings, unknownKey(key, field+"."))
			}
		}
		if !hasVersion {
			result.Errors = append(result.Errors, ValidationError{
				Field: field + ".version", Message: fmt.Sprintf("is required (line %d)", item.Line),
			})
		}
	}
}

func unknownKey(key *yaml.Node, prefix string) string {
	msg := fmt.Sprintf("unknown option '%s%s' (line %d)", prefix, key.Value, key.Line)
	if suggestion, ok := commonTypos[key.Value]; ok {
		msg += fmt.Sprintf(" (did you mean '%s'?)", suggestion)
	}
	return msg
}
