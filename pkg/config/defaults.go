package config

import (
	_ "embed"
)

//go:embed template.yml
var templateConfigYAML string

// GetTemplateConfig returns the embedded starter configuration YAML.
//
// Returns:
//   - string: the template configuration as YAML
func GetTemplateConfig() string {
	return templateConfigYAML
}
