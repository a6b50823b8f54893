package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/constants"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/errors"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/verbose"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/warnings"
)

// DefaultMaxConfigFileSize is the largest config file LoadConfig reads.
const DefaultMaxConfigFileSize int64 = 1 << 20

// ConfigFileNames lists the release config files searched in the working
// directory, in order.
var ConfigFileNames = []string{".releaserc", ".releaserc.yaml", ".releaserc.yml", ".releaserc.json"}

var (
	readFileFunc = os.ReadFile
	statFunc     = os.Stat
)

// LoadConfig loads the plugin options.
//
// If configPath is provided, that file is loaded and may hold either the
// plugin options themselves or a release config with a plugins list.
// Otherwise the release config files in workDir are tried in order, then
// the "release" key of workDir/package.json. When nothing configures the
// plugin an empty configuration is returned.
//
// Parameters:
//   - configPath: Explicit config file, or empty for discovery
//   - workDir: Directory searched for release config files
//
// Returns:
//   - *PluginConfig: Loaded options, never nil on success
//   - error: EINVALIDCONFIG PluginError when a file cannot be read or is malformed
func LoadConfig(configPath, workDir string) (*PluginConfig, error) {
	if configPath != "" {
		verbose.Infof("Loading config from: %s", configPath)
		return loadConfigFile(configPath, true)
	}

	for _, name := range ConfigFileNames {
		path := filepath.Join(workDir, name)
		if _, err := statFunc(path); err != nil {
			continue
		}
		verbose.Infof("Found release config: %s", path)
		return loadConfigFile(path, false)
	}

	manifestPath := filepath.Join(workDir, constants.ManifestFile)
	if data, err := readFileFunc(manifestPath); err == nil {
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Content) > 0 {
			if release := mappingValue(doc.Content[0], "release"); release != nil {
				verbose.Infof("Using release config from %s", manifestPath)
				return decodeOptions(release, manifestPath+"#release", false)
			}
		}
	}

	verbose.Info("No plugin configuration found")
	return &PluginConfig{}, nil
}

// loadConfigFile reads and decodes one config file, enforcing the size limit.
func loadConfigFile(path string, explicit bool) (*PluginConfig, error) {
	info, err := statFunc(path)
	if err != nil {
		return nil, errors.NewPluginError(errors.CodeInvalidConfig, err, "cannot read config file %s", path)
	}
	if info.Size() > DefaultMaxConfigFileSize {
		return nil, errors.NewPluginError(errors.CodeInvalidConfig, nil,
			"config file too large: %s is %d bytes (max %d bytes)", path, info.Size(), DefaultMaxConfigFileSize)
	}

	data, err := readFileFunc(path)
	if err != nil {
		return nil, errors.NewPluginError(errors.CodeInvalidConfig, err, "cannot read config file %s", path)
	}
	return loadConfigData(data, path, explicit)
}

// loadConfigData parses YAML or JSON config data.
//
// Parameters:
//   - data: File content
//   - source: Name used in messages and PluginConfig.Source
//   - explicit: The file was named by the user and is read as plugin
//     options when it has no plugins list
//
// Returns:
//   - *PluginConfig: Decoded options
//   - error: EINVALIDCONFIG PluginError for syntax or structure errors
func loadConfigData(data []byte, source string, explicit bool) (*PluginConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewPluginError(errors.CodeInvalidConfig, err, "invalid YAML in %s", source)
	}
	if len(doc.Content) == 0 {
		verbose.Printf("Config %s is empty", source)
		return &PluginConfig{Source: source}, nil
	}
	return decodeOptions(doc.Content[0], source, explicit)
}

// decodeOptions locates the plugin options in root, validates and decodes them.
func decodeOptions(root *yaml.Node, source string, explicit bool) (*PluginConfig, error) {
	opts, found := pluginOptions(root, explicit)
	if !found {
		verbose.Printf("Config %s does not configure %s", source, constants.PluginName)
		return &PluginConfig{Source: source}, nil
	}

	result := ValidateOptionsNode(opts)
	for _, w := range result.Warnings {
		warnings.Warnf("%s: %s", source, w)
	}
	if result.HasErrors() {
		return nil, errors.NewPluginError(errors.CodeInvalidConfig, nil, "%s\n%s", source, result.ErrorMessages())
	}

	cfg := &PluginConfig{}
	if err := opts.Decode(cfg); err != nil {
		return nil, errors.NewPluginError(errors.CodeInvalidConfig, err, "invalid options in %s", source)
	}
	cfg.Source = source

	verbose.ConfigLoaded(source, len(cfg.Deprecations))
	return cfg, nil
}

// pluginOptions returns the node holding this plugin's options.
//
// A release config lists plugins as names or [name, options] pairs; the
// entry whose name ends in the plugin suffix is used. Without a plugins
// list, root holds the options when it was named explicitly or already
// uses an option key.
func pluginOptions(root *yaml.Node, explicit bool) (*yaml.Node, bool) {
	if root.Kind != yaml.MappingNode {
		return root, explicit
	}

	plugins := mappingValue(root, "plugins")
	if plugins == nil {
		if explicit {
			return root, true
		}
		for _, key := range knownOptions {
			if mappingValue(root, key) != nil {
				return root, true
			}
		}
		return nil, false
	}

	if plugins.Kind != yaml.SequenceNode {
		return nil, false
	}
	for _, entry := range plugins.Content {
		switch entry.Kind {
		case yaml.ScalarNode:
			if isPluginName(entry.Value) {
				return emptyMapping(), true
			}
		case yaml.SequenceNode:
			if len(entry.Content) == 0 || !isPluginName(entry.Content[0].Value) {
				continue
			}
			if len(entry.Content) > 1 {
				return entry.Content[1], true
			}
			return emptyMapping(), true
		}
	}
	return nil, false
}

func isPluginName(name string) bool {
	return strings.HasSuffix(name, constants.PluginSuffix)
}

func emptyMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// mappingValue returns the value node for key in a mapping node, or nil.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// Describe returns a short human-readable summary of the configuration.
func (c *PluginConfig) Describe() string {
	if c == nil || c.Source == "" {
		return "no configuration file"
	}
	return fmt.Sprintf("%s (%d deprecation(s))", c.Source, len(c.Deprecations))
}
