package release

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/errors"
	"github.com/ajxudir/semrel-npm-deprecate/pkg/verbose"
)

// readFileFunc is the function used to read context files. Tests replace it.
var readFileFunc = os.ReadFile

// LoadContext reads a release context from a JSON file.
//
// Parameters:
//   - path: Path of the JSON document written by the release tool
//
// Returns:
//   - *Context: Parsed context with the raw document kept for template bindings
//   - error: EINVALIDCONTEXT PluginError when the file is unreadable or not a JSON object
func LoadContext(path string) (*Context, error) {
	data, err := readFileFunc(path)
	if err != nil {
		return nil, errors.NewPluginError(errors.CodeInvalidContext, err, "cannot read release context %s", path)
	}

	ctx, err := ParseContext(data)
	if err != nil {
		return nil, errors.NewPluginError(errors.CodeInvalidContext, err, "invalid release context %s", path)
	}

	verbose.Printf("Release context loaded from %s (%d top-level keys)", path, len(ctx.raw.Keys()))
	return ctx, nil
}

// ParseContext decodes a release context JSON document.
//
// Parameters:
//   - data: JSON object
//
// Returns:
//   - *Context: Context with typed fields and raw document populated; Logger is left nil
//   - error: Decoding error
func ParseContext(data []byte) (*Context, error) {
	raw := orderedmap.New()
	if err := json.Unmarshal(data, raw); err != nil {
		return nil, fmt.Errorf("decode context: %w", err)
	}

	ctx := &Context{}
	if err := json.Unmarshal(data, ctx); err != nil {
		return nil, fmt.Errorf("decode context fields: %w", err)
	}
	ctx.raw = raw
	return ctx, nil
}
