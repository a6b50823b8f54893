package release

import (
	"github.com/iancoleman/orderedmap"
)

// Bindings returns the template scope for this context.
//
// The scope starts from the raw document the context was loaded from and
// overlays the typed fields, so values set from flags win while unknown
// keys (nextRelease.notes, commits, custom keys) stay reachable.
//
// Returns:
//   - map[string]any: Top-level template identifiers
func (c *Context) Bindings() map[string]any {
	scope := make(map[string]any)
	if c.raw != nil {
		for _, key := range c.raw.Keys() {
			v, _ := c.raw.Get(key)
			scope[key] = v
		}
	}

	scope["cwd"] = c.Cwd

	env := make(map[string]any, len(c.Env))
	for k, v := range c.Env {
		env[k] = v
	}
	scope["env"] = env

	scope["branch"] = overlay(scope["branch"], map[string]string{
		"name":    c.Branch.Name,
		"channel": c.Branch.Channel,
		"type":    c.Branch.Type,
	})
	scope["options"] = overlay(scope["options"], map[string]string{
		"repositoryUrl": c.Options.RepositoryURL,
		"tagFormat":     c.Options.TagFormat,
	})
	if opts, ok := scope["options"].(map[string]any); ok {
		opts["dryRun"] = c.Options.DryRun
	}

	if c.NextRelease != nil {
		scope["nextRelease"] = overlay(scope["nextRelease"], c.NextRelease.fields())
	}
	if c.LastRelease != nil {
		scope["lastRelease"] = overlay(scope["lastRelease"], c.LastRelease.fields())
	}

	return scope
}

func (r *Release) fields() map[string]string {
	return map[string]string{
		"type":    r.Type,
		"version": r.Version,
		"gitTag":  r.GitTag,
		"gitHead": r.GitHead,
		"channel": r.Channel,
		"name":    r.Name,
		"notes":   r.Notes,
	}
}

// overlay copies base (an object from the raw document, if any) into a new
// map and sets every non-empty typed value on top of it.
func overlay(base any, typed map[string]string) map[string]any {
	out := make(map[string]any)
	switch b := base.(type) {
	case orderedmap.OrderedMap:
		for _, k := range b.Keys() {
			out[k], _ = b.Get(k)
		}
	case *orderedmap.OrderedMap:
		for _, k := range b.Keys() {
			out[k], _ = b.Get(k)
		}
	case map[string]any:
		for k, v := range b {
			out[k] = v
		}
	}
	for k, v := range typed {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
