package template

import (
	"fmt"
	"strings"
)

// evalError is a runtime failure tied to an expression position.
type evalError struct {
	pos int
	msg string
}

func (e *evalError) Error() string {
	return e.msg
}

func errorf(n node, format string, args ...any) error {
	return &evalError{pos: n.position(), msg: fmt.Sprintf(format, args...)}
}

// eval evaluates n against the root scope.
func eval(n node, scope any) (any, error) {
	switch x := n.(type) {
	case *literalNode:
		return x.value, nil
	case *identNode:
		if isNullish(scope) {
			return nil, errorf(x, "%s is not defined", x.name)
		}
		v := property(scope, x.name)
		if _, missing := v.(undefinedValue); missing {
			return nil, errorf(x, "%s is not defined", x.name)
		}
		return v, nil
	case *memberNode:
		target, err := eval(x.target, scope)
		if err != nil {
			return nil, err
		}
		if isNullish(target) {
			return nil, errorf(x, "cannot read property %q of %s", x.name, typeName(target))
		}
		return property(target, x.name), nil
	case *indexNode:
		target, err := eval(x.target, scope)
		if err != nil {
			return nil, err
		}
		index, err := eval(x.index, scope)
		if err != nil {
			return nil, err
		}
		if isNullish(target) {
			return nil, errorf(x, "cannot read property %q of %s", toString(index), typeName(target))
		}
		if f, ok := normalize(index).(float64); ok && f == float64(int(f)) {
			return element(target, int(f)), nil
		}
		return property(target, toString(index)), nil
	case *callNode:
		return evalCall(x, scope)
	}
	return nil, errorf(n, "unsupported expression")
}

func evalCall(n *callNode, scope any) (any, error) {
	target, err := eval(n.target, scope)
	if err != nil {
		return nil, err
	}
	if isNullish(target) {
		return nil, errorf(n, "cannot read property %q of %s", n.method, typeName(target))
	}

	args := make([]any, len(n.args))
	for i, arg := range n.args {
		v, err := eval(arg, scope)
		if err != nil {
			return nil, err
		}
		args[i] = normalize(v)
	}

	var methods map[string]method
	switch target.(type) {
	case string:
		methods = stringMethods
	case []any:
		methods = arrayMethods
	}
	m, ok := methods[n.method]
	if !ok {
		return nil, errorf(n, "method %q is not allowed on %s", n.method, typeName(target))
	}
	if len(args) < m.minArgs || len(args) > m.maxArgs {
		return nil, errorf(n, "%s() expects %s, got %d", n.method, m.arity(), len(args))
	}
	v, err := m.call(target, args)
	if err != nil {
		return nil, errorf(n, "%s(): %v", n.method, err)
	}
	return v, nil
}

// method is an allow-listed string or array operation.
type method struct {
	minArgs int
	maxArgs int
	call    func(target any, args []any) (any, error)
}

func (m method) arity() string {
	switch {
	case m.minArgs == m.maxArgs && m.minArgs == 1:
		return "1 argument"
	case m.minArgs == m.maxArgs:
		return fmt.Sprintf("%d arguments", m.minArgs)
	}
	return fmt.Sprintf("%d to %d arguments", m.minArgs, m.maxArgs)
}

var stringMethods = map[string]method{
	"split": {0, 2, func(target any, args []any) (any, error) {
		s := target.(string)
		if len(args) == 0 || isNullish(args[0]) {
			return []any{s}, nil
		}
		sep, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}
		var parts []string
		if sep == "" {
			for _, r := range s {
				parts = append(parts, string(r))
			}
		} else {
			parts = strings.Split(s, sep)
		}
		if len(args) > 1 && !isNullish(args[1]) {
			limit, err := intArg(args, 1)
			if err != nil {
				return nil, err
			}
			if limit >= 0 && limit < len(parts) {
				parts = parts[:limit]
			}
		}
		out := make([]any, len(parts))
		for i, p := range parts {
			out[i] = p
		}
		return out, nil
	}},
	"trim": {0, 0, func(target any, _ []any) (any, error) {
		return strings.TrimSpace(target.(string)), nil
	}},
	"toUpperCase": {0, 0, func(target any, _ []any) (any, error) {
		return strings.ToUpper(target.(string)), nil
	}},
	"toLowerCase": {0, 0, func(target any, _ []any) (any, error) {
		return strings.ToLower(target.(string)), nil
	}},
	"replace": {2, 2, func(target any, args []any) (any, error) {
		search, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}
		return strings.Replace(target.(string), search, toString(args[1]), 1), nil
	}},
	"slice": {0, 2, func(target any, args []any) (any, error) {
		r := []rune(target.(string))
		start, end, err := sliceBounds(len(r), args)
		if err != nil {
			return nil, err
		}
		return string(r[start:end]), nil
	}},
	"startsWith": {1, 1, func(target any, args []any) (any, error) {
		prefix, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}
		return strings.HasPrefix(target.(string), prefix), nil
	}},
	"endsWith": {1, 1, func(target any, args []any) (any, error) {
		suffix, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}
		return strings.HasSuffix(target.(string), suffix), nil
	}},
	"includes": {1, 1, func(target any, args []any) (any, error) {
		sub, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}
		return strings.Contains(target.(string), sub), nil
	}},
}

var arrayMethods = map[string]method{
	"join": {0, 1, func(target any, args []any) (any, error) {
		sep := ","
		if len(args) == 1 && !isNullish(args[0]) {
			sep = toString(args[0])
		}
		items := target.([]any)
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = toString(item)
		}
		return strings.Join(parts, sep), nil
	}},
	"slice": {0, 2, func(target any, args []any) (any, error) {
		items := target.([]any)
		start, end, err := sliceBounds(len(items), args)
		if err != nil {
			return nil, err
		}
		out := make([]any, end-start)
		copy(out, items[start:end])
		return out, nil
	}},
	"includes": {1, 1, func(target any, args []any) (any, error) {
		for _, item := range target.([]any) {
			if strictEqual(item, args[0]) {
				return true, nil
			}
		}
		return false, nil
	}},
}

func stringArg(args []any, i int) (string, error) {
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("argument %d must be a string, got %s", i+1, typeName(args[i]))
	}
	return s, nil
}

func intArg(args []any, i int) (int, error) {
	f, ok := args[i].(float64)
	if !ok || f != float64(int(f)) {
		return 0, fmt.Errorf("argument %d must be an integer, got %s", i+1, typeName(args[i]))
	}
	return int(f), nil
}

// sliceBounds resolves slice(start, end) arguments with negative offsets
// counted from the end and both bounds clamped to [0, length].
func sliceBounds(length int, args []any) (int, int, error) {
	start, end := 0, length
	if len(args) > 0 && !isNullish(args[0]) {
		v, err := intArg(args, 0)
		if err != nil {
			return 0, 0, err
		}
		start = clampIndex(v, length)
	}
	if len(args) > 1 && !isNullish(args[1]) {
		v, err := intArg(args, 1)
		if err != nil {
			return 0, 0, err
		}
		end = clampIndex(v, length)
	}
	if end < start {
		end = start
	}
	return start, end, nil
}

func clampIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}
