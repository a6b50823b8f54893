package template

import (
	"errors"
	"fmt"
	"strings"
)

// Error reports a template that failed to parse or evaluate.
//
// Fields:
//   - Template: The full template text
//   - Pos: Byte offset into Template where the problem was found
//   - Msg: Description of the problem
type Error struct {
	Template string
	Pos      int
	Msg      string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("template %q: %s (offset %d)", e.Template, e.Msg, e.Pos)
}

// segment is either literal text or an expression to interpolate.
type segment struct {
	literal string
	expr    node
	escape  bool
	offset  int
}

// Template is a parsed template ready to be executed against many scopes.
type Template struct {
	text     string
	segments []segment
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Parse compiles text into a Template.
//
// It performs the following operations:
//   - Splits text into literal runs and ${...}, <%= ... %>, <%- ... %> blocks
//   - Compiles every block with the restricted expression grammar
//   - Rejects <% ... %> code blocks and unterminated blocks
//
// Parameters:
//   - text: Template text, e.g. "< ${nextRelease.version}"
//
// Returns:
//   - *Template: The compiled template
//   - error: *Error describing the first syntax problem
func Parse(text string) (*Template, error) {
	t := &Template{text: text}
	var literal strings.Builder
	i := 0
	for i < len(text) {
		open, closeDelim, escape, ok := delimiterAt(text, i)
		if !ok {
			literal.WriteByte(text[i])
			i++
			continue
		}
		if open == "<%" {
			return nil, &Error{Template: text, Pos: i, Msg: "code blocks (<% %>) are not supported; use <%= %> or ${}"}
		}

		start := i + len(open)
		end := findClose(text, start, closeDelim)
		if end < 0 {
			return nil, &Error{Template: text, Pos: i, Msg: fmt.Sprintf("unterminated %s block", open)}
		}

		expr, err := parseExpr(text[start:end])
		if err != nil {
			return nil, wrapPosError(text, start, err)
		}
		if literal.Len() > 0 {
			t.segments = append(t.segments, segment{literal: literal.String()})
			literal.Reset()
		}
		t.segments = append(t.segments, segment{expr: expr, escape: escape, offset: start})
		i = end + len(closeDelim)
	}
	if literal.Len() > 0 {
		t.segments = append(t.segments, segment{literal: literal.String()})
	}
	return t, nil
}

// delimiterAt reports the opening delimiter starting at text[i], if any.
func delimiterAt(text string, i int) (open, closeDelim string, escape, ok bool) {
	rest := text[i:]
	switch {
	case strings.HasPrefix(rest, "${"):
		return "${", "}", false, true
	case strings.HasPrefix(rest, "<%="):
		return "<%=", "%>", false, true
	case strings.HasPrefix(rest, "<%-"):
		return "<%-", "%>", true, true
	case strings.HasPrefix(rest, "<%"):
		return "<%", "%>", false, true
	}
	return "", "", false, false
}

// findClose returns the offset of closeDelim at or after start, skipping
// over quoted string literals. It returns -1 when there is none.
func findClose(text string, start int, closeDelim string) int {
	var quote byte
	for i := start; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		if c == '\'' || c == '"' {
			quote = c
			continue
		}
		if strings.HasPrefix(text[i:], closeDelim) {
			return i
		}
	}
	return -1
}

func wrapPosError(text string, offset int, err error) error {
	var se *syntaxError
	if errors.As(err, &se) {
		return &Error{Template: text, Pos: offset + se.pos, Msg: se.msg}
	}
	var ee *evalError
	if errors.As(err, &ee) {
		return &Error{Template: text, Pos: offset + ee.pos, Msg: ee.msg}
	}
	return &Error{Template: text, Pos: offset, Msg: err.Error()}
}

// Execute renders the template against data.
//
// data is typically a map[string]any or an *orderedmap.OrderedMap holding
// the release context; its top-level keys are the identifiers available to
// expressions.
//
// Parameters:
//   - data: Binding scope for identifiers
//
// Returns:
//   - string: The rendered text
//   - error: *Error for the first expression that failed to evaluate
func (t *Template) Execute(data any) (string, error) {
	scope := normalize(data)
	var out strings.Builder
	for _, seg := range t.segments {
		if seg.expr == nil {
			out.WriteString(seg.literal)
			continue
		}
		v, err := eval(seg.expr, scope)
		if err != nil {
			return "", wrapPosError(t.text, seg.offset, err)
		}
		s := toString(v)
		if seg.escape {
			s = htmlEscaper.Replace(s)
		}
		out.WriteString(s)
	}
	return out.String(), nil
}

// String returns the original template text.
func (t *Template) String() string {
	return t.text
}

// Render parses text and executes it against data in one step.
//
// Parameters:
//   - text: Template text
//   - data: Binding scope for identifiers
//
// Returns:
//   - string: The rendered text
//   - error: *Error when parsing or evaluation fails
func Render(text string, data any) (string, error) {
	t, err := Parse(text)
	if err != nil {
		return "", err
	}
	return t.Execute(data)
}
