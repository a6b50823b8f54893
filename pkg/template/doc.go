// Package template renders deprecation rule strings against the release
// context.
//
// Three interpolation delimiters are recognised:
//
//	${expr}       interpolate
//	<%= expr %>   interpolate
//	<%- expr %>   interpolate with HTML escaping
//
// Expressions are deliberately small: a root identifier followed by field
// access (a.b), indexing (a[0], a['b']) and calls to an allow-listed set of
// string and array methods, for example:
//
//	${nextRelease.version}
//	${nextRelease.version.split('.')[0]}
//	<%= branch.name.toUpperCase() %>
//
// Anything else (operators, arbitrary function calls, <% code %> blocks) is
// rejected with an *Error.
package template
