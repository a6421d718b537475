// Package strfmt fills placeholders in message templates.
//
// Three placeholder styles are supported:
//
//	Format("user {} not in {}", "ann", "admins")        // sequential
//	FormatIndexed("{1} before {0}", "b", "a")            // positional
//	FormatNamed("hello {name}", map[string]any{"name": "ann"}) // named
//
// Placeholders with no matching argument are left in the output unchanged.
package strfmt

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	placeholder = "{}"
	escape      = '\\'
)

// Format replaces each "{}" in template with the next argument, in order.
// A "{}" preceded by a backslash is emitted literally without consuming an
// argument; a doubled backslash emits one backslash and keeps the
// placeholder live. Surplus placeholders are kept verbatim and surplus
// arguments are ignored.
func Format(template string, args ...any) string {
	if template == "" || len(args) == 0 {
		return template
	}

	var sb strings.Builder
	sb.Grow(len(template) + 8*len(args))

	pos := 0
	for argIndex := 0; argIndex < len(args); {
		idx := strings.Index(template[pos:], placeholder)
		if idx < 0 {
			break
		}
		idx += pos

		if idx > pos && template[idx-1] == escape {
			if idx > pos+1 && template[idx-2] == escape {
				sb.WriteString(template[pos : idx-1])
				sb.WriteString(render(args[argIndex]))
				argIndex++
			} else {
				sb.WriteString(template[pos : idx-1])
				sb.WriteString(placeholder)
			}
			pos = idx + len(placeholder)
			continue
		}

		sb.WriteString(template[pos:idx])
		sb.WriteString(render(args[argIndex]))
		argIndex++
		pos = idx + len(placeholder)
	}

	sb.WriteString(template[pos:])
	return sb.String()
}

// FormatIndexed replaces "{0}", "{1}", ... with the argument at that index.
// Indexes outside args are kept verbatim.
func FormatIndexed(template string, args ...any) string {
	return replaceKeys(template, func(key string) (any, bool) {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(args) {
			return nil, false
		}
		return args[i], true
	})
}

// FormatNamed replaces "{key}" with values[key]. Keys absent from values are
// kept verbatim.
func FormatNamed(template string, values map[string]any) string {
	return replaceKeys(template, func(key string) (any, bool) {
		v, ok := values[key]
		return v, ok
	})
}

func replaceKeys(template string, lookup func(key string) (any, bool)) string {
	if !strings.ContainsRune(template, '{') {
		return template
	}

	var sb strings.Builder
	sb.Grow(len(template))

	for i := 0; i < len(template); {
		open := strings.IndexByte(template[i:], '{')
		if open < 0 {
			sb.WriteString(template[i:])
			break
		}
		open += i
		sb.WriteString(template[i:open])

		end := strings.IndexByte(template[open+1:], '}')
		if end < 0 {
			sb.WriteString(template[open:])
			break
		}
		end += open + 1

		key := template[open+1 : end]
		// A nested '{' means this brace was not a placeholder opener;
		// resume from the inner one.
		if nested := strings.LastIndexByte(key, '{'); nested >= 0 {
			sb.WriteString(template[open : open+1+nested])
			i = open + 1 + nested
			continue
		}

		if v, ok := lookup(key); ok && key != "" {
			sb.WriteString(render(v))
		} else {
			sb.WriteString(template[open : end+1])
		}
		i = end + 1
	}

	return sb.String()
}

func render(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(v)
	}
}
