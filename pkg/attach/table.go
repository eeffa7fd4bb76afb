// Package attach renders structured data as HTML for idea attachments.
//
// MindMup shows an idea's attachment as rich text. [HTMLTable] turns a
// nested map into a bordered table so arbitrary metadata can be inspected
// from within the map:
//
//	html := attach.HTMLTable(map[string]any{
//	    "owner": "platform",
//	    "deps":  []string{"redis", "chi", "cobra", "uuid"},
//	}, attach.Options{Caption: "Service"})
//	node.AddAttachment(html, true)
//
// Keys are emitted in sorted order so the output is deterministic. Lists
// are shortened to [Options].MaxElements entries and nested maps become
// nested tables down to [Options].MaxDepth levels.
package attach

import (
	"fmt"
	"html"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Defaults used when the corresponding Options field is zero.
const (
	DefaultTableProps  = "border='1px solid black' border-collapse='collapse'"
	DefaultMaxElements = 3
	DefaultMaxDepth    = 5
)

// Options controls [HTMLTable].
type Options struct {
	Caption     string
	TableProps  string // attributes of the outer <table> tag; nested tables get none
	MaxElements int    // list entries shown before truncation
	MaxDepth    int    // nesting levels rendered; deeper tables are dropped

	// Transform, if set, is applied to every value before rendering.
	Transform func(any) any
}

func (o Options) withDefaults() Options {
	if o.TableProps == "" {
		o.TableProps = DefaultTableProps
	}
	if o.MaxElements <= 0 {
		o.MaxElements = DefaultMaxElements
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	return o
}

// HTMLTable renders data as an HTML table, one row per key.
func HTMLTable(data map[string]any, opts Options) string {
	opts = opts.withDefaults()
	return table(data, opts.Caption, opts.TableProps, opts.MaxDepth, opts)
}

func table(data map[string]any, caption, props string, depth int, opts Options) string {
	depth--
	if depth < 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<table %s ><caption><b>%s</b></caption>", props, html.EscapeString(caption))
	for _, key := range slices.Sorted(maps.Keys(data)) {
		value := data[key]
		if opts.Transform != nil {
			value = opts.Transform(value)
		}
		fmt.Fprintf(&b, "\n<tr> <td><b>%s</b> </td><td>%s</td>", html.EscapeString(key), cell(value, depth, opts))
	}
	b.WriteString("\n</table>")
	return b.String()
}

func cell(value any, depth int, opts Options) string {
	switch v := normalize(value).(type) {
	case map[string]any:
		return table(v, "", "", depth, opts)
	case []any:
		var b strings.Builder
		b.WriteByte('[')
		for _, item := range v[:min(len(v), opts.MaxElements)] {
			if m, ok := normalize(item).(map[string]any); ok {
				b.WriteString(table(m, "", "", depth, opts))
			} else {
				b.WriteString(html.EscapeString(fmt.Sprint(item)))
			}
			b.WriteByte(' ')
		}
		if extra := len(v) - opts.MaxElements; extra > 0 {
			fmt.Fprintf(&b, " (... other %d elements)", extra)
		}
		b.WriteByte(']')
		return b.String()
	case nil:
		return ""
	default:
		return html.EscapeString(fmt.Sprint(v))
	}
}

// normalize converts maps with string keys to map[string]any and slices
// (other than byte slices) to []any.
func normalize(v any) any {
	switch v.(type) {
	case nil, map[string]any, []any, []byte, string:
		return v
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return v
}
