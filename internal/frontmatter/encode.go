package frontmatter

import "strings"

// Field is one header line to emit. Plain fields are written unquoted and are
// meant for booleans; everything else goes through Quote.
type Field struct {
	Key   string
	Value string
	Plain bool
}

// Encode renders fields as a delimited header without a trailing newline, so
// that a body starting with "\n" can be appended directly.
func Encode(fields []Field) string {
	var b strings.Builder
	b.WriteString(delim)
	b.WriteByte('\n')
	for _, f := range fields {
		b.WriteString(f.Key)
		b.WriteString(": ")
		if f.Plain {
			b.WriteString(f.Value)
		} else {
			b.WriteString(Quote(f.Value))
		}
		b.WriteByte('\n')
	}
	b.WriteString(delim)
	return b.String()
}

// Compose joins an encoded header and a body, inserting the line break a
// header-less body would otherwise lack.
func Compose(fields []Field, body string) string {
	header := Encode(fields)
	if !strings.HasPrefix(body, "\n") && !strings.HasPrefix(body, "\r\n") {
		return header + "\n" + body
	}
	return header + body
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Quote renders s as a YAML double-quoted scalar.
func Quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
