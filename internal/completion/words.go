package completion

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// SplitWords splits a command line into words like a POSIX shell would:
// quotes are removed and escapes resolved, but nothing is expanded, so "$HOME"
// and "~" stay as typed. An unterminated quote is an error.
func SplitWords(line string) ([]string, error) {
	file, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(line), "")
	if err != nil {
		return nil, err
	}

	words := []string{}
	syntax.Walk(file, func(node syntax.Node) bool {
		switch x := node.(type) {
		case *syntax.Assign:
			// FOO=bar before the command is a single word on the line
			if x.Name != nil {
				word := x.Name.Value + "="
				if x.Value != nil {
					word += wordText(line, x.Value)
				}
				words = append(words, word)
			}
			return false
		case *syntax.Word:
			words = append(words, wordText(line, x))
			return false
		}
		return true
	})

	return words, nil
}

// wordText returns a word with quoting removed
func wordText(src string, w *syntax.Word) string {
	var sb strings.Builder
	for _, part := range w.Parts {
		switch x := part.(type) {
		case *syntax.Lit:
			sb.WriteString(unescape(x.Value, false))
		case *syntax.SglQuoted:
			if x.Dollar {
				sb.WriteString(source(src, x))
			} else {
				sb.WriteString(x.Value)
			}
		case *syntax.DblQuoted:
			for _, inner := range x.Parts {
				if lit, ok := inner.(*syntax.Lit); ok {
					sb.WriteString(unescape(lit.Value, true))
				} else {
					sb.WriteString(source(src, inner))
				}
			}
		default:
			// Expansions ($VAR, $(cmd), ...) are kept verbatim
			sb.WriteString(source(src, part))
		}
	}
	return sb.String()
}

// source returns the original text of a node
func source(src string, node syntax.Node) string {
	start, end := int(node.Pos().Offset()), int(node.End().Offset())
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	return src[start:end]
}

// unescape resolves backslash escapes. Inside double quotes only \$ \` \" \\ and
// line continuations are escapes; elsewhere a backslash escapes any character.
func unescape(s string, quoted bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}
		next := s[i+1]
		switch {
		case next == '\n':
			// line continuation
		case !quoted, strings.IndexByte("$`\"\\", next) >= 0:
			sb.WriteByte(next)
		default:
			sb.WriteByte(c)
			sb.WriteByte(next)
		}
		i++
	}
	return sb.String()
}

// QuoteWord quotes s for reuse on a shell command line, leaving it bare when that is safe.
func QuoteWord(s string) string {
	if s == "" {
		return "''"
	}
	quoted, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return s
	}
	return quoted
}

// JoinWords quotes and joins words into a single command line
func JoinWords(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = QuoteWord(w)
	}
	return strings.Join(quoted, " ")
}
