package shell

import (
	"fmt"
	"strings"

	"github.com/brettbedarf/vfsh"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// Tokenize splits line into fields using POSIX shell quoting. Nothing is
// expanded: parameters, substitutions and a leading '~' stay literal text
// and '#' starts an ordinary word, not a comment. Operators such as ';' or
// '|' are rejected. All failures are of kind vfsh.ParseError.
func Tokenize(line string) ([]string, error) {
	words, src, err := parseWords(line)
	if err != nil {
		return nil, &vfsh.Error{Kind: vfsh.ParseError, Msg: err.Error(), Err: err}
	}
	for _, w := range words {
		literalize(w, src)
	}
	return expandFields(expand.ListEnviron(), words)
}

// parseWords parses line as a list of words. The parser drops a trailing
// comment, so each '#' it swallowed is escaped and the line parsed again.
// The returned source is the text the word positions refer to.
func parseWords(line string) ([]*syntax.Word, string, error) {
	for {
		var words []*syntax.Word
		err := syntax.NewParser().Words(strings.NewReader(line), func(w *syntax.Word) bool {
			words = append(words, w)
			return true
		})
		if err != nil {
			return nil, line, err
		}

		end := 0
		if len(words) > 0 {
			end = int(words[len(words)-1].End().Offset())
		}
		rest := line[end:]
		i := strings.IndexFunc(rest, func(r rune) bool { return r != ' ' && r != '\t' })
		if i < 0 || rest[i] != '#' {
			return words, line, nil
		}
		at := end + i
		line = line[:at] + `\` + line[at:]
	}
}

// literalize rewrites every part that would expand into its source text
func literalize(w *syntax.Word, src string) {
	parts := make([]syntax.WordPart, 0, len(w.Parts))
	for i, part := range w.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			if i == 0 && strings.HasPrefix(p.Value, "~") {
				parts = append(parts, &syntax.SglQuoted{Value: "~"})
				if rest := p.Value[1:]; rest != "" {
					parts = append(parts, &syntax.Lit{Value: rest})
				}
				continue
			}
			parts = append(parts, p)
		case *syntax.SglQuoted:
			parts = append(parts, p)
		case *syntax.DblQuoted:
			if allLit(p.Parts) {
				parts = append(parts, p)
				continue
			}
			var b strings.Builder
			for _, inner := range p.Parts {
				if lit, ok := inner.(*syntax.Lit); ok {
					b.WriteString(unescapeDquote(lit.Value))
				} else {
					b.WriteString(source(inner, src))
				}
			}
			parts = append(parts, &syntax.SglQuoted{Value: b.String()})
		default:
			parts = append(parts, &syntax.SglQuoted{Value: source(part, src)})
		}
	}
	w.Parts = parts
}

// expandFields removes quoting. The expander panics on a few bash
// operators, which surfaces as a parse error.
func expandFields(env expand.Environ, words []*syntax.Word) (fields []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			fields, err = nil, &vfsh.Error{Kind: vfsh.ParseError, Msg: fmt.Sprint(r)}
		}
	}()

	fields, err = expand.Fields(&expand.Config{Env: env}, words...)
	if err != nil {
		return nil, &vfsh.Error{Kind: vfsh.ParseError, Msg: err.Error(), Err: err}
	}
	return fields, nil
}

func allLit(parts []syntax.WordPart) bool {
	for _, p := range parts {
		if _, ok := p.(*syntax.Lit); !ok {
			return false
		}
	}
	return true
}

func source(n syntax.Node, src string) string {
	return src[n.Pos().Offset():n.End().Offset()]
}

// unescapeDquote applies the backslash rules of a double quoted string
func unescapeDquote(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '\\', '"', '$', '`':
				i++
			case '\n':
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
