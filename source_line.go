package config

import (
	"errors"
	"fmt"
	"strings"

	"go.starlark.net/starlark"
)

// The line format holds one statement per line:
//
//	# comment
//	log_dir "/var/log/app"
//	log_level :verbose
//	sieve [2, 5, 7,
//	       10, 15]
//	my_opts = {"peter": 37, "birds": true}
//	option_set my_opts
//
// "name literal" assigns a parameter; "name = literal" binds a local usable by
// later literals. Literals are Starlark expressions that may also use true,
// false, nil and :symbols. A statement continues onto the next line while a
// bracket is open.

type statement struct {
	text string
	line int
}

func parseLines(name string, data []byte) (Source, error) {
	stmts, err := splitStatements(data)
	if err != nil {
		return nil, syntaxAt(name, err.line, err.err)
	}

	env := literalEnv()
	thread := &starlark.Thread{Name: name}
	src := &fileSource{name: name}
	for _, st := range stmts {
		ident, rest := splitIdent(st.text)
		if ident == "" {
			return nil, syntaxAt(name, st.line, fmt.Errorf("expected a parameter name, got %q", st.text))
		}
		rest = strings.TrimSpace(rest)

		if strings.HasPrefix(rest, "=") && !strings.HasPrefix(rest, "==") {
			v, err := evalLiteral(thread, name, rest[1:], env)
			if err != nil {
				return nil, syntaxAt(name, st.line, err)
			}
			env[ident] = v
			continue
		}
		if rest == "" {
			return nil, syntaxAt(name, st.line, fmt.Errorf("missing value for %s", ident))
		}
		sv, err := evalLiteral(thread, name, rest, env)
		if err != nil {
			return nil, syntaxAt(name, st.line, err)
		}
		v, err := fromStarlark(sv)
		if err != nil {
			return nil, syntaxAt(name, st.line, err)
		}
		src.list = append(src.list, Assignment{Name: ident, Value: v, Line: st.line})
	}
	return src, nil
}

func evalLiteral(thread *starlark.Thread, filename, expr string, env starlark.StringDict) (starlark.Value, error) {
	return starlark.Eval(thread, filename, rewriteSymbols(strings.TrimSpace(expr)), env)
}

func splitIdent(s string) (ident, rest string) {
	if s == "" || !isIdentStart(s[0]) {
		return "", s
	}
	i := 1
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	if i < len(s) && s[i] != ' ' && s[i] != '\t' && s[i] != '=' && s[i] != '(' {
		return "", s
	}
	return s[:i], s[i:]
}

type lineError struct {
	line int
	err  error
}

// splitStatements drops comments and blank lines and joins lines while a
// bracket is open.
func splitStatements(data []byte) ([]statement, *lineError) {
	var (
		out   []statement
		buf   strings.Builder
		start int
		depth int
		quote byte
	)
	line := 1
	flush := func() {
		if text := strings.TrimSpace(buf.String()); text != "" {
			out = append(out, statement{text: text, line: start})
		}
		buf.Reset()
	}

	for i := 0; i < len(data); i++ {
		c := data[i]
		if buf.Len() == 0 && depth == 0 && c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			start = line
		}
		if quote != 0 {
			switch {
			case c == '\n':
				return nil, &lineError{line: line, err: errors.New("unterminated string")}
			case c == '\\' && i+1 < len(data):
				buf.WriteByte(c)
				i++
				c = data[i]
			case c == quote:
				quote = 0
			}
			buf.WriteByte(c)
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '#':
			for i+1 < len(data) && data[i+1] != '\n' {
				i++
			}
			continue
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth < 0 {
				return nil, &lineError{line: line, err: fmt.Errorf("unbalanced %q", c)}
			}
		case '\n':
			line++
			if depth == 0 {
				flush()
				continue
			}
			c = ' '
		}
		buf.WriteByte(c)
	}
	if quote != 0 {
		return nil, &lineError{line: line, err: errors.New("unterminated string")}
	}
	if depth > 0 {
		return nil, &lineError{line: start, err: errors.New("unclosed bracket")}
	}
	flush()
	return out, nil
}
