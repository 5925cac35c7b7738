package target

import (
	"strings"
)

// command is one CMake command invocation: name(args...).
type command struct {
	name string // lower-cased; CMake command names are case-insensitive
	args []string
}

// Executables returns the names of all add_executable() targets declared in
// a CMakeLists.txt source, in declaration order and without duplicates.
//
// The scan understands comments (# and #[[ ]]), quoted and bracket
// arguments, arbitrary whitespace and line breaks inside the call, and
// ${VAR} references to earlier set() and project() calls. IMPORTED and
// ALIAS executables are not build outputs and are skipped, as are names
// whose variables cannot be resolved.
func Executables(src string) []string {
	vars := map[string]string{}
	seen := map[string]bool{}
	var names []string

	for _, c := range parseCommands(src) {
		switch c.name {
		case "project":
			if len(c.args) == 0 {
				continue
			}
			if name, ok := expand(c.args[0], vars); ok {
				vars["PROJECT_NAME"] = name
				if _, set := vars["CMAKE_PROJECT_NAME"]; !set {
					vars["CMAKE_PROJECT_NAME"] = name
				}
			}
		case "set":
			if len(c.args) == 0 {
				continue
			}
			if len(c.args) == 1 {
				delete(vars, c.args[0])
				continue
			}
			if v, ok := expand(c.args[1], vars); ok {
				vars[c.args[0]] = v
			}
		case "add_executable":
			if len(c.args) == 0 {
				continue
			}
			if len(c.args) > 1 && (c.args[1] == "IMPORTED" || c.args[1] == "ALIAS") {
				continue
			}
			name, ok := expand(c.args[0], vars)
			if !ok || name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// expand substitutes ${VAR} references. ok is false when a referenced
// variable is undefined.
func expand(s string, vars map[string]string) (string, bool) {
	for {
		start := strings.LastIndex(s, "${")
		if start < 0 {
			return s, true
		}
		end := strings.IndexByte(s[start:], '}')
		if end < 0 {
			return s, false
		}
		end += start
		v, ok := vars[s[start+2:end]]
		if !ok {
			return "", false
		}
		s = s[:start] + v + s[end+1:]
	}
}

// ── Scanner ───────────────────────────────────────────────────────────────────

type scanner struct {
	src string
	pos int
}

func parseCommands(src string) []command {
	s := &scanner{src: src}
	var cmds []command
	for {
		s.skipBlank()
		if s.eof() {
			return cmds
		}
		if !isIdentStart(s.peek()) {
			s.pos++
			continue
		}
		name := s.ident()
		s.skipBlank()
		if s.eof() || s.peek() != '(' {
			continue
		}
		s.pos++
		args, ok := s.arguments()
		cmds = append(cmds, command{name: strings.ToLower(name), args: args})
		if !ok {
			return cmds
		}
	}
}

func (s *scanner) eof() bool  { return s.pos >= len(s.src) }
func (s *scanner) peek() byte { return s.src[s.pos] }

// skipBlank skips whitespace and comments.
func (s *scanner) skipBlank() {
	for !s.eof() {
		switch c := s.peek(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.pos++
		case c == '#':
			s.comment()
		default:
			return
		}
	}
}

// comment consumes a # line comment or a #[[ ]] bracket comment.
func (s *scanner) comment() {
	s.pos++ // '#'
	if s.bracket() {
		return
	}
	for !s.eof() && s.peek() != '\n' {
		s.pos++
	}
}

// bracket consumes a [=*[ ... ]=*] block at the current position and
// returns true, or leaves the position untouched and returns false.
func (s *scanner) bracket() bool {
	_, ok := s.bracketContent()
	return ok
}

func (s *scanner) bracketContent() (string, bool) {
	if s.eof() || s.peek() != '[' {
		return "", false
	}
	i := s.pos + 1
	for i < len(s.src) && s.src[i] == '=' {
		i++
	}
	if i >= len(s.src) || s.src[i] != '[' {
		return "", false
	}
	level := i - s.pos - 1
	closing := "]" + strings.Repeat("=", level) + "]"
	body := i + 1
	end := strings.Index(s.src[body:], closing)
	if end < 0 {
		s.pos = len(s.src)
		return s.src[body:], true
	}
	s.pos = body + end + len(closing)
	return s.src[body : body+end], true
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdent(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (s *scanner) ident() string {
	start := s.pos
	for !s.eof() && isIdent(s.peek()) {
		s.pos++
	}
	return s.src[start:s.pos]
}

// arguments reads up to the ')' that closes the command. ok is false when
// the source ends first.
func (s *scanner) arguments() (args []string, ok bool) {
	var cur strings.Builder
	inArg := false
	flush := func() {
		if inArg {
			args = append(args, cur.String())
			cur.Reset()
			inArg = false
		}
	}

	depth := 1
	for !s.eof() {
		c := s.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			flush()
			s.pos++
		case c == '#':
			flush()
			s.comment()
		case c == '(':
			flush()
			depth++
			s.pos++
		case c == ')':
			flush()
			s.pos++
			depth--
			if depth == 0 {
				return args, true
			}
		case c == '"' && !inArg:
			args = append(args, s.quoted())
		case c == '[' && !inArg:
			if body, isBracket := s.bracketContent(); isBracket {
				args = append(args, body)
				continue
			}
			cur.WriteByte(c)
			inArg = true
			s.pos++
		case c == '\\' && s.pos+1 < len(s.src):
			cur.WriteString(s.src[s.pos : s.pos+2])
			inArg = true
			s.pos += 2
		default:
			cur.WriteByte(c)
			inArg = true
			s.pos++
		}
	}
	flush()
	return args, false
}

// quoted reads a "..." argument, resolving \" and \\ escapes.
func (s *scanner) quoted() string {
	var b strings.Builder
	s.pos++ // opening quote
	for !s.eof() {
		c := s.peek()
		switch {
		case c == '"':
			s.pos++
			return b.String()
		case c == '\\' && s.pos+1 < len(s.src):
			next := s.src[s.pos+1]
			if next == '"' || next == '\\' {
				b.WriteByte(next)
			} else {
				b.WriteByte(c)
				b.WriteByte(next)
			}
			s.pos += 2
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
	return b.String()
}
