// Package shell performs static analysis of shell command lines: it
// decomposes a raw command string into the program names it would
// actually invoke, unwinding pipelines, logical chains, command wrappers
// (sudo, env, ...), `shell -c` subshells, xargs forwarding, and command
// substitution. Nothing is ever executed; the output feeds deny-list and
// pattern filters that must not be defeatable by wrapping or quoting
// tricks.
package shell

import "strings"

// commandWrappers are programs that execute another program as their own
// subprocess. The wrapped program is a discovered command too.
var commandWrappers = map[string]bool{
	"sudo":    true,
	"env":     true,
	"nohup":   true,
	"nice":    true,
	"ionice":  true,
	"time":    true,
	"timeout": true,
	"strace":  true,
	"ltrace":  true,
	"doas":    true,
}

// shellInterpreters are shells that run a nested script via -c.
var shellInterpreters = map[string]bool{
	"bash": true,
	"sh":   true,
	"zsh":  true,
	"ksh":  true,
	"csh":  true,
	"tcsh": true,
	"fish": true,
	"dash": true,
}

// wrapperValueFlags are wrapper flags that consume the following token
// as their value (sudo -u root, timeout -k 5s, env -S ...).
var wrapperValueFlags = map[string]bool{
	"-u": true, "-g": true, "-C": true, "-D": true, "-R": true,
	"-T": true, "-h": true, "-p": true, "-r": true, "-t": true,
	"-U": true, "-S": true, "-k": true, "-s": true, "-n": true,
	"-c": true,
}

// maxDepth bounds recursion through nested wrappers, subshells, and
// substitutions. Legitimate commands nest a handful of levels at most.
const maxDepth = 32

// Segment is one atomic sub-command isolated after splitting on `;`,
// `&&`, `||`, and `|` outside quotes.
type Segment struct {
	Raw    string
	Tokens []string
}

// ordered is an insertion-ordered string set. First occurrence wins.
type ordered struct {
	seen  map[string]bool
	names []string
}

func newOrdered() *ordered {
	return &ordered{seen: make(map[string]bool)}
}

func (o *ordered) add(name string) {
	if name == "" || o.seen[name] {
		return
	}
	o.seen[name] = true
	o.names = append(o.names, name)
}

// splitSegments splits a command line into atomic segment texts at
// unquoted `;`, `&&`, `||`, and `|` boundaries. Separators inside
// quotes, backticks, $(...), or (...) are not boundaries; a subshell
// stays one segment and is recursed into later.
func splitSegments(command string) []string {
	var segments []string
	var current strings.Builder
	inSingle := false
	inDouble := false
	inBacktick := false
	escaped := false
	parenDepth := 0

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			segments = append(segments, s)
		}
		current.Reset()
	}

	runes := []rune(command)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if escaped {
			current.WriteRune(c)
			escaped = false
			continue
		}

		switch {
		case c == '\\' && !inSingle:
			current.WriteRune(c)
			escaped = true
		case c == '\'' && !inDouble:
			inSingle = !inSingle
			current.WriteRune(c)
		case c == '"' && !inSingle:
			inDouble = !inDouble
			current.WriteRune(c)
		case c == '`' && !inSingle:
			inBacktick = !inBacktick
			current.WriteRune(c)
		case c == '(' && !inSingle && !inDouble:
			parenDepth++
			current.WriteRune(c)
		case c == ')' && parenDepth > 0 && !inSingle && !inDouble:
			parenDepth--
			current.WriteRune(c)
		case inSingle || inDouble || inBacktick || parenDepth > 0:
			current.WriteRune(c)
		case c == ';':
			flush()
		case c == '|':
			flush()
			if i+1 < len(runes) && runes[i+1] == '|' {
				i++
			}
		case c == '&' && i+1 < len(runes) && runes[i+1] == '&':
			flush()
			i++
		default:
			current.WriteRune(c)
		}
	}
	flush()

	return segments
}

// substitutionSpans returns the contents of every $(...) and
// backtick-delimited command substitution in s, including ones nested
// inside quotes: `echo "$(yarn --version)"` still runs yarn. Unterminated
// substitutions extend to the end of the string (best effort).
func substitutionSpans(s string) []string {
	var spans []string
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		switch {
		case runes[i] == '$' && i+1 < len(runes) && runes[i+1] == '(':
			depth := 1
			j := i + 2
			for ; j < len(runes) && depth > 0; j++ {
				switch {
				case runes[j] == '$' && j+1 < len(runes) && runes[j+1] == '(':
					depth++
					j++
				case runes[j] == '(':
					depth++
				case runes[j] == ')':
					depth--
				}
			}
			end := j
			if depth == 0 {
				end = j - 1 // exclude closing paren
			}
			if content := strings.TrimSpace(string(runes[i+2 : end])); content != "" {
				spans = append(spans, content)
			}
			i = j - 1
		case runes[i] == '`':
			j := i + 1
			for ; j < len(runes) && runes[j] != '`'; j++ {
			}
			if content := strings.TrimSpace(string(runes[i+1 : j])); content != "" {
				spans = append(spans, content)
			}
			i = j
		}
	}

	return spans
}

// isAssignment reports whether a token is an environment-variable
// assignment prefix like NODE_ENV=production.
func isAssignment(token string) bool {
	idx := strings.IndexByte(token, '=')
	return idx > 0 && !strings.HasPrefix(token, "-")
}

// extractSegmented is the hand-rolled extraction strategy. It splits the
// command into atomic segments, records each segment's effective head
// program, and recurses through wrappers, `shell -c` scripts, xargs, and
// command substitutions.
func extractSegmented(command string, out *ordered, depth int) {
	if depth > maxDepth {
		return
	}

	for _, seg := range splitSegments(command) {
		if strings.HasPrefix(seg, "(") {
			extractSegmented(strings.TrimSuffix(seg[1:], ")"), out, depth+1)
			continue
		}
		processTokens(Tokenize(seg), out, depth)
	}

	// Substitutions are extracted after segment heads so discovery order
	// approximates left-to-right script order for the common case of a
	// substitution sitting inside another command's arguments.
	for _, span := range substitutionSpans(command) {
		extractSegmented(span, out, depth+1)
	}
}

// processTokens handles one atomic segment's token sequence: skip
// assignment prefixes, record the head, then unwind wrapper, subshell,
// and xargs constructs.
func processTokens(tokens []string, out *ordered, depth int) {
	if depth > maxDepth {
		return
	}

	for len(tokens) > 0 && isAssignment(tokens[0]) {
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return
	}

	head := tokens[0]
	args := tokens[1:]

	// Substitution heads were already extracted from their contents.
	if strings.HasPrefix(head, "$(") || strings.HasPrefix(head, "`") {
		return
	}

	out.add(head)

	switch {
	case commandWrappers[head]:
		skipNext := false
		for i, arg := range args {
			if skipNext {
				skipNext = false
				continue
			}
			if strings.HasPrefix(arg, "-") {
				skipNext = flagTakesValue(arg)
				continue
			}
			if head == "env" && isAssignment(arg) {
				continue
			}
			// The wrapped program and everything after it form a
			// command of their own; nested wrappers unwind here.
			processTokens(args[i:], out, depth+1)
			break
		}
	case shellInterpreters[head]:
		for i, arg := range args {
			if arg == "-c" && i+1 < len(args) {
				extractSegmented(args[i+1], out, depth+1)
				break
			}
		}
	case head == "xargs":
		// One level only: the forwarded program is recorded but not
		// itself unwound.
		for _, arg := range args {
			if !strings.HasPrefix(arg, "-") {
				out.add(arg)
				break
			}
		}
	}
}

// flagTakesValue reports whether a wrapper flag consumes the next token.
func flagTakesValue(flag string) bool {
	if strings.Contains(flag, "=") {
		return false
	}
	return wrapperValueFlags[flag]
}

// splitIntoSegments tokenizes each atomic segment of a command line.
func splitIntoSegments(command string) []Segment {
	raw := splitSegments(command)
	segments := make([]Segment, 0, len(raw))
	for _, r := range raw {
		segments = append(segments, Segment{Raw: r, Tokens: Tokenize(r)})
	}
	return segments
}
