package shell

import "strings"

// Tokenize splits a command string into tokens, respecting shell quoting
// rules. Single quotes suspend all interpretation, double quotes suspend
// whitespace splitting (backslash escapes the next char inside them), and
// a bare backslash escapes the next character. Unterminated quotes are
// tolerated: the remainder of the string becomes part of the open token.
//
// Rejoining tokens does not reproduce the original string; the only job
// here is argument boundary detection.
func Tokenize(command string) []string {
	var tokens []string
	var current strings.Builder
	inSingle := false
	inDouble := false
	escaped := false

	for _, c := range strings.TrimSpace(command) {
		if escaped {
			current.WriteRune(c)
			escaped = false
			continue
		}

		switch {
		case c == '\\' && !inSingle:
			escaped = true
		case c == '\'' && !inDouble:
			inSingle = !inSingle
		case c == '"' && !inSingle:
			inDouble = !inDouble
		case (c == ' ' || c == '\t') && !inSingle && !inDouble:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(c)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// SplitHead tokenizes a command and returns the head token and the
// remaining tokens as arguments.
func SplitHead(command string) (string, []string) {
	tokens := Tokenize(command)
	if len(tokens) == 0 {
		return "", nil
	}
	return tokens[0], tokens[1:]
}

// StripQuoted removes the contents of matched single- and double-quoted
// regions from s, including the quote characters, respecting backslash
// escapes. Unterminated quotes drop the remainder of the string. Used to
// keep words that only occur as string literals from matching command
// patterns.
func StripQuoted(s string) string {
	var out strings.Builder
	inSingle := false
	inDouble := false
	escaped := false

	for _, c := range s {
		if escaped {
			escaped = false
			if !inSingle && !inDouble {
				out.WriteRune(c)
			}
			continue
		}

		switch {
		case c == '\\' && !inSingle:
			escaped = true
		case c == '\'' && !inDouble:
			inSingle = !inSingle
		case c == '"' && !inSingle:
			inDouble = !inDouble
		default:
			if !inSingle && !inDouble {
				out.WriteRune(c)
			}
		}
	}

	return out.String()
}
