package shell

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// extractAST is the grammar-driven extraction strategy. It parses the
// command with the mvdan.cc/sh bash grammar and walks the tree: every
// CallExpr head is a discovered program, and the walk descends into
// subshells and command substitutions for free. Returns false when the
// parse fails (malformed or truncated agent output) so the caller can
// fall back to the segmenter.
func extractAST(command string, out *ordered) bool {
	parser := syntax.NewParser(syntax.KeepComments(false), syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(command), "")
	if err != nil {
		return false
	}

	syntax.Walk(file, func(node syntax.Node) bool {
		call, ok := node.(*syntax.CallExpr)
		if !ok || len(call.Args) == 0 {
			return true
		}

		name := wordText(call.Args[0])
		if name == "" {
			return true
		}
		out.add(name)

		args := make([]string, 0, len(call.Args)-1)
		for _, w := range call.Args[1:] {
			args = append(args, wordText(w))
		}

		switch {
		case commandWrappers[name]:
			unwrapASTArgs(args, out, 0)
		case shellInterpreters[name]:
			if script, ok := dashCScript(args); ok {
				extractSegmented(script, out, 1)
			}
		case name == "xargs":
			if target, ok := firstNonFlag(args); ok {
				out.add(target)
			}
		}
		return true
	})

	return true
}

// unwrapASTArgs resolves the program a wrapper executes, skipping the
// wrapper's own flags and env assignments, and recurses through nested
// wrappers and `shell -c` scripts.
func unwrapASTArgs(args []string, out *ordered, depth int) {
	if depth > maxDepth {
		return
	}

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
		if strings.Contains(arg, "=") {
			continue
		}

		out.add(arg)
		rest := args[i+1:]

		switch {
		case shellInterpreters[arg]:
			if script, ok := dashCScript(rest); ok {
				extractSegmented(script, out, depth+1)
			}
		case commandWrappers[arg]:
			unwrapASTArgs(rest, out, depth+1)
		case arg == "xargs":
			if target, ok := firstNonFlag(rest); ok {
				out.add(target)
			}
		}
		return
	}
}

// dashCScript returns the script string following a -c flag.
func dashCScript(args []string) (string, bool) {
	for i, arg := range args {
		if arg == "-c" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

// firstNonFlag returns the first argument not starting with a dash.
func firstNonFlag(args []string) (string, bool) {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			return arg, true
		}
	}
	return "", false
}

// wordText flattens a syntax.Word to the text the shell would pass as a
// single field: literal runs and quoted runs are concatenated, parameter
// expansions are kept in source form, and command substitutions
// contribute nothing here (their contents are visited by the walk).
func wordText(w *syntax.Word) string {
	if w == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range w.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			sb.WriteString(p.Value)
		case *syntax.SglQuoted:
			sb.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, inner := range p.Parts {
				if lit, ok := inner.(*syntax.Lit); ok {
					sb.WriteString(lit.Value)
				}
			}
		case *syntax.ParamExp:
			if p.Param != nil {
				if p.Short {
					sb.WriteString("$" + p.Param.Value)
				} else {
					sb.WriteString("${" + p.Param.Value + "}")
				}
			}
		}
	}
	return sb.String()
}
