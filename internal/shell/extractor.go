package shell

// Strategy selects how commands are extracted from a command line.
type Strategy int

const (
	// StrategyAuto parses with the bash grammar and falls back to the
	// segmenter when the parse fails. Default.
	StrategyAuto Strategy = iota
	// StrategySegmenter uses only the hand-rolled quote-aware
	// segmenter. Always available; satisfies the same contract.
	StrategySegmenter
)

// Extractor extracts program names from shell command lines. Extraction
// is a pure function of its input: no state is carried between calls.
type Extractor struct {
	strategy Strategy
}

// NewExtractor creates an Extractor with the default strategy.
func NewExtractor() *Extractor {
	return &Extractor{strategy: StrategyAuto}
}

// NewExtractorWithStrategy creates an Extractor with an explicit strategy.
func NewExtractorWithStrategy(s Strategy) *Extractor {
	return &Extractor{strategy: s}
}

// Commands returns the ordered, duplicate-free list of program names the
// command line would invoke, including names revealed by unwinding
// wrappers, subshells, xargs, and command substitutions. Names that only
// occur inside quoted arguments are not included. Best effort: malformed
// input yields a possibly incomplete list, never an error.
func (e *Extractor) Commands(command string) []string {
	command = Normalize(command)
	out := newOrdered()

	if e.strategy == StrategyAuto && extractAST(command, out) {
		return out.names
	}

	extractSegmented(command, out, 0)
	return out.names
}

// Segments splits the command line into atomic segments and returns each
// segment's raw text and token sequence (head program plus arguments).
// Used by argument-aware filters that need more than the head name.
func (e *Extractor) Segments(command string) []Segment {
	return splitIntoSegments(Normalize(command))
}
