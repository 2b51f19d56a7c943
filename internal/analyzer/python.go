package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/atena-tools/atena/domain"
)

// Lexical patterns for the Python heuristics. These intentionally match
// against raw line text; false positives inside string literals are an
// accepted imprecision of the lexical approach.
var (
	pyDefRe   = regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)
	pyClassRe = regexp.MustCompile(`^(\s*)class\s+([A-Za-z_]\w*)`)

	// Branching constructs contributing +1 each to the complexity estimate
	pyBranchRe = regexp.MustCompile(`(?:^|[^\w.])(?:if|elif|for|while|except)\b`)
	pyBoolOpRe = regexp.MustCompile(`\b(?:and|or)\b`)

	// Catch-all exception handlers: "except:", "except Exception:",
	// "except BaseException as e:"
	pyBareExceptRe = regexp.MustCompile(`^\s*except\s*(?:(?:Exception|BaseException)\s*(?:as\s+\w+\s*)?)?:`)

	// Direct console output outside a logging path
	pyPrintRe = regexp.MustCompile(`(?:^|[^\w.])print\s*\(`)

	pyMarkerRe    = regexp.MustCompile(`\b(?:TODO|FIXME)\b`)
	pyDocstringRe = regexp.MustCompile(`^\s*[rRbBuUfF]{0,2}("""|'''|"|')`)
)

// PythonAnalyzer extracts structural facts from Python source using a
// line-oriented lexical scan
type PythonAnalyzer struct{}

// NewPythonAnalyzer creates a new Python analyzer
func NewPythonAnalyzer() *PythonAnalyzer {
	return &PythonAnalyzer{}
}

// Language returns the language name
func (a *PythonAnalyzer) Language() string {
	return "python"
}

// Extensions returns the file extensions handled by this analyzer
func (a *PythonAnalyzer) Extensions() []string {
	return []string{".py", ".pyw"}
}

// Extract produces file facts from raw Python source. Undecodable
// content yields facts marked unreadable instead of an error.
func (a *PythonAnalyzer) Extract(filePath string, content []byte, thresholds domain.Thresholds) domain.FileFacts {
	if !utf8.Valid(content) {
		return domain.FileFacts{
			FilePath:         filePath,
			Unreadable:       true,
			UnreadableReason: "content is not valid UTF-8",
		}
	}

	lines := splitLines(string(content))
	facts := domain.FileFacts{
		FilePath:  filePath,
		LineCount: len(lines),
	}

	for i, line := range lines {
		lineNo := i + 1
		if utf8.RuneCountInString(line) > thresholds.MaxLineLength {
			facts.LongLines = append(facts.LongLines, lineNo)
		}

		code := stripLineComment(line)
		if pyBareExceptRe.MatchString(code) {
			facts.BareExceptLines = append(facts.BareExceptLines, lineNo)
		}
		if pyPrintRe.MatchString(code) {
			facts.PrintLines = append(facts.PrintLines, lineNo)
		}
		// Markers usually live in comments, so scan the whole line
		if pyMarkerRe.MatchString(line) {
			facts.MarkerLines = append(facts.MarkerLines, lineNo)
		}
	}

	facts.Functions = a.extractFunctions(lines)
	facts.Classes = a.extractClasses(lines)

	return facts
}

// extractFunctions finds def statements and measures each function's
// textual span via indentation deltas
func (a *PythonAnalyzer) extractFunctions(lines []string) []domain.FunctionFacts {
	var functions []domain.FunctionFacts

	for i, line := range lines {
		m := pyDefRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		indent := indentWidth(line)
		end := spanEnd(lines, i, indent)
		sigEnd := signatureEnd(lines, i)

		fn := domain.FunctionFacts{
			Name:         m[2],
			StartLine:    i + 1,
			LineCount:    end - i + 1,
			ParamCount:   countParams(lines, i),
			Complexity:   complexityOf(lines, sigEnd+1, end),
			HasDocstring: hasDocstring(lines, sigEnd+1, end),
		}
		functions = append(functions, fn)
	}

	return functions
}

// extractClasses finds class statements and counts their immediate methods
func (a *PythonAnalyzer) extractClasses(lines []string) []domain.ClassFacts {
	var classes []domain.ClassFacts

	for i, line := range lines {
		m := pyClassRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		indent := indentWidth(line)
		end := spanEnd(lines, i, indent)

		// Methods are the defs at the shallowest indent level inside
		// the class body; deeper defs are nested functions
		minDefIndent := -1
		var defIndents []int
		for j := i + 1; j <= end && j < len(lines); j++ {
			if pyDefRe.MatchString(lines[j]) {
				w := indentWidth(lines[j])
				if w <= indent {
					continue
				}
				defIndents = append(defIndents, w)
				if minDefIndent < 0 || w < minDefIndent {
					minDefIndent = w
				}
			}
		}
		methods := 0
		for _, w := range defIndents {
			if w == minDefIndent {
				methods++
			}
		}

		classes = append(classes, domain.ClassFacts{
			Name:        m[2],
			StartLine:   i + 1,
			MethodCount: methods,
		})
	}

	return classes
}

// splitLines splits source text into lines without counting a trailing
// newline as an extra empty line
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// indentWidth returns the leading whitespace width of a line.
// Tabs count as a single column; mixed indentation is tolerated.
func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		if r != ' ' && r != '\t' {
			break
		}
		width++
	}
	return width
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// spanEnd returns the index of the last line belonging to the block
// opened at start: the span runs until the first non-blank line whose
// indent does not exceed the opening line's indent
func spanEnd(lines []string, start, indent int) int {
	end := start
	for j := start + 1; j < len(lines); j++ {
		if isBlank(lines[j]) {
			continue
		}
		if indentWidth(lines[j]) <= indent {
			break
		}
		end = j
	}
	return end
}

// signatureEnd returns the index of the line on which the def
// signature's parenthesis balance closes. Falls back to the def line
// when the signature never closes (malformed input).
func signatureEnd(lines []string, defLine int) int {
	depth := 0
	for j := defLine; j < len(lines); j++ {
		for _, r := range stripLineComment(lines[j]) {
			switch r {
			case '(', '[', '{':
				depth++
			case ')', ']', '}':
				depth--
			}
		}
		if depth <= 0 && j >= defLine {
			if strings.Contains(lines[j], "(") || j > defLine {
				return j
			}
		}
	}
	return defLine
}

// countParams counts the parameters declared in the signature starting
// at defLine, excluding self/cls and bare * or / markers
func countParams(lines []string, defLine int) int {
	open := strings.Index(lines[defLine], "(")
	if open < 0 {
		return 0
	}

	// Accumulate the signature text between the outer parens,
	// tolerating multi-line signatures
	var sig strings.Builder
	depth := 0
	done := false
	for j := defLine; j < len(lines) && !done; j++ {
		text := stripLineComment(lines[j])
		if j == defLine {
			text = text[open:]
		}
		for _, r := range text {
			switch r {
			case '(', '[', '{':
				depth++
				if depth == 1 {
					continue
				}
			case ')', ']', '}':
				depth--
				if depth == 0 {
					done = true
				}
			}
			if done {
				break
			}
			if depth >= 1 {
				sig.WriteRune(r)
			}
		}
		sig.WriteRune(' ')
	}

	count := 0
	depth = 0
	param := strings.Builder{}
	flush := func() {
		p := strings.TrimSpace(param.String())
		param.Reset()
		if p == "" || p == "*" || p == "/" {
			return
		}
		name := strings.TrimLeft(p, "*")
		if i := strings.IndexAny(name, ":="); i >= 0 {
			name = name[:i]
		}
		name = strings.TrimSpace(name)
		if name == "" || name == "self" || name == "cls" {
			return
		}
		count++
	}
	for _, r := range sig.String() {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				flush()
				continue
			}
		}
		param.WriteRune(r)
	}
	flush()

	return count
}

// complexityOf estimates cyclomatic complexity for the body between the
// given line indexes: base 1, plus 1 per branching construct
func complexityOf(lines []string, bodyStart, end int) int {
	complexity := 1
	for j := bodyStart; j <= end && j < len(lines); j++ {
		code := stripLineComment(lines[j])
		complexity += len(pyBranchRe.FindAllString(code, -1))
		complexity += len(pyBoolOpRe.FindAllString(code, -1))
	}
	return complexity
}

// hasDocstring reports whether the first non-blank body line opens a
// string literal, Python's documentation convention
func hasDocstring(lines []string, bodyStart, end int) bool {
	for j := bodyStart; j <= end && j < len(lines); j++ {
		if isBlank(lines[j]) {
			continue
		}
		return pyDocstringRe.MatchString(lines[j])
	}
	return false
}

// stripLineComment removes a trailing # comment, tracking single and
// double quotes so fragment markers inside strings survive
func stripLineComment(line string) string {
	var quote rune
	for i, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '#':
			return line[:i]
		}
	}
	return line
}
