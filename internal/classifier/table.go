package classifier

import (
	"fmt"
	"regexp"

	"github.com/atena-tools/atena/domain"
)

// Category labels returned by the default table
const (
	CategoryImport     = "IMPORT"
	CategorySyntax     = "SYNTAX"
	CategoryType       = "TYPE"
	CategoryValue      = "VALUE"
	CategoryAttribute  = "ATTRIBUTE"
	CategoryKey        = "KEY"
	CategoryIndex      = "INDEX"
	CategoryFile       = "FILE"
	CategoryPermission = "PERMISSION"
	CategoryConnection = "CONNECTION"
	CategoryUnknown    = "UNKNOWN"
)

// quotedNameRe captures the module name from messages like
// "No module named 'requests'"
var quotedNameRe = regexp.MustCompile(`['"]([A-Za-z_][\w.]*)['"]`)

// suggestInstall inserts the missing module name into the install hint
// when it can be extracted from the message
func suggestInstall(errorText string) string {
	m := quotedNameRe.FindStringSubmatch(errorText)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("The module is not installed or not on the import path. Try: pip install %s", m[1])
}

// DefaultEntries returns the built-in category table in priority order
func DefaultEntries() []Entry {
	return []Entry{
		{
			Category:   CategoryImport,
			Keywords:   []string{"ModuleNotFoundError", "ImportError", "no module named"},
			Suggestion: "The module is not installed or not on the import path. Install it with pip install <module>.",
			Suggest:    suggestInstall,
			Doc:        &docEntries[docImport],
		},
		{
			Category:   CategorySyntax,
			Keywords:   []string{"SyntaxError", "IndentationError", "invalid syntax", "unexpected indent"},
			Suggestion: "Check the line reported in the traceback for missing colons, unbalanced brackets, or inconsistent indentation.",
			Doc:        &docEntries[docSyntax],
		},
		{
			Category:   CategoryType,
			Keywords:   []string{"TypeError"},
			Suggestion: "An operation received a value of the wrong type. Check argument types and conversions at the reported line.",
			Doc:        &docEntries[docTypes],
		},
		{
			Category:   CategoryValue,
			Keywords:   []string{"ValueError"},
			Suggestion: "A value had the right type but an invalid content. Validate inputs before converting or unpacking them.",
			Doc:        &docEntries[docTypes],
		},
		{
			Category:   CategoryAttribute,
			Keywords:   []string{"AttributeError"},
			Suggestion: "The object does not define the accessed attribute. Check for None values and typos in the attribute name.",
			Doc:        &docEntries[docTypes],
		},
		{
			Category:   CategoryKey,
			Keywords:   []string{"KeyError"},
			Suggestion: "The dictionary key is missing. Use .get() with a default or check membership before indexing.",
			Doc:        &docEntries[docData],
		},
		{
			Category:   CategoryIndex,
			Keywords:   []string{"IndexError", "index out of range"},
			Suggestion: "The sequence index is out of range. Check lengths before indexing and watch for off-by-one errors.",
			Doc:        &docEntries[docData],
		},
		{
			Category:   CategoryFile,
			Keywords:   []string{"FileNotFoundError", "no such file or directory"},
			Suggestion: "The file path does not exist. Verify the path is correct relative to the working directory.",
			Doc:        &docEntries[docFiles],
		},
		{
			Category:   CategoryPermission,
			Keywords:   []string{"PermissionError", "permission denied"},
			Suggestion: "The process lacks permission for the operation. Check file ownership and mode bits, or run with appropriate privileges.",
			Doc:        &docEntries[docFiles],
		},
		{
			Category:   CategoryConnection,
			Keywords:   []string{"ConnectionError", "ConnectionRefusedError", "TimeoutError", "connection refused", "timed out"},
			Suggestion: "A network operation failed. Check the target host, port, and firewall rules, and add retries with backoff for transient failures.",
			Doc:        &docEntries[docNetwork],
		},
	}
}

// Shared documentation entries referenced by the default table
const (
	docImport = iota
	docSyntax
	docTypes
	docData
	docFiles
	docNetwork
)

var docEntries = []domain.DocumentationEntry{
	{
		Title:       "The import system",
		URL:         "https://docs.python.org/3/reference/import.html",
		Description: "How Python locates and loads modules, and why imports fail.",
		Related:     []string{"modules", "packages", "sys.path", "virtual environments"},
	},
	{
		Title:       "Lexical analysis",
		URL:         "https://docs.python.org/3/reference/lexical_analysis.html",
		Description: "Python's syntax rules, including indentation and line structure.",
		Related:     []string{"indentation", "statements", "tokens"},
	},
	{
		Title:       "Built-in exceptions",
		URL:         "https://docs.python.org/3/library/exceptions.html",
		Description: "The standard exception hierarchy and when each is raised.",
		Related:     []string{"TypeError", "ValueError", "AttributeError"},
	},
	{
		Title:       "Data structures",
		URL:         "https://docs.python.org/3/tutorial/datastructures.html",
		Description: "Working with lists, dictionaries, and other containers.",
		Related:     []string{"dict", "list", "indexing"},
	},
	{
		Title:       "Reading and writing files",
		URL:         "https://docs.python.org/3/tutorial/inputoutput.html#reading-and-writing-files",
		Description: "File paths, modes, and error handling for file I/O.",
		Related:     []string{"open", "pathlib", "permissions"},
	},
	{
		Title:       "socket — Low-level networking interface",
		URL:         "https://docs.python.org/3/library/socket.html",
		Description: "Network connections and the errors they raise.",
		Related:     []string{"timeouts", "connection handling", "retries"},
	},
}
