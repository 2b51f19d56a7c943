package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "atena"

	// ConfigFileName is the default config file name
	ConfigFileName = "atena.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "ATENA"
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Analysis resource limits
const (
	// DefaultMaxFileSize bounds how many bytes of a single file are
	// read; larger files are recorded as unreadable and skipped
	DefaultMaxFileSize = 1 << 20
)

// DenylistedDirs are directory names always skipped during tree walks,
// in addition to hidden directories and user-supplied exclude patterns
var DenylistedDirs = []string{
	"__pycache__",
	"node_modules",
	"venv",
	".venv",
	"env",
	"site-packages",
	"vendor",
	"dist",
	"build",
	".git",
}
