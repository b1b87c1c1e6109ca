package settings

import "github.com/lyraproj/issue/issue"

const (
	InvalidLogLevel    = `INVOCAT_SETTINGS_INVALID_LOG_LEVEL`
	InvalidMaxDepth    = `INVOCAT_SETTINGS_INVALID_MAX_DEPTH`
	InvalidRequirement = `INVOCAT_SETTINGS_INVALID_REQUIREMENT`
	ParseError         = `INVOCAT_SETTINGS_PARSE_ERROR`
	UnsupportedVersion = `INVOCAT_SETTINGS_UNSUPPORTED_VERSION`
)

func init() {
	issue.Hard(InvalidLogLevel, `'%{level}' is not a valid log level`)

	issue.Hard(InvalidMaxDepth, `max_depth must be zero or positive, got %{value}`)

	issue.Hard(InvalidRequirement, `'%{requires}' is not a valid version range: %{detail}`)

	issue.Hard(ParseError, `unable to parse settings from '%{source}': %{detail}`)

	issue.Hard(UnsupportedVersion, `language version %{version} does not satisfy the requirement '%{requires}'`)
}
