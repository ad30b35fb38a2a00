package messages

// Config messages for tool and agent configuration loading.
const (
	ConfigReadFailedFmt    = "read config %s: %w"
	ConfigInvalidTOMLFmt   = "invalid config %s: %w"
	ConfigUnknownKeysFmt   = "config %s has unrecognized keys: %v"
	ConfigGraceNegativeFmt = "config %s: pipeline.grace_period_seconds must not be negative"
	ConfigAliasEmptyFmt    = "config %s: aliases.extra contains an empty entry"
	ConfigAliasInvalidFmt  = "alias %q in %s must not contain separators or whitespace"

	ConfigAgentInvalidJSONFmt = "invalid agent config: %w"
	ConfigAgentInvalidEnvFmt  = "invalid agent env file: %w"
)
