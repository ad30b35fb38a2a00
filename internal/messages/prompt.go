package messages

// Prompt titles and errors.
const (
	PromptRequiresTerminal = "interactive prompt requires a terminal; re-run with --yes or pass the answers as flags"

	PromptProceedTitleFmt     = "Migrate account %q now?"
	PromptCandidateTitle      = "Several accounts score equally; pick the one to migrate"
	PromptNewUserTitle        = "New login name for the account"
	PromptContinueWarnedTitle = "Preflight reported warnings. Continue anyway?"
)
