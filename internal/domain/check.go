package domain

import "time"

// SourceType says where the checked text came from.
type SourceType string

const (
	SourceURL  SourceType = "url"
	SourceText SourceType = "text"
)

// CorroborationLevel grades how well external coverage backs up a story.
type CorroborationLevel string

const (
	CorroborationSkipped CorroborationLevel = "skipped"
	CorroborationFailed  CorroborationLevel = "failed"
	CorroborationNone    CorroborationLevel = "none"
	CorroborationLow     CorroborationLevel = "low"
	CorroborationHigh    CorroborationLevel = "high"
)

// Corroboration is the outcome of a cross-check against the news search API.
// The error variant is explicit (Level == CorroborationFailed plus Message)
// instead of an out-of-band string.
type Corroboration struct {
	Level   CorroborationLevel
	Count   int
	Message string
}

// Summary renders the corroboration for display.
func (c Corroboration) Summary() string {
	switch c.Level {
	case CorroborationHigh:
		return "High corroboration: similar articles found on external sources."
	case CorroborationLow:
		return "Low corroboration: a few similar articles found."
	case CorroborationNone:
		return "No similar articles found on external sources."
	case CorroborationFailed:
		return "External cross-check failed: " + c.Message
	default:
		return "External cross-check skipped."
	}
}

// CheckResult is a completed credibility check.
type CheckResult struct {
	Source        SourceType
	URL           string
	Title         string
	ArticleText   string
	Verdict       Verdict
	Corroboration Corroboration
	CheckedAt     time.Time
}

// CheckRecord is the persisted form of a CheckResult.
type CheckRecord struct {
	Source        SourceType
	URL           string
	Title         string
	Verdict       Verdict
	Corroboration CorroborationLevel
	CheckedAt     time.Time
}
