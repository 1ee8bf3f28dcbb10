package domain

// Verdict is the binary credibility outcome of a classification.
type Verdict int

const (
	VerdictFake Verdict = iota
	VerdictReal
)

// VerdictFromLabel maps the training-label convention to a Verdict.
// Label 1 means real, everything else (only 0 occurs in practice) means fake.
func VerdictFromLabel(label int) Verdict {
	if label == 1 {
		return VerdictReal
	}
	return VerdictFake
}

// Label returns the integer label used in training corpora.
func (v Verdict) Label() int {
	if v == VerdictReal {
		return 1
	}
	return 0
}

// String renders the user-facing verdict text.
func (v Verdict) String() string {
	if v == VerdictReal {
		return "REAL"
	}
	return "FAKE"
}
