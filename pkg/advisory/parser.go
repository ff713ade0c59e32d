package advisory

import (
	"regexp"
	"strconv"
	"strings"
)

// The critique advisory replies in free text; Parse pulls actionable
// directives out of it with pattern rules. Only remove and adjust_timing
// are safe to auto-apply; spacing and companion advice is surfaced to
// the user untouched. Unparseable text yields no directives, never an
// error.

type DirectiveType string

const (
	DirectiveRemove        DirectiveType = "remove"
	DirectiveAdjustTiming  DirectiveType = "adjust_timing"
	DirectiveAdjustSpacing DirectiveType = "adjust_spacing"
	DirectiveCompanion     DirectiveType = "companion"
)

type Directive struct {
	Type             DirectiveType `json:"type"`
	SuccessionNumber int           `json:"succession_number,omitempty"`
	DeltaDays        int           `json:"delta_days,omitempty"` // negative = earlier
	Note             string        `json:"note,omitempty"`
	AutoApply        bool          `json:"auto_apply"`
}

// Summary is a one-line description used in critique logs.
func (d Directive) Summary() string {
	switch d.Type {
	case DirectiveRemove:
		return "remove succession " + strconv.Itoa(d.SuccessionNumber)
	case DirectiveAdjustTiming:
		return "shift succession " + strconv.Itoa(d.SuccessionNumber) + " by " + strconv.Itoa(d.DeltaDays) + " days"
	default:
		return string(d.Type) + ": " + d.Note
	}
}

var (
	removeRX  = regexp.MustCompile(`(?i)\b(?:remove|drop|delete|eliminate|skip|cut)\s+succession\s+#?(\d+)`)
	delayRX   = regexp.MustCompile(`(?i)\b(?:delay|postpone|push\s+back|move\s+back)\s+succession\s+#?(\d+)\s+by\s+(\d+)\s+(day|week)s?`)
	advanceRX = regexp.MustCompile(`(?i)\b(?:advance|bring\s+forward|move\s+up)\s+succession\s+#?(\d+)\s+by\s+(\d+)\s+(day|week)s?`)
	spacingRX = regexp.MustCompile(`(?i)[^.\n]*\b(?:tighter|wider|closer|adjust(?:ed|ing)?|reduce|increase)\b[^.\n]*\bspacing\b[^.\n]*`)
	companionRX = regexp.MustCompile(`(?i)\b(?:add\s+|plant\s+|inter(?:plant|crop)\s+)?companion(?:\s+plant(?:ing)?)?\s*(?:with|:)?\s+([a-zA-Z][a-zA-Z ]{1,40})`)
)

func Parse(text string) []Directive {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []Directive

	for _, m := range removeRX.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			continue
		}
		out = append(out, Directive{Type: DirectiveRemove, SuccessionNumber: n, AutoApply: true})
	}

	for _, m := range delayRX.FindAllStringSubmatch(text, -1) {
		if d, ok := timingDirective(m, +1); ok {
			out = append(out, d)
		}
	}
	for _, m := range advanceRX.FindAllStringSubmatch(text, -1) {
		if d, ok := timingDirective(m, -1); ok {
			out = append(out, d)
		}
	}

	for _, m := range spacingRX.FindAllString(text, -1) {
		out = append(out, Directive{Type: DirectiveAdjustSpacing, Note: strings.TrimSpace(m), AutoApply: false})
	}

	for _, m := range companionRX.FindAllStringSubmatch(text, -1) {
		out = append(out, Directive{Type: DirectiveCompanion, Note: strings.TrimSpace(m[1]), AutoApply: false})
	}

	return out
}

func timingDirective(m []string, sign int) (Directive, bool) {
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return Directive{}, false
	}
	amount, err := strconv.Atoi(m[2])
	if err != nil || amount < 1 {
		return Directive{}, false
	}
	if strings.EqualFold(m[3], "week") {
		amount *= 7
	}
	return Directive{
		Type:             DirectiveAdjustTiming,
		SuccessionNumber: n,
		DeltaDays:        sign * amount,
		AutoApply:        true,
	}, true
}
