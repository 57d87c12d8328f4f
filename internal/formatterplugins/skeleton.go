/**
 * CONTEXT:   Shared template-method skeleton every dialect formatter composes with
 * INPUT:     Dialect-specific closures (preamble, header, tree renderer, postfix)
 * OUTPUT:    A Formatter value whose Format method runs the fixed hook sequence
 * BUSINESS:  All six formatters (3 dialects x {Daily, Range}) must emit the
 *            exact same hook order so validation/no-records/postfix behavior
 *            never drifts between dialects
 * CHANGE:    A struct of closures replaces virtual-hook inheritance: one
 *            struct holds the fixed skeleton plus dialect-specific hooks
 * RISK:      Medium - hook order here is the single source of truth for every
 *            dialect; changing it changes all six formatters at once
 */

package formatterplugins

import "strings"

// Formatter holds the eight dialect-specific hooks the shared driver calls in
// a fixed sequence. Any hook may be nil except Header and NoRecordsMessage.
type Formatter struct {
	Validate           func() string // returns non-empty validation error text
	Preamble           func() string
	Header             func() string
	IsEmpty            func() bool
	ExtraContent       func() string // e.g. detailed records, Daily only
	ProjectTreeSection func() string
	NoRecordsMessage   func() string
	Postfix            func() string
}

// Format runs the shared hook sequence: validate -> preamble -> header ->
// (no-records message OR extra content + tree) -> postfix. A non-empty
// validation error replaces the entire body.
func (f Formatter) Format() string {
	var b strings.Builder

	if f.Validate != nil {
		if errText := f.Validate(); errText != "" {
			if f.Preamble != nil {
				b.WriteString(f.Preamble())
			}
			b.WriteString(errText)
			if f.Postfix != nil {
				b.WriteString(f.Postfix())
			}
			return b.String()
		}
	}

	if f.Preamble != nil {
		b.WriteString(f.Preamble())
	}
	if f.Header != nil {
		b.WriteString(f.Header())
	}

	empty := f.IsEmpty != nil && f.IsEmpty()
	if empty {
		if f.NoRecordsMessage != nil {
			b.WriteString(f.NoRecordsMessage())
		}
	} else {
		if f.ExtraContent != nil {
			b.WriteString(f.ExtraContent())
		}
		if f.ProjectTreeSection != nil {
			b.WriteString(f.ProjectTreeSection())
		}
	}

	if f.Postfix != nil {
		b.WriteString(f.Postfix())
	}
	return b.String()
}
