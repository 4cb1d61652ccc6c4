package content

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTable is returned when a required table has no entries.
	ErrEmptyTable = errors.New("content table is empty")
	// ErrDuplicateName is returned when two checklist entries share a name.
	ErrDuplicateName = errors.New("duplicate checklist name")
	// ErrDuplicateGlyph is returned when two runes would render the same glyph.
	ErrDuplicateGlyph = errors.New("duplicate rune glyph")
	// ErrMissingReady is returned when the loading table ends in a blank message.
	ErrMissingReady = errors.New("loading table has no ready message")
	// ErrUnknownKind is returned for a boot entry with an unrecognised kind.
	ErrUnknownKind = errors.New("unknown boot entry kind")
)

// Validate checks the structural rules every beat relies on. All problems
// are reported together.
func (t *Tables) Validate() error {
	var errs []error

	if len(t.Boot) == 0 {
		errs = append(errs, fmt.Errorf("boot: %w", ErrEmptyTable))
	}
	for i, e := range t.Boot {
		switch e.Kind {
		case BootInfo, BootLoading, BootSuccess, BootBlank:
		default:
			errs = append(errs, fmt.Errorf("boot[%d] kind %q: %w", i, e.Kind, ErrUnknownKind))
		}
	}
	if len(t.Dialogue) == 0 {
		errs = append(errs, fmt.Errorf("dialogue: %w", ErrEmptyTable))
	}
	if len(t.SystemChecks) == 0 {
		errs = append(errs, fmt.Errorf("system_checks: %w", ErrEmptyTable))
	}
	errs = append(errs, uniqueNames("system_checks", t.SystemChecks)...)

	if len(t.Loading) == 0 {
		errs = append(errs, fmt.Errorf("loading: %w", ErrEmptyTable))
	} else if t.ReadyMessage() == "" {
		errs = append(errs, ErrMissingReady)
	}

	if len(t.Runes) == 0 {
		errs = append(errs, fmt.Errorf("runes: %w", ErrEmptyTable))
	}
	errs = append(errs, uniqueNames("runes", t.Runes)...)

	seen := make(map[string]int, len(t.Runes))
	for i := range t.Runes {
		g := t.Glyph(i)
		if prev, ok := seen[g]; ok {
			errs = append(errs, fmt.Errorf("runes[%d] and runes[%d] glyph %q: %w", prev, i, g, ErrDuplicateGlyph))
			continue
		}
		seen[g] = i
	}

	return errors.Join(errs...)
}

func uniqueNames(table string, checks []Check) []error {
	var errs []error
	seen := make(map[string]int, len(checks))
	for i, c := range checks {
		if prev, ok := seen[c.Name]; ok {
			errs = append(errs, fmt.Errorf("%s[%d] and %s[%d] name %q: %w", table, prev, table, i, c.Name, ErrDuplicateName))
			continue
		}
		seen[c.Name] = i
	}
	return errs
}
