package domain

import (
	"fmt"
	"strings"
)

// Severity is the ordered compliance risk level attached to ports, countries
// and movement reports.
//
// SeverityUnknown is a placeholder for "not computed" or "failed". It sorts
// below every real level so MaxSeverity ignores it once real data exists.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityOK
	SeverityWarning
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityUnknown:  "UNKNOWN",
	SeverityOK:       "OK",
	SeverityWarning:  "WARNING",
	SeverityCritical: "CRITICAL",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsKnown reports whether s is a real level rather than the placeholder.
func (s Severity) IsKnown() bool {
	return s >= SeverityOK && s <= SeverityCritical
}

// ParseSeverity parses a severity name case-insensitively.
func ParseSeverity(name string) (Severity, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for s, n := range severityNames {
		if n == upper {
			return s, nil
		}
	}
	return SeverityUnknown, fmt.Errorf("unknown severity: %q", name)
}

// MaxSeverity returns the highest level among values. The maximum of nothing
// is OK.
func MaxSeverity(values ...Severity) Severity {
	max := SeverityOK
	for _, v := range values {
		if v > max && v.IsKnown() {
			max = v
		}
	}
	return max
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
