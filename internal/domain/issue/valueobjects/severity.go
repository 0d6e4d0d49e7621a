package valueobjects

import "fmt"

// Severity is assigned by upstream classification; this service only stores and reads it.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var validSeverities = map[Severity]bool{
	SeverityLow:      true,
	SeverityMedium:   true,
	SeverityHigh:     true,
	SeverityCritical: true,
}

func (s Severity) String() string {
	return string(s)
}

func (s Severity) IsValid() bool {
	return validSeverities[s]
}

// IsHighUrgency reports whether the severity counts toward the dashboard's urgent total.
func (s Severity) IsHighUrgency() bool {
	return s == SeverityHigh || s == SeverityCritical
}

// HighUrgencySeverities lists the severities IsHighUrgency accepts, for store queries.
func HighUrgencySeverities() []Severity {
	return []Severity{SeverityHigh, SeverityCritical}
}

func NewSeverity(s string) (Severity, error) {
	severity := Severity(s)
	if !severity.IsValid() {
		return "", fmt.Errorf("invalid severity: %s", s)
	}
	return severity, nil
}
