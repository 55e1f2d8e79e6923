package domain

import (
	"fmt"
	"strings"
	"time"
)

// ReportKind identifies one of the two bulletin types.
type ReportKind string

const (
	// KindBMS is the primary report, served as JSON.
	KindBMS ReportKind = "BMS"
	// KindBMR is the secondary report, served as XML.
	KindBMR ReportKind = "BMR"
)

// ParseReportKind accepts a kind label in any case.
func ParseReportKind(s string) (ReportKind, error) {
	switch ReportKind(strings.ToUpper(strings.TrimSpace(s))) {
	case KindBMS:
		return KindBMS, nil
	case KindBMR:
		return KindBMR, nil
	default:
		return "", fmt.Errorf("unknown report kind %q", s)
	}
}

// RawExtension is the file extension used when the report is stored verbatim.
func (k ReportKind) RawExtension() string {
	if k == KindBMR {
		return "xml"
	}
	return "json"
}

// Format is the value of the format query parameter for the report endpoint.
func (k ReportKind) Format() string {
	return k.RawExtension()
}

// Report is a raw document returned by the content service. Its lifetime is a
// single cycle.
type Report struct {
	Kind ReportKind
	Body []byte
	URL  string
}

// Rendition is a report ready to be written: either the raw body or the
// reduced plain-text form.
type Rendition struct {
	Kind      ReportKind
	Content   []byte
	Extension string
	Pretty    bool
}

// Artifact describes one file to persist.
type Artifact struct {
	Rendition
	Zone uint8
	Dir  string
	At   time.Time
}
