package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrInvalidChangeFreq = errors.New("invalid change frequency")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidPageURL    = errors.New("invalid page url")
)

// ChangeFreq is the crawl hint a sitemap entry declares.
type ChangeFreq string

const (
	ChangeAlways  ChangeFreq = "always"
	ChangeHourly  ChangeFreq = "hourly"
	ChangeDaily   ChangeFreq = "daily"
	ChangeWeekly  ChangeFreq = "weekly"
	ChangeMonthly ChangeFreq = "monthly"
	ChangeYearly  ChangeFreq = "yearly"
	ChangeNever   ChangeFreq = "never"
)

func ParseChangeFreq(s string) (ChangeFreq, error) {
	switch cf := ChangeFreq(strings.ToLower(strings.TrimSpace(s))); cf {
	case ChangeAlways, ChangeHourly, ChangeDaily, ChangeWeekly, ChangeMonthly, ChangeYearly, ChangeNever:
		return cf, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidChangeFreq, s)
}

// priorityPattern is the xsd:decimal spelling of a value in [0,1].
var priorityPattern = regexp.MustCompile(`^(0(\.[0-9]+)?|1(\.0+)?)$`)

// PageDescriptor is a published route as the sitemap sees it.
// Priority keeps its declared text so "1.0" is emitted as "1.0".
type PageDescriptor struct {
	URL        string     `json:"url" mapstructure:"url"`
	Priority   string     `json:"priority" mapstructure:"priority"`
	ChangeFreq ChangeFreq `json:"changefreq" mapstructure:"changefreq"`
}

// Validate checks that the descriptor is emitted as-is into a conformant sitemap entry.
func (p PageDescriptor) Validate() error {
	if !strings.HasPrefix(p.URL, "/") {
		return fmt.Errorf("%w: %q must start with /", ErrInvalidPageURL, p.URL)
	}
	if strings.HasPrefix(p.URL, "//") {
		return fmt.Errorf("%w: %q starts with //", ErrInvalidPageURL, p.URL)
	}

	if !priorityPattern.MatchString(p.Priority) {
		return fmt.Errorf("%w: %q for %s", ErrInvalidPriority, p.Priority, p.URL)
	}

	// changefreq values are case sensitive in the protocol
	cf, err := ParseChangeFreq(string(p.ChangeFreq))
	if err != nil {
		return fmt.Errorf("%s: %w", p.URL, err)
	}
	if cf != p.ChangeFreq {
		return fmt.Errorf("%w: %q for %s, use %q", ErrInvalidChangeFreq, p.ChangeFreq, p.URL, cf)
	}

	return nil
}

// DefaultPages is the hardcoded list of published routes. Only the landing page exists today.
func DefaultPages() []PageDescriptor {
	return []PageDescriptor{
		{URL: "/", Priority: "1.0", ChangeFreq: ChangeWeekly},
	}
}
