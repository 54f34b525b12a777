package eventtime

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Clock is the time source used to decide what "future" means.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// AnchorClock always returns the same instant.
type AnchorClock struct {
	anchor time.Time
}

// NewAnchorClock creates an AnchorClock pinned to t.
func NewAnchorClock(t time.Time) AnchorClock { return AnchorClock{anchor: t} }

func (c AnchorClock) Now() time.Time { return c.anchor }

var compactTime = regexp.MustCompile(`(\d{1,2})(\d{2})(am|pm)`)

// Parser turns event date input into a UTC instant. It accepts RFC 3339
// timestamps and English phrases like "next friday at 7pm".
type Parser struct {
	TimezoneMap     map[string]string
	DefaultTimezone string

	w *when.Parser
}

// NewParser creates a Parser. defaultTimezone is an IANA name used when the
// request does not name one; empty means UTC.
func NewParser(defaultTimezone string) *Parser {
	if defaultTimezone == "" {
		defaultTimezone = "UTC"
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	return &Parser{
		TimezoneMap: map[string]string{
			"UTC": "UTC",
			"PST": "America/Los_Angeles",
			"PDT": "America/Los_Angeles",
			"MST": "America/Denver",
			"MDT": "America/Denver",
			"CST": "America/Chicago",
			"CDT": "America/Chicago",
			"EST": "America/New_York",
			"EDT": "America/New_York",
		},
		DefaultTimezone: defaultTimezone,
		w:               w,
	}
}

// ResolveTimezone maps an abbreviation or IANA name to a location.
func (p *Parser) ResolveTimezone(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		name = p.DefaultTimezone
	}
	if full, ok := p.TimezoneMap[strings.ToUpper(name)]; ok {
		name = full
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindValidation, apperrors.CodeInvalidArgument,
			fmt.Sprintf("invalid timezone: %s", name))
	}
	return loc, nil
}

// Parse returns the instant described by input, which must lie in the future
// relative to clock.
func (p *Parser) Parse(input, timezone string, clock Clock) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, apperrors.Invalid("date is required")
	}

	loc, err := p.ResolveTimezone(timezone)
	if err != nil {
		return time.Time{}, err
	}
	now := clock.Now().In(loc)

	parsed, err := time.Parse(time.RFC3339, input)
	if err != nil {
		normalized := strings.ToLower(input)
		normalized = strings.ReplaceAll(normalized, "today ", "today at ")
		normalized = compactTime.ReplaceAllString(normalized, "$1:$2 $3")

		r, werr := p.w.Parse(normalized, now)
		if werr != nil {
			return time.Time{}, apperrors.Wrap(werr, apperrors.KindValidation, apperrors.CodeInvalidArgument,
				fmt.Sprintf("could not recognize date: %s", input))
		}
		if r == nil {
			return time.Time{}, apperrors.Invalid("could not recognize date: %s", input)
		}
		parsed = r.Time.In(loc)
	}

	if !parsed.Truncate(time.Minute).After(now.Truncate(time.Minute)) {
		return time.Time{}, apperrors.Newf(apperrors.KindValidation, apperrors.CodeEventInPast,
			"event date must be in the future (parsed: %s)", parsed.UTC().Format(time.RFC3339))
	}

	return parsed.UTC(), nil
}
