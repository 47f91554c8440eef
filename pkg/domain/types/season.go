package types

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Season of an event. SeasonAll is only meaningful for templates, where it
// matches every project season.
type Season string

const (
	SeasonSpring Season = "fruehling"
	SeasonSummer Season = "sommer"
	SeasonAutumn Season = "herbst"
	SeasonWinter Season = "winter"
	SeasonAll    Season = "alle"
)

// SeasonFromDate derives the season from the month of t.
func SeasonFromDate(t time.Time) Season {
	switch t.Month() {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// IsValid accepts the four concrete seasons. Use IsValidForTemplate when
// SeasonAll is allowed.
func (s Season) IsValid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter:
		return true
	default:
		return false
	}
}

func (s Season) IsValidForTemplate() bool {
	return s == SeasonAll || s.IsValid()
}

// Matches reports whether a template tagged with s applies to season other.
func (s Season) Matches(other Season) bool {
	return s == SeasonAll || other == "" || s == other
}

// Label returns the German display name.
func (s Season) Label() string {
	switch s {
	case SeasonSpring:
		return "Frühling"
	case SeasonSummer:
		return "Sommer"
	case SeasonAutumn:
		return "Herbst"
	case SeasonWinter:
		return "Winter"
	case SeasonAll:
		return "Alle"
	default:
		return ""
	}
}

func (s Season) String() string {
	return string(s)
}

func ParseSeason(s string) (Season, error) {
	season := Season(s)
	if !season.IsValidForTemplate() {
		return "", goerr.New("invalid season", goerr.V("season", s))
	}
	return season, nil
}

// IndoorOutdoor tells whether an event takes place inside, outside or both.
type IndoorOutdoor string

const (
	Indoor            IndoorOutdoor = "indoor"
	Outdoor           IndoorOutdoor = "outdoor"
	IndoorOutdoorBoth IndoorOutdoor = "both"
	IndoorOutdoorAll  IndoorOutdoor = "alle"
)

func (x IndoorOutdoor) IsValid() bool {
	switch x {
	case Indoor, Outdoor, IndoorOutdoorBoth:
		return true
	default:
		return false
	}
}

func (x IndoorOutdoor) IsValidForTemplate() bool {
	return x == IndoorOutdoorAll || x.IsValid()
}

// Matches reports whether a template tagged with x applies to other.
func (x IndoorOutdoor) Matches(other IndoorOutdoor) bool {
	return x == IndoorOutdoorAll || other == "" || x == other
}

func (x IndoorOutdoor) Label() string {
	switch x {
	case Indoor:
		return "Indoor"
	case Outdoor:
		return "Outdoor"
	case IndoorOutdoorBoth:
		return "Indoor & Outdoor"
	case IndoorOutdoorAll:
		return "Alle"
	default:
		return ""
	}
}

func (x IndoorOutdoor) String() string {
	return string(x)
}

func ParseIndoorOutdoor(s string) (IndoorOutdoor, error) {
	v := IndoorOutdoor(s)
	if !v.IsValidForTemplate() {
		return "", goerr.New("invalid indoor/outdoor value", goerr.V("indoor_outdoor", s))
	}
	return v, nil
}
