package types

// RiskBand is the three-level classification of a hazard's risk score.
// The zero value means the hazard has not been classified yet.
type RiskBand string

const (
	RiskBandUnset  RiskBand = ""
	RiskBandLow    RiskBand = "low"
	RiskBandMedium RiskBand = "medium"
	RiskBandHigh   RiskBand = "high"
)

// Score thresholds are inclusive upper bounds.
const (
	riskLowMax    = 2
	riskMediumMax = 4
)

// ClassifyRisk maps a severity/probability pair to a risk band. Partial
// input is never classified: if either value is nil the band is unset.
func ClassifyRisk(severity, probability *int) RiskBand {
	if severity == nil || probability == nil {
		return RiskBandUnset
	}

	score := *severity * *probability
	switch {
	case score <= riskLowMax:
		return RiskBandLow
	case score <= riskMediumMax:
		return RiskBandMedium
	default:
		return RiskBandHigh
	}
}

// IsValid reports whether the band is one of the known values, including unset.
func (b RiskBand) IsValid() bool {
	switch b {
	case RiskBandUnset, RiskBandLow, RiskBandMedium, RiskBandHigh:
		return true
	default:
		return false
	}
}

// Label returns the German label printed in reports.
func (b RiskBand) Label() string {
	switch b {
	case RiskBandLow:
		return "niedrig"
	case RiskBandMedium:
		return "mittel"
	case RiskBandHigh:
		return "hoch"
	default:
		return ""
	}
}

func (b RiskBand) String() string {
	return string(b)
}
