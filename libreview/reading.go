// reading.go
package libreview

import (
	"fmt"
	"time"
)

// Unit is the glucose unit the account is configured for.
type Unit string

const (
	UnitMgPerDl  Unit = "mg/dL"
	UnitMmolPerL Unit = "mmol/L"
)

// Trend indicates whether glucose is falling, stable, or rising.
type Trend string

const (
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
	TrendRising  Trend = "rising"
	TrendUnknown Trend = "unknown"
)

// Glyph returns the arrow printed next to a reading.
func (t Trend) Glyph() string {
	switch t {
	case TrendFalling:
		return "↓"
	case TrendStable:
		return "→"
	case TrendRising:
		return "↑"
	default:
		return "?"
	}
}

// Reading is a single blood-glucose measurement. It is only ever constructed
// from a successful authenticated fetch; there is no partial or default value.
type Reading struct {
	Value          float64   // in Unit
	ValueInMgPerDl float64   // always supplied by the API, used for threshold banding
	Unit           Unit
	Trend          Trend
	Timestamp      time.Time // capture time, UTC
	High           bool
	Low            bool
}

// factoryTimestampLayout matches FactoryTimestamp values like
// "6/19/2025 3:04:05 PM" (UTC, no zone designator).
const factoryTimestampLayout = "1/2/2006 3:04:05 PM"

func unitFromCode(code int) (Unit, error) {
	switch code {
	case 0:
		return UnitMmolPerL, nil
	case 1:
		return UnitMgPerDl, nil
	default:
		return "", fmt.Errorf("unrecognized glucose unit code %d", code)
	}
}

// trendFromArrow maps the API's 1-5 trend arrow codes. Unrecognized codes map
// to TrendUnknown rather than failing: the arrow is cosmetic, the value is not.
func trendFromArrow(arrow int) Trend {
	switch arrow {
	case 1, 2:
		return TrendFalling
	case 3:
		return TrendStable
	case 4, 5:
		return TrendRising
	default:
		return TrendUnknown
	}
}

// toReading validates a wire measurement and converts it into a Reading.
func (m measurement) toReading() (*Reading, error) {
	unit, err := unitFromCode(m.GlucoseUnits)
	if err != nil {
		return nil, err
	}

	if m.Value == 0 && m.ValueInMgPerDl == 0 {
		return nil, fmt.Errorf("measurement has no glucose value")
	}

	ts, err := time.ParseInLocation(factoryTimestampLayout, m.FactoryTimestamp, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp %q: %w", m.FactoryTimestamp, err)
	}

	return &Reading{
		Value:          m.Value,
		ValueInMgPerDl: m.ValueInMgPerDl,
		Unit:           unit,
		Trend:          trendFromArrow(m.TrendArrow),
		Timestamp:      ts,
		High:           m.IsHigh,
		Low:            m.IsLow,
	}, nil
}
