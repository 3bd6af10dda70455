// display_test.go
package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/malwaredetective/blood-sugar-console/libreview"
)

func TestBandColor(t *testing.T) {
	tests := []struct {
		name string
		mgdl float64
		want color.Attribute
	}{
		{"very low", 54, color.FgRed},
		{"just below low edge", 69, color.FgRed},
		{"low edge", 70, color.FgYellow},
		{"just below range", 79, color.FgYellow},
		{"bottom of range", 80, color.FgGreen},
		{"mid range", 120, color.FgGreen},
		{"top of range", 180, color.FgGreen},
		{"just above range", 181, color.FgYellow},
		{"high edge", 200, color.FgYellow},
		{"very high", 201, color.FgRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bandColor(tt.mgdl)
			want := color.New(tt.want)
			if !got.Equals(want) {
				t.Errorf("bandColor(%v) = %v, want %v", tt.mgdl, got, want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	mgdl := &libreview.Reading{Value: 116, Unit: libreview.UnitMgPerDl}
	if got := formatValue(mgdl); got != "116" {
		t.Errorf("formatValue(mg/dL) = %q, want 116", got)
	}

	mmol := &libreview.Reading{Value: 5.3, Unit: libreview.UnitMmolPerL}
	if got := formatValue(mmol); got != "5.3" {
		t.Errorf("formatValue(mmol/L) = %q, want 5.3", got)
	}
}

func TestCenterLine(t *testing.T) {
	if got := centerLine("ab", 10); got != "    ab" {
		t.Errorf("centerLine(%q, 10) = %q", "ab", got)
	}
	// Lines wider than the terminal are left as-is.
	if got := centerLine("abcdef", 4); got != "abcdef" {
		t.Errorf("centerLine(%q, 4) = %q", "abcdef", got)
	}
}

func TestRenderPlainWhenNotTTY(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{out: &buf, tty: false}

	reading := &libreview.Reading{
		Value:          116,
		ValueInMgPerDl: 116,
		Unit:           libreview.UnitMgPerDl,
		Trend:          libreview.TrendRising,
		Timestamp:      time.Date(2025, 6, 19, 15, 0, 3, 0, time.UTC),
	}
	r.Render(reading)

	out := buf.String()
	if !strings.HasPrefix(out, "116 mg/dL ↑ (captured ") {
		t.Errorf("plain output = %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Error("plain output contains ANSI escapes")
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("plain output is %d lines, want 1", strings.Count(out, "\n"))
	}
}

func TestRenderTTYCentersValue(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	r := &Renderer{out: &buf, tty: true, width: func() int { return 100 }}

	reading := &libreview.Reading{
		Value:          95,
		ValueInMgPerDl: 95,
		Unit:           libreview.UnitMgPerDl,
		Trend:          libreview.TrendStable,
		Timestamp:      time.Date(2025, 6, 19, 15, 0, 3, 0, time.UTC),
	}
	r.Render(reading)

	out := buf.String()
	if !strings.Contains(out, "mg/dL →") {
		t.Errorf("output missing unit and trend glyph:\n%s", out)
	}
	if !strings.Contains(out, "This reading was captured at:") {
		t.Errorf("output missing capture line:\n%s", out)
	}
}
