package asr

import (
	"fmt"
	"strings"
)

// Line is one timestamped transcript entry.
type Line struct {
	Start float32 `json:"start"`
	End   float32 `json:"end"`
	Text  string  `json:"text"`
}

func (l Line) String() string {
	return fmt.Sprintf("%s - %s  --  %s", FormatTimestamp(l.Start), FormatTimestamp(l.End), l.Text)
}

// Transcript is the ordered set of lines produced for one audio file.
type Transcript struct {
	Lines []Line `json:"lines"`
}

// String renders the transcript in its wire format: one line per entry,
// joined by single newlines.
func (t Transcript) String() string {
	lines := make([]string, len(t.Lines))
	for i, l := range t.Lines {
		lines[i] = l.String()
	}
	return strings.Join(lines, "\n")
}

// FormatTimestamp renders seconds as HH:MM:SS:CC. The last field is
// centiseconds (hundredths of a second), not milliseconds; downstream
// transcript consumers depend on that. Hours overflow above 99 is not
// handled.
func FormatTimestamp(seconds float32) string {
	hours := uint32(seconds / 3600.0)
	minutes := uint32(modf32(seconds, 3600.0) / 60.0)
	secs := uint32(modf32(seconds, 60.0))
	centis := uint32(modf32(seconds, 1.0) * 100.0)
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, secs, centis)
}

func modf32(v, m float32) float32 {
	return v - m*float32(int(v/m))
}
