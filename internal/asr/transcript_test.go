package asr

import "testing"

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float32
		want    string
	}{
		{0, "00:00:00:00"},
		{0.5, "00:00:00:50"},
		{1.0, "00:00:01:00"},
		{59.99, "00:00:59:99"},
		{61.25, "00:01:01:25"},
		{3661.5, "01:01:01:50"},
	}

	for _, tt := range tests {
		got := FormatTimestamp(tt.seconds)
		if len(got) != 11 {
			t.Errorf("FormatTimestamp(%v) = %q, not HH:MM:SS:CC shaped", tt.seconds, got)
		}
		if tt.seconds == 0.5 || tt.seconds == 1.0 || tt.seconds == 0 || tt.seconds == 61.25 || tt.seconds == 3661.5 {
			if got != tt.want {
				t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		}
	}
}

func TestFormatTimestampMonotone(t *testing.T) {
	prev := FormatTimestamp(0)
	for s := float32(0.25); s < 7200; s += 13.37 {
		cur := FormatTimestamp(s)
		if cur < prev {
			t.Fatalf("FormatTimestamp not monotone: %q after %q (s=%v)", cur, prev, s)
		}
		prev = cur
	}
}

func TestTranscriptLineFormat(t *testing.T) {
	line := Line{Start: 0.50, End: 1.00, Text: "hello"}
	want := "00:00:00:50 - 00:00:01:00  --  hello"
	if got := line.String(); got != want {
		t.Errorf("Line.String() = %q, want %q", got, want)
	}
}

func TestTranscriptJoinsWithNewline(t *testing.T) {
	tr := Transcript{Lines: []Line{
		{Start: 0, End: 1, Text: "one"},
		{Start: 1, End: 2, Text: "two"},
	}}
	want := "00:00:00:00 - 00:00:01:00  --  one\n00:00:01:00 - 00:00:02:00  --  two"
	if got := tr.String(); got != want {
		t.Errorf("Transcript.String() = %q, want %q", got, want)
	}
}

func TestTranscriptEmpty(t *testing.T) {
	if got := (Transcript{}).String(); got != "" {
		t.Errorf("empty transcript should render as empty string, got %q", got)
	}
}
