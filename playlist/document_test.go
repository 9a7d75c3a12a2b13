// ABOUTME: Tests for building and encoding the background XML document
// ABOUTME: Covers entry counts, chain consistency, duration formatting and exact output

package playlist

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

func makeImages(n int) ImageList {
	images := make(ImageList, n)
	for i := range images {
		images[i] = fmt.Sprintf("/pictures/img%02d.jpg", i)
	}

	return images
}

// TestBuildEntryCounts verifies N statics and N-1 transitions for every N
func TestBuildEntryCounts(t *testing.T) {
	for n := 1; n <= 25; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			doc, err := Build(makeImages(n), 60, 5)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}

			if got := len(doc.Statics()); got != n {
				t.Errorf("got %d static entries, want %d", got, n)
			}

			if got := len(doc.Transitions()); got != n-1 {
				t.Errorf("got %d transition entries, want %d", got, n-1)
			}

			if len(doc.Entries) != 2*n-1 {
				t.Errorf("got %d entries, want %d", len(doc.Entries), 2*n-1)
			}

			if _, ok := doc.Entries[len(doc.Entries)-1].(Static); !ok {
				t.Error("document must end with a static entry")
			}
		})
	}
}

// TestBuildChainConsistency verifies entries alternate and transitions link neighbours
func TestBuildChainConsistency(t *testing.T) {
	images := makeImages(7)

	doc, err := Build(images, 60, 5)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for i, entry := range doc.Entries {
		switch e := entry.(type) {
		case Static:
			if i%2 != 0 {
				t.Errorf("entry %d: static at odd position", i)
			}

			if want := images[i/2]; e.File != want {
				t.Errorf("entry %d: file = %q, want %q", i, e.File, want)
			}
		case Transition:
			if i%2 != 1 {
				t.Errorf("entry %d: transition at even position", i)
			}

			prev := doc.Entries[i-1].(Static)
			next := doc.Entries[i+1].(Static)

			if e.From != prev.File {
				t.Errorf("entry %d: from = %q, want previous file %q", i, e.From, prev.File)
			}

			if e.To != next.File {
				t.Errorf("entry %d: to = %q, want next file %q", i, e.To, next.File)
			}
		default:
			t.Fatalf("entry %d: unexpected type %T", i, entry)
		}
	}
}

func TestBuildSingleImage(t *testing.T) {
	doc, err := Build(ImageList{"/pictures/only.png"}, 60, 5)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(doc.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(doc.Entries))
	}

	if len(doc.Transitions()) != 0 {
		t.Error("single image must not produce a transition")
	}
}

func TestBuildEmpty(t *testing.T) {
	_, err := Build(nil, 60, 5)
	if !errors.Is(err, ErrEmptyDirectory) {
		t.Errorf("Build(nil) error = %v, want ErrEmptyDirectory", err)
	}
}

func TestBuildStartTime(t *testing.T) {
	doc, err := Build(makeImages(2), 60, 5)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := StartTime{Year: "2000", Month: "01", Day: "01", Hour: "00", Minute: "00", Second: "00"}
	if doc.StartTime != want {
		t.Errorf("StartTime = %+v, want %+v", doc.StartTime, want)
	}
}

func TestRoundSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{60, 60},
		{12.34, 12.3},
		{5.25, 5.3},
		{0.04, 0},
		{0.05, 0.1},
		{-0.04, 0},
	}

	for _, tt := range tests {
		got := RoundSeconds(tt.in)
		if got != tt.want || math.Signbit(got) != math.Signbit(tt.want) {
			t.Errorf("RoundSeconds(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5, "5.0"},
		{60, "60.0"},
		{5.5, "5.5"},
		{0, "0.0"},
		{0.5, "0.5"},
		{3600, "3600.0"},
		{2.26, "2.3"},
		{5.25, "5.3"},
		{-0.04, "0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatSeconds(tt.in); got != tt.want {
				t.Errorf("FormatSeconds(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildDurations(t *testing.T) {
	doc, err := Build(makeImages(3), 42.5, 3)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, s := range doc.Statics() {
		if s.Duration != "42.5" {
			t.Errorf("static duration = %q, want 42.5", s.Duration)
		}
	}

	for _, tr := range doc.Transitions() {
		if tr.Duration != "3.0" {
			t.Errorf("transition duration = %q, want 3.0", tr.Duration)
		}
	}
}

// TestMarshalExactOutput pins the rendered document byte for byte
func TestMarshalExactOutput(t *testing.T) {
	doc, err := Build(ImageList{"/p/a.jpg", "/p/b.png"}, 60, 5)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `<?xml version="1.0" encoding="UTF-8"?>
<background>
    <starttime>
        <year>2000</year>
        <month>01</month>
        <day>01</day>
        <hour>00</hour>
        <minute>00</minute>
        <second>00</second>
    </starttime>
    <static>
        <duration>60.0</duration>
        <file>/p/a.jpg</file>
    </static>
    <transition>
        <duration>5.0</duration>
        <from>/p/a.jpg</from>
        <to>/p/b.png</to>
    </transition>
    <static>
        <duration>60.0</duration>
        <file>/p/b.png</file>
    </static>
</background>
`

	if got := string(data); got != want {
		t.Errorf("Marshal output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestMarshalEscapesPaths(t *testing.T) {
	doc, err := Build(ImageList{"/p/rock & roll.jpg"}, 60, 5)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if !strings.Contains(string(data), "<file>/p/rock &amp; roll.jpg</file>") {
		t.Errorf("ampersand not escaped:\n%s", data)
	}
}

// TestDecodeLegacyDocument reads a playlist as written by older generators
func TestDecodeLegacyDocument(t *testing.T) {
	legacy := `<?xml version="1.0" ?>
<background>
    <starttime>
        <year>2000</year>
        <month>01</month>
        <day>01</day>
        <hour>00</hour>
        <minute>00</minute>
        <second>00</second>
    </starttime>
    <static>
        <duration>60.0</duration>
        <file>/p/a.jpg</file>
    </static>
    <transition>
        <duration>5.0</duration>
        <from>/p/a.jpg</from>
        <to>/p/b.gif</to>
    </transition>
    <static>
        <duration>60.0</duration>
        <file>/p/b.gif</file>
    </static>
</background>
`

	doc, err := Decode(strings.NewReader(legacy))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if doc.StartTime != FixedStartTime() {
		t.Errorf("StartTime = %+v", doc.StartTime)
	}

	statics := doc.Statics()
	if len(statics) != 2 || statics[0].File != "/p/a.jpg" || statics[1].File != "/p/b.gif" {
		t.Errorf("unexpected statics: %+v", statics)
	}

	transitions := doc.Transitions()
	if len(transitions) != 1 || transitions[0].From != "/p/a.jpg" || transitions[0].To != "/p/b.gif" || transitions[0].Duration != "5.0" {
		t.Errorf("unexpected transitions: %+v", transitions)
	}

	if _, ok := doc.Entries[1].(Transition); !ok {
		t.Errorf("entry order not preserved: %T", doc.Entries[1])
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode(strings.NewReader("<background><static>")); err == nil {
		t.Error("expected error for truncated document")
	}
}
