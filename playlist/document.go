// ABOUTME: XML document model for the desktop background slideshow
// ABOUTME: Builds alternating static/transition entries and encodes them with 4-space indentation

package playlist

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// indent is the per-level indentation of the rendered document
const indent = "    "

// Background is the root <background> element read by the desktop cycler
type Background struct {
	XMLName   xml.Name  `xml:"background"`
	StartTime StartTime `xml:"starttime"`
	Entries   []Entry
}

// StartTime anchors the slideshow. The cycler only needs some fixed point
// in the past, so it is always 2000-01-01 00:00:00.
type StartTime struct {
	Year   string `xml:"year"`
	Month  string `xml:"month"`
	Day    string `xml:"day"`
	Hour   string `xml:"hour"`
	Minute string `xml:"minute"`
	Second string `xml:"second"`
}

// Entry is a <static> or <transition> node
type Entry interface {
	isEntry()
}

// Static shows one image for Duration seconds
type Static struct {
	XMLName  xml.Name `xml:"static"`
	Duration string   `xml:"duration"`
	File     string   `xml:"file"`
}

// Transition crossfades From into To over Duration seconds
type Transition struct {
	XMLName  xml.Name `xml:"transition"`
	Duration string   `xml:"duration"`
	From     string   `xml:"from"`
	To       string   `xml:"to"`
}

func (Static) isEntry()     {}
func (Transition) isEntry() {}

// FixedStartTime returns the literal 2000/01/01 00:00:00 anchor
func FixedStartTime() StartTime {
	return StartTime{
		Year:   "2000",
		Month:  "01",
		Day:    "01",
		Hour:   "00",
		Minute: "00",
		Second: "00",
	}
}

// RoundSeconds rounds a duration to the one decimal digit the document can hold
func RoundSeconds(seconds float64) float64 {
	rounded := math.Round(seconds*10) / 10
	if rounded == 0 {
		return 0 // no "-0.0"
	}

	return rounded
}

// FormatSeconds renders a duration with exactly one decimal digit (5 -> "5.0", 5.5 -> "5.5")
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(RoundSeconds(seconds), 'f', 1, 64)
}

// Build walks images pairwise: every image gets a static entry, and every
// image that has a successor is followed by a transition into it.
// The document never ends with a transition.
func Build(images ImageList, staticSeconds, transitionSeconds float64) (*Background, error) {
	if len(images) == 0 {
		return nil, ErrEmptyDirectory
	}

	static := FormatSeconds(staticSeconds)
	transition := FormatSeconds(transitionSeconds)

	doc := &Background{
		StartTime: FixedStartTime(),
		Entries:   make([]Entry, 0, 2*len(images)-1),
	}

	for i, current := range images {
		doc.Entries = append(doc.Entries, Static{Duration: static, File: current})

		if i+1 < len(images) {
			doc.Entries = append(doc.Entries, Transition{
				Duration: transition,
				From:     current,
				To:       images[i+1],
			})
		}
	}

	return doc, nil
}

// Statics returns the static entries in document order
func (b *Background) Statics() []Static {
	var statics []Static

	for _, e := range b.Entries {
		if s, ok := e.(Static); ok {
			statics = append(statics, s)
		}
	}

	return statics
}

// Transitions returns the transition entries in document order
func (b *Background) Transitions() []Transition {
	var transitions []Transition

	for _, e := range b.Entries {
		if t, ok := e.(Transition); ok {
			transitions = append(transitions, t)
		}
	}

	return transitions
}

// Encode writes the XML declaration and the indented document to w
func Encode(w io.Writer, doc *Background) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", indent)

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode playlist: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush playlist: %w", err)
	}

	_, err := io.WriteString(w, "\n")

	return err
}

// Marshal renders doc the way Encode does and returns the bytes
func Marshal(doc *Background) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalXML decodes entries by element name, keeping their order
func (b *Background) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	b.XMLName = start.Name
	b.Entries = nil

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := b.decodeChild(d, t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (b *Background) decodeChild(d *xml.Decoder, start xml.StartElement) error {
	switch start.Name.Local {
	case "starttime":
		if err := d.DecodeElement(&b.StartTime, &start); err != nil {
			return err
		}

		b.StartTime = StartTime{
			Year:   strings.TrimSpace(b.StartTime.Year),
			Month:  strings.TrimSpace(b.StartTime.Month),
			Day:    strings.TrimSpace(b.StartTime.Day),
			Hour:   strings.TrimSpace(b.StartTime.Hour),
			Minute: strings.TrimSpace(b.StartTime.Minute),
			Second: strings.TrimSpace(b.StartTime.Second),
		}
	case "static":
		var s Static
		if err := d.DecodeElement(&s, &start); err != nil {
			return err
		}

		s.Duration = strings.TrimSpace(s.Duration)
		s.File = strings.TrimSpace(s.File)
		b.Entries = append(b.Entries, s)
	case "transition":
		var t Transition
		if err := d.DecodeElement(&t, &start); err != nil {
			return err
		}

		t.Duration = strings.TrimSpace(t.Duration)
		t.From = strings.TrimSpace(t.From)
		t.To = strings.TrimSpace(t.To)
		b.Entries = append(b.Entries, t)
	default:
		return d.Skip()
	}

	return nil
}

// Decode parses a background document from r
func Decode(r io.Reader) (*Background, error) {
	var doc Background
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse playlist: %w", err)
	}

	return &doc, nil
}

// ReadFile parses the background document stored at path
func ReadFile(path string) (*Background, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open playlist: %w", err)
	}

	defer func() {
		_ = file.Close() // read-only
	}()

	return Decode(file)
}
