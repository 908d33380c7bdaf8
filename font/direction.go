package font

import "golang.org/x/text/unicode/bidi"

// Direction is a paragraph's base writing direction.
type Direction int

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

// DetectDirection runs the Unicode Bidirectional Algorithm's paragraph-level
// detection over text and reports its base direction. DrawTextWrap itself
// only ever lays glyphs out left-to-right (reordering RTL runs would need a
// full bidi reordering pass this renderer doesn't implement), but callers
// composing a UI still need to know which way a label should be anchored.
func DetectDirection(text string) Direction {
	if text == "" {
		return DirectionLTR
	}
	p := &bidi.Paragraph{}
	dir, err := p.SetString(text)
	if err != nil {
		return DirectionLTR
	}
	if dir == bidi.RightToLeft {
		return DirectionRTL
	}
	return DirectionLTR
}
