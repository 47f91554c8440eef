package report

// IconSet maps briefing item icon tags to the glyph printed in front of the
// item. Tags without an entry fall back to Default.
type IconSet struct {
	Default string
	Glyphs  map[string]string
}

// DefaultIcons prints a bullet for every tag.
var DefaultIcons = IconSet{Default: "•"}

func (s IconSet) glyph(tag string) string {
	if g, ok := s.Glyphs[tag]; ok {
		return g
	}
	if s.Default == "" {
		return "•"
	}
	return s.Default
}
