package html

// RegionType identifies the kind of CSS region found in HTML
type RegionType int

const (
	// UnknownRegion is the zero value, indicating an uninitialized region type
	UnknownRegion RegionType = iota
	// StyleTag represents CSS inside a <style> element
	StyleTag
	// StyleAttribute represents CSS inside a style="..." attribute
	StyleAttribute
)

func (t RegionType) String() string {
	switch t {
	case StyleTag:
		return "style tag"
	case StyleAttribute:
		return "style attribute"
	default:
		return "unknown"
	}
}

// CSSRegion is a span of CSS text inside an HTML document.
// StartByte and EndByte delimit Content in the source, so a rewritten
// region can be spliced back in place.
type CSSRegion struct {
	Content   string
	StartByte uint
	EndByte   uint
	StartLine uint
	StartCol  uint
	Type      RegionType
}
