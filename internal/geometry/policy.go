package geometry

// Policy decides how content is scaled into the viewport.
type Policy int

const (
	Fit Policy = iota
	Stretch
	Zoom
)

// Selection identifiers used by the display-mode toggle.
const (
	SelectionFit     = "fit"
	SelectionStretch = "stretch"
	SelectionZoom    = "zoom"
)

var policyNames = map[Policy]string{
	Fit:     SelectionFit,
	Stretch: SelectionStretch,
	Zoom:    SelectionZoom,
}

func (p Policy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}
	return SelectionFit
}

// PolicyFromSelection maps a display-mode selection to a policy. Anything it
// does not recognise is Fit.
func PolicyFromSelection(id string) Policy {
	switch id {
	case SelectionStretch:
		return Stretch
	case SelectionZoom:
		return Zoom
	default:
		return Fit
	}
}

// Next cycles Fit → Stretch → Zoom → Fit.
func (p Policy) Next() Policy {
	switch p {
	case Fit:
		return Stretch
	case Stretch:
		return Zoom
	default:
		return Fit
	}
}

// Policies lists every policy in toggle order.
func Policies() []Policy {
	return []Policy{Fit, Stretch, Zoom}
}
