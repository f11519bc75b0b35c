package template

import "strings"

// Component kinds as stored in the wire `type` field.
const (
	KindHeader   = "HEADER"
	KindBody     = "BODY"
	KindFooter   = "FOOTER"
	KindButtons  = "BUTTONS"
	KindCarousel = "CAROUSEL"
)

// Header formats.
const (
	FormatText     = "TEXT"
	FormatImage    = "IMAGE"
	FormatVideo    = "VIDEO"
	FormatDocument = "DOCUMENT"
)

// Component is one node of the wire-format template tree, discriminated by
// Type. Only the fields matching the kind are populated.
type Component struct {
	Type    string       `json:"type"`
	Format  string       `json:"format,omitempty"`
	Text    string       `json:"text,omitempty"`
	Example *Example     `json:"example,omitempty"`
	Buttons []WireButton `json:"buttons,omitempty"`
	Cards   []WireCard   `json:"cards,omitempty"`
}

// Example carries the review samples attached to header and body nodes.
// header_url is absent on records stored before direct preview URLs existed.
type Example struct {
	HeaderHandle []string   `json:"header_handle,omitempty"`
	HeaderURL    []string   `json:"header_url,omitempty"`
	BodyText     [][]string `json:"body_text,omitempty"`
}

// WireButton carries exactly one type-specific payload next to the label.
// Example holds the sample value for dynamic URL buttons.
type WireButton struct {
	Type        string   `json:"type"`
	Text        string   `json:"text"`
	URL         string   `json:"url,omitempty"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	CopyCode    string   `json:"copy_code,omitempty"`
	Example     []string `json:"example,omitempty"`
}

// WireCard wraps one carousel card's nested component list.
type WireCard struct {
	Components []Component `json:"components"`
}

// Kind returns the node discriminator in canonical upper case. Stored
// records mix case ("BODY" vs "body"), so every branch on node type or
// header format in this package goes through Kind/HeaderFormat instead of
// reading the raw fields.
func (c Component) Kind() string { return canonical(c.Type) }

// HeaderFormat returns the header format in canonical upper case.
func (c Component) HeaderFormat() string { return canonical(c.Format) }

func canonical(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// findComponent returns the first node of the given kind, if any.
func findComponent(nodes []Component, kind string) (Component, bool) {
	for _, n := range nodes {
		if n.Kind() == kind {
			return n, true
		}
	}
	return Component{}, false
}
