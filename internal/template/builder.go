package template

import (
	"errors"
	"fmt"
)

// ErrDraftNotValidated is returned when Build is invoked on a draft that
// still has validation errors. Callers must sequence Validate before
// Build; hitting this error is a programming mistake, not user input.
var ErrDraftNotValidated = errors.New("template: draft has not passed validation")

// Build compiles a valid draft into the ordered wire component list:
// header, body, footer, then buttons or carousel. AUTHENTICATION drafts
// compile to no content components at all; their code settings travel as
// sidecar metadata on the submission request.
func Build(d Draft, limits Limits) ([]Component, error) {
	if errs := Validate(d, limits); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %d errors, first on %s: %s",
			ErrDraftNotValidated, len(errs), errs[0].Field, errs[0].Message)
	}

	if d.Category == CategoryAuthentication {
		return nil, nil
	}

	var nodes []Component
	if h, ok := buildHeader(d.Header); ok {
		nodes = append(nodes, h)
	}
	nodes = append(nodes, buildBody(d))
	if d.FooterText != "" {
		nodes = append(nodes, Component{Type: KindFooter, Text: d.FooterText})
	}
	if d.Category.IsCarousel() {
		nodes = append(nodes, buildCarousel(d.Cards))
	} else if len(d.Buttons) > 0 {
		nodes = append(nodes, Component{Type: KindButtons, Buttons: buildButtons(d.Buttons)})
	}
	return nodes, nil
}

func buildHeader(h Header) (Component, bool) {
	format := canonical(h.Format)
	switch format {
	case "":
		return Component{}, false
	case FormatText:
		return Component{Type: KindHeader, Format: FormatText, Text: h.Text}, true
	default:
		// The handle is opaque; it is forwarded verbatim, never interpreted.
		example := &Example{HeaderHandle: []string{h.Handle}}
		if h.PreviewURL != "" {
			example.HeaderURL = []string{h.PreviewURL}
		}
		return Component{Type: KindHeader, Format: format, Example: example}, true
	}
}

func buildBody(d Draft) Component {
	c := Component{Type: KindBody, Text: d.BodyText}
	if len(d.Variables) > 0 {
		row := make([]string, len(d.Variables))
		for i, v := range d.Variables {
			row[i] = v.Example
		}
		c.Example = &Example{BodyText: [][]string{row}}
	}
	return c
}

func buildButtons(buttons []Button) []WireButton {
	out := make([]WireButton, len(buttons))
	for i, b := range buttons {
		wire := WireButton{Type: b.Type, Text: b.Text}
		switch b.Type {
		case ButtonURL:
			wire.URL = b.URL
			if b.URLIsDynamic {
				wire.Example = []string{b.URLExample}
			}
		case ButtonPhoneNumber:
			wire.PhoneNumber = b.PhoneNumber
		case ButtonCopyCode:
			wire.CopyCode = b.CopyCode
		}
		out[i] = wire
	}
	return out
}

func buildCarousel(cards []Card) Component {
	wire := make([]WireCard, len(cards))
	for i, card := range cards {
		var comps []Component
		if h, ok := buildHeader(card.Header); ok {
			comps = append(comps, h)
		}
		comps = append(comps, Component{Type: KindBody, Text: card.BodyText})
		if len(card.Buttons) > 0 {
			comps = append(comps, Component{Type: KindButtons, Buttons: buildButtons(card.Buttons)})
		}
		wire[i] = WireCard{Components: comps}
	}
	return Component{Type: KindCarousel, Cards: wire}
}
