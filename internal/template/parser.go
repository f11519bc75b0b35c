package template

// Context carries the sidecar metadata stored next to the component tree
// rather than inside it.
type Context struct {
	Name       string
	Category   Category
	Language   string
	AccountRef string
	Auth       *AuthSettings
	Offer      *OfferSettings
}

// Parse reconstructs an editable draft from a stored component tree. It is
// deliberately tolerant of legacy and partial records: unknown node kinds
// are skipped, missing fields resolve to empty defaults and short example
// arrays pad out with empty strings. It never fails.
func Parse(nodes []Component, ctx Context) Draft {
	d := Draft{
		Name:       ctx.Name,
		Category:   ctx.Category,
		Language:   ctx.Language,
		AccountRef: ctx.AccountRef,
	}
	if ctx.Auth != nil {
		d.Auth = *ctx.Auth
	}
	if ctx.Offer != nil {
		d.Offer = *ctx.Offer
	}

	for _, node := range nodes {
		switch node.Kind() {
		case KindHeader:
			d.Header = parseHeader(node)
		case KindBody:
			d.BodyText = node.Text
		case KindFooter:
			d.FooterText = node.Text
		case KindButtons:
			d.Buttons = parseButtons(node.Buttons)
		case KindCarousel:
			d.Cards = parseCards(node.Cards)
		}
	}

	d.Variables = recoverVariables(d.BodyText, d.Header.Text, nodes)
	return d
}

func parseHeader(node Component) Header {
	switch node.HeaderFormat() {
	case FormatText:
		return Header{Format: FormatText, Text: node.Text}
	case FormatImage, FormatVideo, FormatDocument:
		h := Header{Format: node.HeaderFormat()}
		if node.Example != nil {
			if len(node.Example.HeaderHandle) > 0 {
				h.Handle = node.Example.HeaderHandle[0]
			}
			if len(node.Example.HeaderURL) > 0 {
				h.PreviewURL = node.Example.HeaderURL[0]
			}
		}
		return h
	default:
		return Header{}
	}
}

func parseButtons(buttons []WireButton) []Button {
	if len(buttons) == 0 {
		return nil
	}
	out := make([]Button, len(buttons))
	for i, wire := range buttons {
		b := Button{Type: canonical(wire.Type), Text: wire.Text}
		switch b.Type {
		case ButtonURL:
			b.URL = wire.URL
			if len(wire.Example) > 0 {
				b.URLIsDynamic = true
				b.URLExample = wire.Example[0]
			}
		case ButtonPhoneNumber:
			b.PhoneNumber = wire.PhoneNumber
		case ButtonCopyCode:
			b.CopyCode = wire.CopyCode
		}
		out[i] = b
	}
	return out
}

func parseCards(cards []WireCard) []Card {
	if len(cards) == 0 {
		return nil
	}
	out := make([]Card, len(cards))
	for i, wire := range cards {
		var card Card
		for _, node := range wire.Components {
			switch node.Kind() {
			case KindHeader:
				card.Header = parseHeader(node)
			case KindBody:
				card.BodyText = node.Text
			case KindButtons:
				card.Buttons = parseButtons(node.Buttons)
			}
		}
		out[i] = card
	}
	return out
}

// recoverVariables rebuilds the ordered variable list by scanning body and
// header text for placeholder tokens and cross-referencing the stored body
// examples positionally. Records whose example array is missing or shorter
// than the token count get empty examples for the remainder.
func recoverVariables(bodyText, headerText string, nodes []Component) []Variable {
	highest := 0
	for _, idx := range PlaceholderIndices(bodyText) {
		if idx > highest {
			highest = idx
		}
	}
	for _, idx := range PlaceholderIndices(headerText) {
		if idx > highest {
			highest = idx
		}
	}
	if highest == 0 {
		return nil
	}

	var examples []string
	if body, ok := findComponent(nodes, KindBody); ok && body.Example != nil && len(body.Example.BodyText) > 0 {
		examples = body.Example.BodyText[0]
	}

	vars := make([]Variable, highest)
	for i := range vars {
		vars[i] = Variable{Index: i + 1}
		if i < len(examples) {
			vars[i].Example = examples[i]
		}
	}
	return vars
}
