package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRejectsUnvalidatedDraft(t *testing.T) {
	d := validDraft()
	d.Name = "BAD NAME"

	nodes, err := Build(d, DefaultLimits())
	assert.Nil(t, nodes)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDraftNotValidated)
}

func TestBuildEmissionOrder(t *testing.T) {
	d := validDraft()
	d.Header = Header{Format: FormatText, Text: "Order update"}

	nodes, err := Build(d, DefaultLimits())
	require.NoError(t, err)
	require.Len(t, nodes, 4)
	assert.Equal(t, KindHeader, nodes[0].Kind())
	assert.Equal(t, KindBody, nodes[1].Kind())
	assert.Equal(t, KindFooter, nodes[2].Kind())
	assert.Equal(t, KindButtons, nodes[3].Kind())
}

func TestBuildMediaHeader(t *testing.T) {
	d := validDraft()
	d.Header = Header{Format: FormatImage, Handle: "H123", PreviewURL: "https://cdn.test/h123.jpg"}

	nodes, err := Build(d, DefaultLimits())
	require.NoError(t, err)

	header := nodes[0]
	assert.Equal(t, KindHeader, header.Kind())
	assert.Equal(t, FormatImage, header.HeaderFormat())
	require.NotNil(t, header.Example)
	assert.Equal(t, []string{"H123"}, header.Example.HeaderHandle)
	assert.Equal(t, []string{"https://cdn.test/h123.jpg"}, header.Example.HeaderURL)
	assert.Empty(t, header.Text)
}

func TestBuildBodyExamples(t *testing.T) {
	d := validDraft()
	nodes, err := Build(d, DefaultLimits())
	require.NoError(t, err)

	body, ok := findComponent(nodes, KindBody)
	require.True(t, ok)
	assert.Equal(t, d.BodyText, body.Text)
	require.NotNil(t, body.Example)
	assert.Equal(t, [][]string{{"John", "X-1042"}}, body.Example.BodyText)

	// No variables, no example block.
	d.BodyText = "Your order has shipped"
	d.Variables = nil
	nodes, err = Build(d, DefaultLimits())
	require.NoError(t, err)
	body, _ = findComponent(nodes, KindBody)
	assert.Nil(t, body.Example)
}

func TestBuildOmitsEmptyFooter(t *testing.T) {
	d := validDraft()
	d.FooterText = ""

	nodes, err := Build(d, DefaultLimits())
	require.NoError(t, err)
	_, ok := findComponent(nodes, KindFooter)
	assert.False(t, ok)
}

func TestBuildButtonPayloads(t *testing.T) {
	d := validDraft()
	d.Buttons = []Button{
		{Type: ButtonURL, Text: "Visit", URL: "https://x.test/{{1}}", URLIsDynamic: true, URLExample: "https://x.test/abc"},
		{Type: ButtonPhoneNumber, Text: "Call", PhoneNumber: "+15550100"},
		{Type: ButtonQuickReply, Text: "Stop"},
		{Type: ButtonCopyCode, Text: "Copy code", CopyCode: "SAVE20"},
	}

	nodes, err := Build(d, DefaultLimits())
	require.NoError(t, err)
	block, ok := findComponent(nodes, KindButtons)
	require.True(t, ok)
	require.Len(t, block.Buttons, 4)

	assert.Equal(t, WireButton{Type: ButtonURL, Text: "Visit", URL: "https://x.test/{{1}}", Example: []string{"https://x.test/abc"}}, block.Buttons[0])
	assert.Equal(t, WireButton{Type: ButtonPhoneNumber, Text: "Call", PhoneNumber: "+15550100"}, block.Buttons[1])
	assert.Equal(t, WireButton{Type: ButtonQuickReply, Text: "Stop"}, block.Buttons[2])
	assert.Equal(t, WireButton{Type: ButtonCopyCode, Text: "Copy code", CopyCode: "SAVE20"}, block.Buttons[3])
}

func TestBuildAuthenticationEmitsNothing(t *testing.T) {
	d := Draft{
		Name:       "login_code",
		Category:   CategoryAuthentication,
		Language:   "en_US",
		AccountRef: "104857600001",
		Auth:       AuthSettings{CodeLength: 6, ExpirationMinutes: 10, AddCodeEntryOption: true},
		// Stray content must be ignored, not compiled.
		BodyText:   "leftover",
		FooterText: "leftover",
	}

	nodes, err := Build(d, DefaultLimits())
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestBuildCarousel(t *testing.T) {
	d := validCarouselDraft()

	nodes, err := Build(d, DefaultLimits())
	require.NoError(t, err)

	carousel, ok := findComponent(nodes, KindCarousel)
	require.True(t, ok)
	require.Len(t, carousel.Cards, 2)

	card := carousel.Cards[0]
	require.Len(t, card.Components, 3)
	assert.Equal(t, KindHeader, card.Components[0].Kind())
	assert.Equal(t, FormatImage, card.Components[0].HeaderFormat())
	assert.Equal(t, KindBody, card.Components[1].Kind())
	assert.Equal(t, "Fresh arrivals", card.Components[1].Text)
	assert.Equal(t, KindButtons, card.Components[2].Kind())

	// Carousel categories never emit a top-level button block.
	_, ok = findComponent(nodes, KindButtons)
	assert.False(t, ok)
}

func TestBuildCarouselRejectsMismatchedCards(t *testing.T) {
	d := validCarouselDraft()
	d.Cards[1].Buttons = nil

	_, err := Build(d, DefaultLimits())
	assert.ErrorIs(t, err, ErrDraftNotValidated)
}
