package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utilityContext() Context {
	return Context{
		Name:       "order_update",
		Category:   CategoryUtility,
		Language:   "en_US",
		AccountRef: "104857600001",
	}
}

func TestParseEmptyTree(t *testing.T) {
	d := Parse(nil, utilityContext())
	assert.Equal(t, "order_update", d.Name)
	assert.Equal(t, CategoryUtility, d.Category)
	assert.Empty(t, d.BodyText)
	assert.Empty(t, d.FooterText)
	assert.True(t, d.Header.IsZero())
	assert.Empty(t, d.Variables)
	assert.Empty(t, d.Buttons)
}

func TestParseLowercaseLegacyRecord(t *testing.T) {
	nodes := []Component{
		{Type: "header", Format: "image", Example: &Example{HeaderHandle: []string{"H99"}}},
		{Type: "body", Text: "Hello {{1}}"},
		{Type: "footer", Text: "bye"},
	}

	d := Parse(nodes, utilityContext())
	assert.Equal(t, FormatImage, d.Header.Format)
	assert.Equal(t, "H99", d.Header.Handle)
	assert.Empty(t, d.Header.PreviewURL) // predates header_url
	assert.Equal(t, "Hello {{1}}", d.BodyText)
	assert.Equal(t, "bye", d.FooterText)
	require.Len(t, d.Variables, 1)
	assert.Equal(t, Variable{Index: 1, Example: ""}, d.Variables[0])
}

func TestParseShortExampleArray(t *testing.T) {
	nodes := []Component{
		{Type: KindBody, Text: "{{1}} {{2}} {{3}}", Example: &Example{BodyText: [][]string{{"only-one"}}}},
	}

	d := Parse(nodes, utilityContext())
	require.Len(t, d.Variables, 3)
	assert.Equal(t, "only-one", d.Variables[0].Example)
	assert.Equal(t, "", d.Variables[1].Example)
	assert.Equal(t, "", d.Variables[2].Example)
}

func TestParseHeaderPlaceholderCountsTowardVariables(t *testing.T) {
	nodes := []Component{
		{Type: KindHeader, Format: FormatText, Text: "Hi {{1}}"},
		{Type: KindBody, Text: "Order {{2}} shipped", Example: &Example{BodyText: [][]string{{"Ana", "X-1"}}}},
	}

	d := Parse(nodes, utilityContext())
	require.Len(t, d.Variables, 2)
	assert.Equal(t, "Ana", d.Variables[0].Example)
	assert.Equal(t, "X-1", d.Variables[1].Example)
}

func TestParseButtons(t *testing.T) {
	nodes := []Component{
		{Type: KindBody, Text: "pick one"},
		{Type: KindButtons, Buttons: []WireButton{
			{Type: "url", Text: "Visit", URL: "https://x.test/{{1}}", Example: []string{"https://x.test/a"}},
			{Type: ButtonPhoneNumber, Text: "Call", PhoneNumber: "+15550100"},
			{Type: ButtonCopyCode, Text: "Copy", CopyCode: "SAVE20"},
		}},
	}

	d := Parse(nodes, utilityContext())
	require.Len(t, d.Buttons, 3)
	assert.Equal(t, Button{Type: ButtonURL, Text: "Visit", URL: "https://x.test/{{1}}", URLIsDynamic: true, URLExample: "https://x.test/a"}, d.Buttons[0])
	assert.Equal(t, Button{Type: ButtonPhoneNumber, Text: "Call", PhoneNumber: "+15550100"}, d.Buttons[1])
	assert.Equal(t, Button{Type: ButtonCopyCode, Text: "Copy", CopyCode: "SAVE20"}, d.Buttons[2])
}

func TestParseCarouselCards(t *testing.T) {
	ctx := utilityContext()
	ctx.Category = CategoryCarousel
	nodes := []Component{
		{Type: KindBody, Text: "Check these out"},
		{Type: KindCarousel, Cards: []WireCard{
			{Components: []Component{
				{Type: "HEADER", Format: "VIDEO", Example: &Example{HeaderHandle: []string{"V1"}, HeaderURL: []string{"https://cdn.test/v1"}}},
				{Type: "BODY", Text: "First card"},
				{Type: "BUTTONS", Buttons: []WireButton{{Type: ButtonQuickReply, Text: "Go"}}},
			}},
			{Components: []Component{
				{Type: "body", Text: "Second card"},
			}},
		}},
	}

	d := Parse(nodes, ctx)
	require.Len(t, d.Cards, 2)
	assert.Equal(t, Header{Format: FormatVideo, Handle: "V1", PreviewURL: "https://cdn.test/v1"}, d.Cards[0].Header)
	assert.Equal(t, "First card", d.Cards[0].BodyText)
	require.Len(t, d.Cards[0].Buttons, 1)
	assert.Equal(t, "Second card", d.Cards[1].BodyText)
	assert.True(t, d.Cards[1].Header.IsZero())
	assert.Empty(t, d.Cards[1].Buttons)
}

func TestParseSidecarSettings(t *testing.T) {
	ctx := Context{
		Name:       "login_code",
		Category:   CategoryAuthentication,
		Language:   "en_US",
		AccountRef: "104857600001",
		Auth:       &AuthSettings{CodeLength: 8, ExpirationMinutes: 5, AddCodeEntryOption: true},
	}
	d := Parse(nil, ctx)
	assert.Equal(t, AuthSettings{CodeLength: 8, ExpirationMinutes: 5, AddCodeEntryOption: true}, d.Auth)

	ctx = utilityContext()
	ctx.Category = CategoryLimitedTimeOffer
	ctx.Offer = &OfferSettings{ExpirationEpochMs: 1767225600000, CouponCode: "SAVE20"}
	d = Parse(nil, ctx)
	assert.Equal(t, int64(1767225600000), d.Offer.ExpirationEpochMs)
	assert.Equal(t, "SAVE20", d.Offer.CouponCode)
}

func TestParseSkipsUnknownKinds(t *testing.T) {
	nodes := []Component{
		{Type: "LIMITED_TIME_OFFER_DETAILS", Text: "ignored"},
		{Type: KindBody, Text: "kept"},
	}
	d := Parse(nodes, utilityContext())
	assert.Equal(t, "kept", d.BodyText)
}
