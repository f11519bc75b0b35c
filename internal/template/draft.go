package template

// Category determines which draft fields are meaningful and which
// structural rules apply at validation time.
type Category string

const (
	CategoryUtility          Category = "UTILITY"
	CategoryMarketing        Category = "MARKETING"
	CategoryAuthentication   Category = "AUTHENTICATION"
	CategoryCarousel         Category = "CAROUSEL"
	CategoryCarouselUtility  Category = "CAROUSEL_UTILITY"
	CategoryLimitedTimeOffer Category = "LIMITED_TIME_OFFER"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryUtility, CategoryMarketing, CategoryAuthentication,
		CategoryCarousel, CategoryCarouselUtility, CategoryLimitedTimeOffer:
		return true
	}
	return false
}

// IsCarousel reports whether the category compiles to a card carousel
// instead of a top-level button block.
func (c Category) IsCarousel() bool {
	return c == CategoryCarousel || c == CategoryCarouselUtility
}

// Draft is the editable form of a message template. It is mutated through
// the placeholder manager and direct field edits, then compiled with Build
// once Validate reports no errors.
type Draft struct {
	Name       string     `json:"name"`
	Category   Category   `json:"category"`
	Language   string     `json:"language"`
	AccountRef string     `json:"account_ref"`
	Header     Header     `json:"header"`
	BodyText   string     `json:"body_text"`
	FooterText string     `json:"footer_text"`
	Variables  []Variable `json:"variables,omitempty"`
	Buttons    []Button   `json:"buttons,omitempty"`
	Cards      []Card     `json:"carousel_cards,omitempty"`

	Auth  AuthSettings  `json:"auth_settings"`
	Offer OfferSettings `json:"offer_settings"`
}

// Header is either absent (empty Format), a text header, or a media header
// referencing an opaque upload handle.
type Header struct {
	Format     string `json:"format,omitempty"` // TEXT, IMAGE, VIDEO or DOCUMENT
	Text       string `json:"text,omitempty"`
	Handle     string `json:"handle,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
}

func (h Header) IsZero() bool { return h.Format == "" }

// Variable pairs a 1-based placeholder index with the example value shown
// to reviewers.
type Variable struct {
	Index   int    `json:"index"`
	Example string `json:"example"`
}

// Button types.
const (
	ButtonURL         = "URL"
	ButtonPhoneNumber = "PHONE_NUMBER"
	ButtonQuickReply  = "QUICK_REPLY"
	ButtonCopyCode    = "COPY_CODE"
)

// Button carries one type-exclusive payload next to the shared label.
type Button struct {
	Type         string `json:"type"`
	Text         string `json:"text"`
	URL          string `json:"url,omitempty"`
	URLIsDynamic bool   `json:"url_is_dynamic,omitempty"`
	URLExample   string `json:"url_example,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	CopyCode     string `json:"copy_code,omitempty"`
}

// Card is one swipeable unit of a carousel template.
type Card struct {
	Header   Header   `json:"header"`
	BodyText string   `json:"body_text"`
	Buttons  []Button `json:"buttons,omitempty"`
}

// AuthSettings is only meaningful for AUTHENTICATION drafts.
type AuthSettings struct {
	CodeLength         int  `json:"code_length"`
	ExpirationMinutes  int  `json:"expiration_minutes"`
	AddCodeEntryOption bool `json:"add_code_entry_option"`
}

// OfferSettings is only meaningful for LIMITED_TIME_OFFER drafts.
type OfferSettings struct {
	ExpirationEpochMs int64  `json:"expiration_epoch_ms"`
	CouponCode        string `json:"coupon_code,omitempty"`
}

// OnCategoryChange switches a draft to a new category and resets every
// field exclusive to the one it is leaving, so no hybrid draft survives
// the transition.
func OnCategoryChange(d Draft, next Category) Draft {
	if next == d.Category {
		return d
	}

	switch {
	case d.Category == CategoryAuthentication:
		d.Auth = AuthSettings{}
	case d.Category == CategoryLimitedTimeOffer:
		d.Offer = OfferSettings{}
	case d.Category.IsCarousel() && !next.IsCarousel():
		d.Cards = nil
	}

	if next.IsCarousel() && !d.Category.IsCarousel() {
		// Top-level buttons never compile for carousel templates.
		d.Buttons = nil
	}

	if next == CategoryAuthentication {
		d.Header = Header{}
		d.BodyText = ""
		d.FooterText = ""
		d.Variables = nil
		d.Buttons = nil
		d.Cards = nil
		d.Auth = AuthSettings{CodeLength: 6, ExpirationMinutes: 10}
	}

	d.Category = next
	return d
}
