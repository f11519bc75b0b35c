package template

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldError is one user-facing validation failure. Validation never
// returns a Go error; an empty slice means the draft is valid.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var namePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Validate runs every category-aware rule against the draft and returns
// the collected field errors.
func Validate(d Draft, limits Limits) []FieldError {
	var errs []FieldError
	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message})
	}

	if d.Name == "" {
		add("name", "name is required")
	} else {
		if !namePattern.MatchString(d.Name) {
			add("name", "name may only contain lowercase letters, digits and underscores")
		}
		if len(d.Name) > maxNameLen {
			add("name", fmt.Sprintf("name must be at most %d characters", maxNameLen))
		}
	}
	if !d.Category.Valid() {
		add("category", "unknown template category")
	}
	if d.Language == "" {
		add("language", "language is required")
	}
	if d.AccountRef == "" {
		add("account_ref", "business account is required")
	}

	if d.Category == CategoryAuthentication {
		validateAuth(d.Auth, add)
		return errs
	}

	if strings.TrimSpace(d.BodyText) == "" {
		add("body_text", "body text is required")
	}
	if len(d.BodyText) > maxBodyLen {
		add("body_text", fmt.Sprintf("body text must be at most %d characters", maxBodyLen))
	}

	switch canonical(d.Header.Format) {
	case "":
	case FormatText:
		if len(d.Header.Text) > maxHeaderTextLen {
			add("header.text", fmt.Sprintf("header text must be at most %d characters", maxHeaderTextLen))
		}
	case FormatImage, FormatVideo, FormatDocument:
		if d.Header.Handle == "" {
			add("header.handle", "media header requires an uploaded file")
		}
	default:
		add("header.format", "unsupported header format")
	}

	if len(d.FooterText) > maxFooterLen {
		add("footer_text", fmt.Sprintf("footer text must be at most %d characters", maxFooterLen))
	}

	validatePlaceholders(d, add)

	if d.Category.IsCarousel() {
		validateCards(d.Cards, add)
	} else {
		if len(d.Buttons) > limits.ButtonMax(d.Category) {
			add("buttons", fmt.Sprintf("at most %d buttons are allowed", limits.ButtonMax(d.Category)))
		}
		validateButtons(d.Buttons, "buttons", nil, add)
	}

	if d.Category == CategoryLimitedTimeOffer {
		if d.Offer.ExpirationEpochMs <= 0 {
			add("offer_settings.expiration_epoch_ms", "offer expiration is required")
		}
		if len(d.Offer.CouponCode) > maxCouponLen {
			add("offer_settings.coupon_code", fmt.Sprintf("coupon code must be at most %d characters", maxCouponLen))
		}
	}

	return errs
}

// validatePlaceholders checks the shared postcondition with the variable
// manager: the distinct tokens across body and header text are exactly
// {{1}}..{{N}} for N declared variables.
func validatePlaceholders(d Draft, add func(field, message string)) {
	want := len(d.Variables)
	seen := make(map[int]bool)

	for _, f := range []struct {
		field string
		text  string
	}{
		{"body_text", d.BodyText},
		{"header.text", d.Header.Text},
	} {
		for _, idx := range PlaceholderIndices(f.text) {
			seen[idx] = true
			if idx < 1 || idx > want {
				add(f.field, fmt.Sprintf("placeholder {{%d}} has no matching variable", idx))
			}
		}
	}

	for i := 1; i <= want; i++ {
		if !seen[i] {
			add("variables", fmt.Sprintf("variable {{%d}} is not used in the template text", i))
		}
	}
}

func validateAuth(a AuthSettings, add func(field, message string)) {
	if !containsInt(allowedCodeLengths, a.CodeLength) {
		add("auth_settings.code_length", "code length must be 4, 5, 6 or 8 digits")
	}
	if !containsInt(allowedExpirationMinutes, a.ExpirationMinutes) {
		add("auth_settings.expiration_minutes", "code expiration must be 5, 10, 15, 30 or 60 minutes")
	}
}

// validateButtons checks per-button completeness. allowedTypes restricts
// the type set when non-nil (carousel cards).
func validateButtons(buttons []Button, fieldPrefix string, allowedTypes []string, add func(field, message string)) {
	for i, b := range buttons {
		field := fmt.Sprintf("%s[%d]", fieldPrefix, i)

		if b.Text == "" {
			add(field, "button text is required")
		} else if len(b.Text) > maxButtonTextLen {
			add(field, fmt.Sprintf("button text must be at most %d characters", maxButtonTextLen))
		}

		if allowedTypes != nil && !containsString(allowedTypes, b.Type) {
			add(field, fmt.Sprintf("button type %s is not allowed here", b.Type))
			continue
		}

		switch b.Type {
		case ButtonURL:
			if b.URL == "" {
				add(field, "URL button requires a url")
			}
			if b.URLIsDynamic && b.URLExample == "" {
				add(field, "dynamic URL button requires an example value")
			}
		case ButtonPhoneNumber:
			if b.PhoneNumber == "" {
				add(field, "phone number button requires a phone number")
			}
		case ButtonCopyCode:
			if b.CopyCode == "" {
				add(field, "copy code button requires a code")
			}
		case ButtonQuickReply:
		default:
			add(field, fmt.Sprintf("unsupported button type %q", b.Type))
		}
	}
}

func validateCards(cards []Card, add func(field, message string)) {
	if len(cards) < 1 {
		add("carousel_cards", "at least one card is required")
		return
	}
	if len(cards) > maxCards {
		add("carousel_cards", fmt.Sprintf("at most %d cards are allowed", maxCards))
	}

	uniform := len(cards[0].Buttons)
	cardButtonTypes := []string{ButtonURL, ButtonQuickReply}

	for i, card := range cards {
		field := fmt.Sprintf("carousel_cards[%d]", i)

		if strings.TrimSpace(card.BodyText) == "" {
			add(field+".body_text", "card body text is required")
		}
		if len(card.BodyText) > maxCardBodyLen {
			add(field+".body_text", fmt.Sprintf("card body text must be at most %d characters", maxCardBodyLen))
		}

		switch canonical(card.Header.Format) {
		case "":
		case FormatImage, FormatVideo:
			if card.Header.Handle == "" {
				add(field+".header", "card media header requires an uploaded file")
			}
		default:
			add(field+".header", "card headers must be image or video")
		}

		if len(card.Buttons) != uniform {
			add(field+".buttons", "button count mismatch: all cards must have the same number of buttons")
		}
		if len(card.Buttons) > maxCardButtons {
			add(field+".buttons", fmt.Sprintf("cards allow at most %d buttons", maxCardButtons))
		}
		validateButtons(card.Buttons, field+".buttons", cardButtonTypes, add)
	}
}

func containsInt(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
