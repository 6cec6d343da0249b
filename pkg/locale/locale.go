// Package locale converts language tags into the simplified form understood
// by the time picker web component and exposes the set of locales a picker
// can be configured with.
//
// The browser formats times with Date.toLocaleTimeString, so only the
// language and region subtags are transmitted. Script, variant and extension
// subtags are dropped.
package locale

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrMissingLanguage reports a tag without a language subtag. The browser
// cannot localize times for such a locale.
var ErrMissingLanguage = errors.New("locale: missing language")

const (
	undetermined  = "und"
	unknownRegion = "ZZ"
)

// HasLanguage reports whether tag carries an explicit language subtag.
// language.Und and region-only tags such as "und-FI" do not.
func HasLanguage(tag language.Tag) bool {
	base, _, _ := tag.Raw()
	return base.String() != undetermined
}

// WireTag returns the tag sent to the client: "language" or
// "language-REGION".
func WireTag(tag language.Tag) (string, error) {
	if !HasLanguage(tag) {
		return "", fmt.Errorf("%w: %s", ErrMissingLanguage, DisplayName(tag))
	}
	base, _, region := tag.Raw()
	wire := base.String()
	if r := region.String(); r != "" && r != unknownRegion {
		wire += "-" + r
	}
	return wire, nil
}

// DisplayName returns the name of tag in its own language, falling back to
// the tag text when no name is known.
func DisplayName(tag language.Tag) string {
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return tag.String()
}

// EnglishName returns the English name of tag, falling back to the tag text.
func EnglishName(tag language.Tag) string {
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return tag.String()
}
