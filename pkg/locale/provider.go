package locale

import (
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Provider is a read-only locale registry.
type Provider interface {
	Locales() []language.Tag
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() []language.Tag

func (fn ProviderFunc) Locales() []language.Tag {
	if fn == nil {
		return nil
	}
	return fn()
}

type staticProvider struct {
	tags []language.Tag
}

// Static returns a provider serving a fixed list of tags in the given order.
func Static(tags ...language.Tag) Provider {
	return staticProvider{tags: append([]language.Tag{}, tags...)}
}

func (p staticProvider) Locales() []language.Tag {
	return append([]language.Tag{}, p.tags...)
}

var (
	systemOnce sync.Once
	systemTags []language.Tag
)

type systemProvider struct{}

// System returns the provider backed by the languages the display package has
// names for. Each language is followed by its most likely regional form, so
// "fi" is listed together with "fi-FI".
func System() Provider { return systemProvider{} }

func (systemProvider) Locales() []language.Tag {
	systemOnce.Do(func() {
		systemTags = withLikelyRegions(display.Supported.Tags())
	})
	return append([]language.Tag{}, systemTags...)
}

func withLikelyRegions(tags []language.Tag) []language.Tag {
	out := make([]language.Tag, 0, 2*len(tags))
	seen := make(map[string]struct{}, 2*len(tags))
	add := func(tag language.Tag) {
		if _, ok := seen[tag.String()]; ok {
			return
		}
		seen[tag.String()] = struct{}{}
		out = append(out, tag)
	}
	for _, tag := range tags {
		add(tag)
		if _, _, region := tag.Raw(); region.String() != "ZZ" {
			continue
		}
		base, _ := tag.Base()
		region, conf := tag.Region()
		if conf == language.No {
			continue
		}
		if regional, err := language.Compose(base, region); err == nil {
			add(regional)
		}
	}
	return out
}

// Supported filters the locales of p, keeping only tags with a language
// subtag. A nil provider means System().
func Supported(p Provider) []language.Tag {
	if p == nil {
		p = System()
	}
	all := p.Locales()
	out := make([]language.Tag, 0, len(all))
	for _, tag := range all {
		if !HasLanguage(tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}
