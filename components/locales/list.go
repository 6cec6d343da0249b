package locales

import (
	"sort"

	"github.com/goliatone/go-timepicker/pkg/locale"
	"golang.org/x/text/language"
)

// Entry is one selectable locale.
type Entry struct {
	Tag     language.Tag
	Value   string
	Name    string
	English string
}

// Option is the JSON shape of one result.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Entries resolves the supported locales of provider into wire values and
// names sorted by value. Tags that share a wire value, such as sr-Latn-RS and
// sr-Cyrl-RS, are reported once under the first tag seen.
func Entries(provider locale.Provider) []Entry {
	tags := locale.Supported(provider)
	out := make([]Entry, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		wire, err := locale.WireTag(tag)
		if err != nil {
			continue
		}
		if _, ok := seen[wire]; ok {
			continue
		}
		seen[wire] = struct{}{}
		out = append(out, Entry{
			Tag:     tag,
			Value:   wire,
			Name:    locale.DisplayName(tag),
			English: locale.EnglishName(tag),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}
