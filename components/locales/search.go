package locales

import (
	"sort"
	"strings"

	"golang.org/x/text/language/display"
)

// Search filters entries by a case insensitive match on the wire value, the
// native name or the English name. Entries whose value or name starts with
// the query come first.
func Search(entries []Entry, query string, limit int, opts Options) []Entry {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		if opts.EmptySearchMode != EmptySearchTop {
			return nil
		}
		return append([]Entry{}, entries[:min(limit, len(entries))]...)
	}

	type match struct {
		entry    Entry
		isPrefix bool
	}
	matches := make([]match, 0, 16)
	for _, entry := range entries {
		fields := []string{
			strings.ToLower(entry.Value),
			strings.ToLower(entry.Name),
			strings.ToLower(entry.English),
		}
		found, prefix := false, false
		for _, field := range fields {
			if strings.HasPrefix(field, query) {
				found, prefix = true, true
				break
			}
			if strings.Contains(field, query) {
				found = true
			}
		}
		if found {
			matches = append(matches, match{entry: entry, isPrefix: prefix})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].entry.Value < matches[j].entry.Value
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.entry)
	}
	return out
}

// SearchOptions runs Search and labels the results. A nil namer labels each
// locale in its own language.
func SearchOptions(entries []Entry, query string, limit int, opts Options, namer display.Namer) []Option {
	results := Search(entries, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Option, 0, len(results))
	for _, entry := range results {
		out = append(out, Option{Value: entry.Value, Label: label(entry, namer)})
	}
	return out
}

func label(entry Entry, namer display.Namer) string {
	if namer != nil {
		if name := namer.Name(entry.Tag); name != "" {
			return name
		}
	}
	return entry.Name
}
