package collect

import "strings"

// ArticleFor returns "a" or "an" as appropriate for the given word, matching
// the teacher's util.ArticleFor used when building human-readable "expected
// a FOO or an BAR" messages. If capitalize is true the article is
// capitalized ("A"/"An").
func ArticleFor(word string, capitalize bool) string {
	article := "a"
	if word != "" && strings.ContainsRune("aeiouAEIOU", rune(word[0])) {
		article = "an"
	}
	if capitalize {
		article = strings.ToUpper(article[:1]) + article[1:]
	}
	return article
}

// TextList joins items into a human-readable, Oxford-comma'd list: "a", "a
// and b", or "a, b, and c". Used by the diagnostics reporter when listing
// competing actions or clashing terminals.
func TextList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		out := make([]string, len(items))
		copy(out, items)
		out[len(out)-1] = "and " + out[len(out)-1]
		return strings.Join(out, ", ")
	}
}
