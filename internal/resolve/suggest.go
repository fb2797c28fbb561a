package resolve

import (
	"path"

	"github.com/sahilm/fuzzy"

	"github.com/weaseltree/weaseltree/internal/mapping"
)

const maxSuggestions = 3

// Suggest returns stored keys resembling rel, best match first.
func Suggest(store *mapping.Store, rel string) []string {
	keys := store.Keys()
	if len(keys) == 0 || rel == "" {
		return nil
	}

	matches := fuzzy.Find(path.Base(rel), keys)
	var out []string
	for _, m := range matches {
		if m.Str == rel {
			continue
		}
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
