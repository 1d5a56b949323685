// services/sorter.go
package services

import (
	"sort"

	"next2play/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortGames orders games in place: "In Progress" first, then by name using
// the collation rules of locale. The sort is stable.
func SortGames(games []models.Game, locale language.Tag) {
	// collate.Collator keeps scratch buffers, so each sort gets its own.
	c := collate.New(locale)
	sort.SliceStable(games, func(i, j int) bool {
		a, b := games[i], games[j]
		ai := a.ProgressStatus == models.StatusInProgress
		bi := b.ProgressStatus == models.StatusInProgress
		if ai != bi {
			return ai
		}
		return c.CompareString(a.GameName, b.GameName) < 0
	})
}

// ParseLocale falls back to English for unknown tags.
func ParseLocale(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return tag
}
