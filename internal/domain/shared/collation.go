package shared

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator values are not safe for concurrent use, so each call builds
// its own.
func newCollator() *collate.Collator {
	return collate.New(language.Korean)
}

// SortNames sorts names in Korean dictionary order
func SortNames(names []string) {
	newCollator().SortStrings(names)
}

// SortByName stably sorts items by the name key in Korean dictionary order
func SortByName[T any](items []T, name func(T) string) {
	c := newCollator()
	slices.SortStableFunc(items, func(a, b T) int {
		return c.CompareString(name(a), name(b))
	})
}

// NameComparer returns a Korean dictionary order comparison. The returned
// function must not be shared between goroutines.
func NameComparer() func(a, b string) int {
	return newCollator().CompareString
}
