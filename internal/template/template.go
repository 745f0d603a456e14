// Package template implements the placeholder substitution engine spec
// §4.5 describes: a caller-supplied key map applied first, then five fixed
// profile placeholders, both against title and content independently.
package template

import (
	"strings"

	"github.com/arda-labs/notify-core/internal/domain"
)

// Fill materializes title and content against keyMap and profile. Missing
// map keys or absent placeholders are left untouched — substitution never
// errors. The result is a pure function of its inputs: calling Fill twice
// with the same arguments yields identical output.
func Fill(title, content string, profile domain.UserProfile, keyMap map[string]string) (string, string) {
	title = applyKeyMap(title, keyMap)
	content = applyKeyMap(content, keyMap)

	title = applyCommonKeys(title, profile)
	content = applyCommonKeys(content, profile)

	return title, content
}

// applyKeyMap folds the key map over text; map iteration order is
// unspecified in Go just as it is in the Rust original's HashMap::iter().
func applyKeyMap(text string, keyMap map[string]string) string {
	for k, v := range keyMap {
		text = replaceAll(text, k, v)
	}
	return text
}

// applyCommonKeys replaces the five fixed placeholders in this exact order.
func applyCommonKeys(text string, profile domain.UserProfile) string {
	text = replaceAll(text, domain.CommonKeyUserAccount.Placeholder(), profile.Account)
	text = replaceAll(text, domain.CommonKeyUserLastName.Placeholder(), profile.LastName)
	text = replaceAll(text, domain.CommonKeyUserFirstName.Placeholder(), profile.FirstName)
	text = replaceAll(text, domain.CommonKeyUserCity.Placeholder(), profile.City)
	text = replaceAll(text, domain.CommonKeyUserCountry.Placeholder(), profile.Country)
	return text
}

func replaceAll(text, old, new string) string {
	if old == "" {
		return text
	}
	return strings.ReplaceAll(text, old, new)
}
