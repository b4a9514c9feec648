package usecase

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	countryPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]{2,55}$`)
	managerPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]{1,59}$`)
)

func validateCountry(country string) error {
	if !countryPattern.MatchString(country) {
		return fmt.Errorf("%w: invalid country name %q", ErrInvalidInput, country)
	}
	return nil
}

func validateManager(manager string) error {
	if !managerPattern.MatchString(manager) {
		return fmt.Errorf("%w: invalid manager name %q", ErrInvalidInput, manager)
	}
	return nil
}

// canonicalCountry trims and title-cases the first letter of each word
// so "kenya" and "Kenya" address the same team document.
func canonicalCountry(country string) string {
	words := strings.Fields(strings.TrimSpace(country))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
