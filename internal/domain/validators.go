package domain

import (
	"fmt"
	"regexp"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._\-]{1,64}$`)

// ValidateUsername checks that a username is non-empty and within the
// allowed character set.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("invalid username: 1-64 letters, digits, dots, dashes or underscores")
	}
	return nil
}

// ValidateBuyIn checks that a buy-in is non-negative (in cents).
// Winnings carry no sign constraint.
func ValidateBuyIn(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("buy_in must not be negative, got %d", amount)
	}
	return nil
}

// ValidateFilter rejects negative pagination values before they reach
// the store.
func ValidateFilter(f SessionFilter) error {
	if f.Skip < 0 {
		return fmt.Errorf("skip must not be negative, got %d", f.Skip)
	}
	if f.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", f.Limit)
	}
	return nil
}
