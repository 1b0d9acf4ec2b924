package cli

import "errors"

var (
	// errSecretsDoNotMatch is returned when the repeated entry of a new
	// password or PIN differs from the first one.
	errSecretsDoNotMatch = errors.New("entries do not match")

	// errGenerationFailed is returned when the password generator cannot
	// satisfy the selected options.
	errGenerationFailed = errors.New("password generation failed")

	// errInvalidItemID is returned when an item identifier argument is not a
	// positive integer.
	errInvalidItemID = errors.New("invalid item id")
)
