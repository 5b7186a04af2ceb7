package forum

import (
	"unicode"

	"github.com/dmitrymomot/ryob/pkg/validator"
)

// Registration form fields.
const (
	FieldName         = "name"
	FieldPassword     = "password"
	FieldConfirmation = "confirmation"
)

// Registration limits, counted in characters.
const (
	NameMinLen     = 2
	NameMaxLen     = 128
	PasswordMinLen = 8
	PasswordMaxLen = 256
)

// Registration error messages.
const (
	MsgNameLength       = "Name must be between 2 and 128 characters long"
	MsgNameCharset      = "Name must consist of alphanumeric characters and spaces"
	MsgPasswordLength   = "Password must be between 8 and 256 characters long"
	MsgPasswordCharset  = "Password must consist of alphanumeric characters and punctuation symbols"
	MsgPasswordMismatch = "Passwords do not match"
	MsgNameInUse        = "Name is already in use"
	MsgBadLogin         = "Incorrect name or password"
)

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ValidateRegistration checks already-trimmed registration input and
// returns every violated rule as validator.ValidationErrors, or nil.
func ValidateRegistration(name, password, confirmation string) error {
	return validator.Apply(
		validator.LenBetweenString(FieldName, name, NameMinLen, NameMaxLen).
			WithMessage(MsgNameLength),
		validator.CharsetString(FieldName, name, validator.AnyOf(isAlphanumeric, validator.IsSpace)).
			WithMessage(MsgNameCharset),
		validator.LenBetweenString(FieldPassword, password, PasswordMinLen, PasswordMaxLen).
			WithMessage(MsgPasswordLength),
		validator.CharsetString(FieldPassword, password, validator.AnyOf(isAlphanumeric, validator.IsASCIIPunct)).
			WithMessage(MsgPasswordCharset),
		validator.EqualString(FieldConfirmation, confirmation, password).
			WithMessage(MsgPasswordMismatch),
	)
}
