// Package validator checks user input and reports every failure at once.
//
// Rules are plain values built by constructors such as RequiredString,
// LenBetweenString or CharsetString and evaluated together with Apply:
//
//	err := validator.Apply(
//		validator.RequiredString("title", form.Title),
//		validator.MaxLenString("title", form.Title, 200),
//	)
//	if ve := validator.ExtractValidationErrors(err); ve != nil {
//		// re-render the form with ve.Get("title")
//	}
//
// Struct tags are handled by ValidateStruct, backed by
// github.com/go-playground/validator/v10. Field names in errors follow the
// `form` tag (then `json`, then `query`) so they match the submitted inputs.
// Structs implementing Validatable get their Validate method called as well.
//
// Every ValidationError carries a TranslationKey and TranslationValues;
// ValidationErrors.Translate rewrites messages through a translation function.
package validator
