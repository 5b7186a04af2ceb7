// Package slug generates URL-safe slugs from arbitrary strings.
//
// Text is Unicode-normalized (golang.org/x/text) so Latin diacritics fold to
// their ASCII base letters; anything that is not an ASCII letter or digit
// becomes a separator.
//
//	slug.Make("Hello, World!")           // "hello-world"
//	slug.Make("Café & Restaurant")       // "cafe-restaurant"
//	slug.Make("München straße")          // "munchen-strasse"
//	slug.Make("Product Name", slug.Separator("_"))    // "product_name"
//	slug.Make("A very long title", slug.MaxLength(8)) // "a-very"
//
// Scripts without a Latin decomposition (Cyrillic, CJK, ...) produce no
// characters, so callers must accept an empty result.
package slug
