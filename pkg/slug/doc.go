// Package slug turns free text such as an organization name into a key made
// of lowercase ASCII letters, digits and single hyphens.
//
//	slug.Make("Crème Brûlée & Co.", slug.Replace("&", "and"))
//	// "creme-brulee-and-co"
//
//	slug.Make("Acme", slug.WithSuffix(4), slug.MaxLength(255))
//	// "acme-x7g3"
//
// Diacritics are folded with Unicode decomposition; characters without an
// ASCII form become separators.
package slug
