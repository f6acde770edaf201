package in

// Validator decides whether a token sequence is linguistically admissible.
// It filters; it never repairs.
type Validator interface {
	CheckMorphology(token string) bool
	CheckSandhi(first, second string) bool
	Validate(tokens []string) (bool, []string)
}
