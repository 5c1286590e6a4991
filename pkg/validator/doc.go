// Package validator provides small declarative validation rules.
//
// A Rule couples a Check func with translation-friendly error metadata. Rules
// are evaluated with Apply, which collects every failed rule into a
// ValidationErrors value. ValidationErrors implements error, so callers can
// return it directly and later recover it with errors.As or
// ExtractValidationErrors.
//
//	err := validator.Apply(
//	    validator.RequiredString("name", name),
//	    validator.MaxLenString("key", key, 255),
//	    validator.MatchesPattern("key", key, keyPattern, "organization key"),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, field := range verrs.Fields() {
//	        // render verrs.Get(field) next to the input
//	    }
//	}
//
// Rules never touch the network. Availability checks and other expensive
// validations live with the caller and only report through the same error
// types.
package validator
