package orgkey

import "context"

// Check validates key once, without debouncing: format first, then availability.
// Like the field it treats lookup failures as availability, unless ctx itself
// is done, in which case the context error is returned.
func Check(ctx context.Context, lookup Lookup, key string) error {
	if err := ValidateFormat(key); err != nil {
		return err
	}

	exists, err := lookup.KeyExists(ctx, key)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return nil
	}
	if exists {
		return ErrKeyTaken
	}
	return nil
}
