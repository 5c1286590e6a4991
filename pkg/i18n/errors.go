package i18n

import "errors"

var (
	ErrNilAdapter        = errors.New("i18n: adapter is nil")
	ErrNoTranslations    = errors.New("i18n: no translations loaded")
	ErrFailedToParseYAML = errors.New("i18n: failed to parse YAML")
	ErrInvalidStructure  = errors.New("i18n: invalid translation structure")
	ErrReadingSource     = errors.New("i18n: failed to read translation source")
)
