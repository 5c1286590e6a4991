package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups the non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under the key "error". A nil err yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// OrgKey records an organization key under the key "org_key".
func OrgKey(key string) slog.Attr {
	return slog.String("org_key", key)
}

// OrgID records an organization identifier under the key "org_id".
// If id is nil, it returns an empty Attr.
func OrgID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("org_id", id)
}

// FieldID records the identifier of a mounted key field under the key "field_id".
func FieldID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("field_id", id)
}

func Locale(lang string) slog.Attr {
	return slog.String("locale", lang)
}

func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func Handler(name string) slog.Attr {
	return slog.String("handler", name)
}
