// Package orgkey implements the organization key field used by the
// organization creation flow.
//
// An organization key is a URL-safe slug: lowercase letters and digits with
// internal hyphens, at most 255 bytes. The Field type owns the editable state
// of one mounted key input. Every edit is checked against the format rule
// synchronously; a well-formed value is then checked for availability against
// a Lookup after a quiet period (250ms by default). Only the latest value is
// ever looked up, and results that arrive after the value changed or after the
// field was closed are discarded.
//
// The parent form is notified through a ChangeFunc: ok is true with the key
// once it is well-formed and free, false whenever the field holds no usable
// key.
//
//	field := orgkey.New(ctx, svc, func(key string, ok bool) {
//	    form.SetOrganizationKey(key, ok)
//	},
//	    orgkey.WithInitialValue("my-org"),
//	    orgkey.WithStateHook(render),
//	)
//	defer field.Close()
//
//	field.Focus()
//	field.Input("my-org-2")
//
// Lookup failures are treated as "available". The create path must re-check
// with Check (or rely on a unique constraint) before persisting.
package orgkey
