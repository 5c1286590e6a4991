package orgkey

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrymomot/onboarding/pkg/logger"
)

// Lookup reports whether an organization already uses a key.
type Lookup interface {
	KeyExists(ctx context.Context, key string) (bool, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, key string) (bool, error)

func (f LookupFunc) KeyExists(ctx context.Context, key string) (bool, error) {
	return f(ctx, key)
}

// ChangeFunc receives the usable key. ok is false when the field holds no usable key:
// the value is malformed, taken, or its availability check is still pending.
type ChangeFunc func(key string, ok bool)

// Field is the state machine behind one mounted organization key input.
//
// Transitions (edits, focus changes, check start and resolution) are
// serialized together with the callbacks they trigger, so ChangeFunc and the
// state hook observe them in order. Callbacks may call State but must not call
// Input, Focus, Blur or Close synchronously.
type Field struct {
	lookup   Lookup
	onChange ChangeFunc
	cfg      config

	ctx       context.Context
	cancel    context.CancelFunc
	stopAfter func() bool
	done      chan struct{}

	transition sync.Mutex

	mu       sync.Mutex
	state    State
	gen      uint64 // bumped on every validated value
	checking uint64 // generation of the lookup in flight, 0 when idle
	timer    *time.Timer
	reported bool // the last ChangeFunc call carried a usable key
	closed   bool
}

// New mounts a field. The field is closed when ctx is done or Close is called.
func New(ctx context.Context, lookup Lookup, onChange ChangeFunc, opts ...Option) *Field {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if onChange == nil {
		onChange = func(string, bool) {}
	}

	fctx, cancel := context.WithCancel(ctx)
	f := &Field{
		lookup:   lookup,
		onChange: onChange,
		cfg:      cfg,
		ctx:      fctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	// An already cancelled ctx runs Close right away, possibly before stopAfter is set.
	f.mu.Lock()
	f.stopAfter = context.AfterFunc(fctx, f.Close)
	f.mu.Unlock()

	if cfg.initial != nil {
		f.mount(*cfg.initial)
	}

	return f
}

func (f *Field) mount(value string) {
	f.transition.Lock()
	defer f.transition.Unlock()

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.state.Value = value
	f.state.Touched = true
	st := f.state
	f.mu.Unlock()

	if f.cfg.readOnly {
		f.publish(st)
		return
	}
	f.validate(value)
}

// Input records a user edit and validates the new raw value.
// It is a no-op for read-only or closed fields.
func (f *Field) Input(value string) {
	f.transition.Lock()
	defer f.transition.Unlock()

	f.mu.Lock()
	if f.closed || f.cfg.readOnly {
		f.mu.Unlock()
		return
	}
	f.state.Touched = true
	f.state.Value = value
	f.mu.Unlock()

	f.validate(value)
}

// InputIfUntouched applies value like Input, but only while the field has not
// been edited or seeded yet. It reports whether the value was applied.
func (f *Field) InputIfUntouched(value string) bool {
	f.transition.Lock()
	defer f.transition.Unlock()

	f.mu.Lock()
	if f.closed || f.cfg.readOnly || f.state.Touched {
		f.mu.Unlock()
		return false
	}
	f.state.Touched = true
	f.state.Value = value
	f.mu.Unlock()

	f.validate(value)
	return true
}

// Focus marks the field as being edited, which hides the invalid display state.
func (f *Field) Focus() {
	f.setEditing(true)
}

// Blur ends editing.
func (f *Field) Blur() {
	f.setEditing(false)
}

func (f *Field) setEditing(editing bool) {
	f.transition.Lock()
	defer f.transition.Unlock()

	f.mu.Lock()
	if f.closed || f.state.Editing == editing {
		f.mu.Unlock()
		return
	}
	f.state.Editing = editing
	st := f.state
	f.mu.Unlock()

	f.publish(st)
}

// State returns a snapshot of the field.
func (f *Field) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Field) ReadOnly() bool {
	return f.cfg.readOnly
}

// Close unmounts the field: the pending check is cancelled and any lookup
// result still in flight is discarded. It is safe to call more than once.
func (f *Field) Close() {
	f.transition.Lock()
	defer f.transition.Unlock()

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.stopTimerLocked()
	stop := f.stopAfter
	f.mu.Unlock()

	if stop != nil {
		stop()
	}
	f.cancel()
	close(f.done)
}

// Done is closed once the field is unmounted.
func (f *Field) Done() <-chan struct{} {
	return f.done
}

// validate runs the format rule and schedules the availability check.
// Caller holds f.transition.
func (f *Field) validate(key string) {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.stopTimerLocked()

	if err := ValidateFormat(key); err != nil {
		f.state.Error = f.cfg.translate(MessageInvalidFormat)
		f.state.Touched = true
		f.reported = false
		st := f.state
		f.mu.Unlock()

		f.publish(st)
		f.onChange("", false)
		return
	}

	hadKey := f.reported
	f.reported = false
	f.timer = time.AfterFunc(f.cfg.debounce, func() { f.check(gen, key) })
	st := f.state
	f.mu.Unlock()

	f.publish(st)
	if hadKey {
		f.onChange("", false)
	}
}

// check runs on the debounce timer goroutine.
func (f *Field) check(gen uint64, key string) {
	defer func() {
		if r := recover(); r != nil {
			f.cfg.logger.ErrorContext(f.ctx, "organization key check aborted",
				logger.Component("orgkey"),
				logger.OrgKey(key),
				logger.Error(fmt.Errorf("panic: %v", r)),
			)
		}
	}()

	if !f.begin(gen) {
		return
	}

	exists, err := f.lookup.KeyExists(f.ctx, key)
	if err != nil {
		// Lookup failures count as availability; the create path re-checks.
		if f.ctx.Err() == nil {
			f.cfg.logger.WarnContext(f.ctx, "organization key lookup failed, assuming available",
				logger.Component("orgkey"),
				logger.OrgKey(key),
				logger.Error(err),
			)
		}
		exists = false
	}

	f.resolve(gen, key, !exists)
}

func (f *Field) begin(gen uint64) bool {
	f.transition.Lock()
	defer f.transition.Unlock()

	f.mu.Lock()
	if f.closed || gen != f.gen {
		f.mu.Unlock()
		return false
	}
	f.timer = nil
	f.state.Validating = true
	f.checking = gen
	st := f.state
	f.mu.Unlock()

	f.publish(st)
	return true
}

func (f *Field) resolve(gen uint64, key string, free bool) {
	f.transition.Lock()
	defer f.transition.Unlock()

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}

	if gen != f.gen {
		// A newer value superseded this one; only release the validating flag.
		if f.checking != gen {
			f.mu.Unlock()
			return
		}
		f.checking = 0
		f.state.Validating = false
		st := f.state
		f.mu.Unlock()
		f.publish(st)
		return
	}

	f.checking = 0
	f.state.Validating = false
	if free {
		f.state.Error = ""
	} else {
		f.state.Error = f.cfg.translate(MessageTaken)
		f.state.Touched = true
	}
	f.reported = free
	st := f.state
	f.mu.Unlock()

	f.publish(st)
	if free {
		f.onChange(key, true)
	} else {
		f.onChange("", false)
	}
}

func (f *Field) publish(st State) {
	if f.cfg.stateHook != nil {
		f.cfg.stateHook(st)
	}
}

func (f *Field) stopTimerLocked() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
