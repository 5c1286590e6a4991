package orgkey_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/pkg/orgkey"
)

const (
	testDebounce = 20 * time.Millisecond
	waitFor      = time.Second
	tick         = 5 * time.Millisecond
)

type change struct {
	key string
	ok  bool
}

type changeRecorder struct {
	mu    sync.Mutex
	calls []change
}

func (r *changeRecorder) onChange(key string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, change{key: key, ok: ok})
}

func (r *changeRecorder) all() []change {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]change(nil), r.calls...)
}

func (r *changeRecorder) last() (change, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return change{}, false
	}
	return r.calls[len(r.calls)-1], true
}

type fakeLookup struct {
	mu        sync.Mutex
	calls     []string
	taken     map[string]bool
	err       error
	block     chan struct{}
	ignoreCtx bool
}

func (l *fakeLookup) KeyExists(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	l.calls = append(l.calls, key)
	block, ignoreCtx := l.block, l.ignoreCtx
	l.mu.Unlock()

	if block != nil {
		if ignoreCtx {
			<-block
		} else {
			select {
			case <-block:
			case <-ctx.Done():
				return false, ctx.Err()
			}
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	return l.taken[key], nil
}

func (l *fakeLookup) lookups() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

func newField(t *testing.T, lookup orgkey.Lookup, rec *changeRecorder, opts ...orgkey.Option) *orgkey.Field {
	t.Helper()
	opts = append([]orgkey.Option{orgkey.WithDebounce(testDebounce)}, opts...)
	f := orgkey.New(context.Background(), lookup, rec.onChange, opts...)
	t.Cleanup(f.Close)
	return f
}

func TestField_RejectsMalformedKeysSynchronously(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"My_Org", strings.Repeat("a", 256), "-org", ""} {
		t.Run(value, func(t *testing.T) {
			t.Parallel()

			lookup := &fakeLookup{}
			rec := &changeRecorder{}
			f := newField(t, lookup, rec)

			f.Input(value)

			// Rejection is synchronous, no waiting required.
			assert.Equal(t, []change{{key: "", ok: false}}, rec.all())
			st := f.State()
			assert.Equal(t, value, st.Value)
			assert.True(t, st.Touched)
			assert.Equal(t, orgkey.DefaultTranslate(orgkey.MessageInvalidFormat), st.Error)
			assert.False(t, st.Validating)

			time.Sleep(3 * testDebounce)
			assert.Empty(t, lookup.lookups())
		})
	}
}

func TestField_FreeKey(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{}
	rec := &changeRecorder{}
	f := newField(t, lookup, rec)

	f.Input("my-org")
	assert.Empty(t, rec.all(), "nothing is reported before the check resolves")

	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)
	assert.Equal(t, []change{{key: "my-org", ok: true}}, rec.all())
	assert.Equal(t, []string{"my-org"}, lookup.lookups())

	st := f.State()
	assert.Empty(t, st.Error)
	assert.False(t, st.Validating)
	assert.True(t, st.IsValid())
}

func TestField_TakenKey(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{taken: map[string]bool{"acme": true}}
	rec := &changeRecorder{}
	f := newField(t, lookup, rec)

	f.Input("acme")

	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)
	assert.Equal(t, []change{{key: "", ok: false}}, rec.all())

	st := f.State()
	assert.Equal(t, orgkey.DefaultTranslate(orgkey.MessageTaken), st.Error)
	assert.True(t, st.Touched)
	assert.False(t, st.Validating)
	assert.True(t, st.IsInvalid())
}

func TestField_LookupErrorMeansAvailable(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{err: errors.New("502 bad gateway")}
	rec := &changeRecorder{}
	f := newField(t, lookup, rec)

	f.Input("my-org")

	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)
	assert.Equal(t, []change{{key: "my-org", ok: true}}, rec.all())
	assert.Empty(t, f.State().Error)
}

func TestField_DebounceChecksOnlyLatestValue(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{}
	rec := &changeRecorder{}
	f := newField(t, lookup, rec, orgkey.WithDebounce(100*time.Millisecond))

	for _, v := range []string{"m", "my", "my-", "my-o", "my-or", "my-org"} {
		f.Input(v)
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)
	assert.Equal(t, []string{"my-org"}, lookup.lookups())
	assert.Equal(t, []change{{key: "my-org", ok: true}}, rec.all())
}

func TestField_MalformedEditCancelsPendingCheck(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{}
	rec := &changeRecorder{}
	f := newField(t, lookup, rec, orgkey.WithDebounce(50*time.Millisecond))

	f.Input("my-org")
	f.Input("my_org")

	time.Sleep(150 * time.Millisecond)
	assert.Empty(t, lookup.lookups())
	assert.Equal(t, []change{{key: "", ok: false}}, rec.all())
}

func TestField_CloseDiscardsPendingLookup(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	lookup := &fakeLookup{block: block, ignoreCtx: true}
	rec := &changeRecorder{}
	f := newField(t, lookup, rec)

	f.Input("my-org")
	require.Eventually(t, func() bool { return f.State().Validating }, waitFor, tick)

	before := f.State()
	f.Close()
	close(block)

	time.Sleep(3 * testDebounce)
	assert.Empty(t, rec.all())
	assert.Equal(t, before, f.State())

	select {
	case <-f.Done():
	default:
		t.Fatal("field must be done after Close")
	}
}

func TestField_CloseBeforeDebounceSkipsLookup(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{}
	rec := &changeRecorder{}
	f := newField(t, lookup, rec, orgkey.WithDebounce(50*time.Millisecond))

	f.Input("my-org")
	f.Close()
	f.Close()

	time.Sleep(120 * time.Millisecond)
	assert.Empty(t, lookup.lookups())
	assert.Empty(t, rec.all())

	f.Input("other")
	assert.Equal(t, "my-org", f.State().Value, "input after close is ignored")
}

func TestField_ContextCancellationUnmounts(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	rec := &changeRecorder{}
	f := orgkey.New(ctx, &fakeLookup{}, rec.onChange, orgkey.WithDebounce(testDebounce))

	cancel()

	select {
	case <-f.Done():
	case <-time.After(waitFor):
		t.Fatal("field was not closed after context cancellation")
	}
}

func TestField_SupersededLookupIsDiscarded(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	lookup := &fakeLookup{block: block, ignoreCtx: true}
	rec := &changeRecorder{}
	f := newField(t, lookup, rec)

	f.Input("first")
	require.Eventually(t, func() bool { return f.State().Validating }, waitFor, tick)

	f.Input("Second")
	assert.Equal(t, []change{{key: "", ok: false}}, rec.all())

	close(block)
	require.Eventually(t, func() bool { return !f.State().Validating }, waitFor, tick)

	time.Sleep(2 * testDebounce)
	assert.Equal(t, []change{{key: "", ok: false}}, rec.all(), "stale result must not reach the parent")
	assert.Equal(t, orgkey.DefaultTranslate(orgkey.MessageInvalidFormat), f.State().Error)
}

func TestField_InitialValue(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{}
	rec := &changeRecorder{}
	f := newField(t, lookup, rec, orgkey.WithInitialValue("my-org"))

	st := f.State()
	assert.Equal(t, "my-org", st.Value)
	assert.True(t, st.Touched)

	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)
	time.Sleep(3 * testDebounce)

	assert.Equal(t, []change{{key: "my-org", ok: true}}, rec.all())
	assert.Empty(t, f.State().Error)
}

func TestField_ReadOnly(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{}
	rec := &changeRecorder{}
	f := newField(t, lookup, rec,
		orgkey.WithInitialValue("Not_Checked"),
		orgkey.WithReadOnly(true),
	)

	f.Input("other")
	time.Sleep(3 * testDebounce)

	assert.True(t, f.ReadOnly())
	assert.Equal(t, "Not_Checked", f.State().Value)
	assert.Empty(t, f.State().Error)
	assert.Empty(t, lookup.lookups())
	assert.Empty(t, rec.all())
}

func TestField_FocusAndBlurOnlyAffectDisplay(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{}
	rec := &changeRecorder{}
	f := newField(t, lookup, rec)

	f.Focus()
	f.Input("Bad")
	st := f.State()
	assert.True(t, st.Editing)
	assert.NotEmpty(t, st.Error)
	assert.False(t, st.IsInvalid(), "errors stay hidden while editing")

	f.Blur()
	st = f.State()
	assert.False(t, st.Editing)
	assert.True(t, st.IsInvalid())
	assert.Len(t, rec.all(), 1)
}

func TestField_WithdrawsKeyWhileNewValueIsPending(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{}
	rec := &changeRecorder{}
	f := newField(t, lookup, rec)

	f.Input("first")
	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)

	f.Input("second")
	last, _ := rec.last()
	assert.Equal(t, change{key: "", ok: false}, last, "parent must not keep a stale key")

	require.Eventually(t, func() bool { return len(rec.all()) == 3 }, waitFor, tick)
	last, _ = rec.last()
	assert.Equal(t, change{key: "second", ok: true}, last)
}

func TestField_StateHookSeesTransitions(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var states []orgkey.State
	hook := func(st orgkey.State) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, st)
	}

	lookup := &fakeLookup{}
	rec := &changeRecorder{}
	f := newField(t, lookup, rec, orgkey.WithStateHook(hook))

	f.Input("my-org")
	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, waitFor, tick)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, states, 3)
	assert.False(t, states[0].Validating)
	assert.True(t, states[1].Validating)
	assert.False(t, states[2].Validating)
	assert.True(t, states[2].IsValid())
}

func TestField_PanicInLookupLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	lookup := orgkey.LookupFunc(func(context.Context, string) (bool, error) {
		panic("decoder exploded")
	})
	rec := &changeRecorder{}
	f := newField(t, lookup, rec)

	f.Input("my-org")
	require.Eventually(t, func() bool { return f.State().Validating }, waitFor, tick)
	time.Sleep(3 * testDebounce)

	assert.Empty(t, rec.all())
	f.Input("Bad")
	assert.Len(t, rec.all(), 1, "field stays interactive")
}

func TestField_CustomTranslator(t *testing.T) {
	t.Parallel()

	translate := func(key string) string { return "t:" + key }
	rec := &changeRecorder{}
	f := newField(t, &fakeLookup{}, rec, orgkey.WithTranslator(translate))

	f.Input("Bad")
	assert.Equal(t, "t:"+orgkey.MessageInvalidFormat, f.State().Error)
}

func TestState_DisplayFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		state   orgkey.State
		invalid bool
		valid   bool
	}{
		{"untouched", orgkey.State{}, false, false},
		{"touched without error", orgkey.State{Touched: true}, false, true},
		{"touched and validating", orgkey.State{Touched: true, Validating: true}, false, false},
		{"error while editing", orgkey.State{Touched: true, Editing: true, Error: "x"}, false, false},
		{"error after blur", orgkey.State{Touched: true, Error: "x"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.invalid, tt.state.IsInvalid())
			assert.Equal(t, tt.valid, tt.state.IsValid())
		})
	}
}

func TestField_NewWithCancelledContext(t *testing.T) {
	t.Parallel()

	for range 500 {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f := orgkey.New(ctx, &fakeLookup{}, nil, orgkey.WithInitialValue("my-org"))
		select {
		case <-f.Done():
		case <-time.After(waitFor):
			t.Fatal("field was not unmounted")
		}
		f.Close()
	}
}

func TestField_InputIfUntouched(t *testing.T) {
	t.Parallel()

	t.Run("fills an untouched field", func(t *testing.T) {
		t.Parallel()
		rec := &changeRecorder{}
		f := newField(t, &fakeLookup{}, rec)

		assert.True(t, f.InputIfUntouched("acme"))
		assert.Equal(t, "acme", f.State().Value)
		require.Eventually(t, func() bool {
			c, ok := rec.last()
			return ok && c == change{key: "acme", ok: true}
		}, waitFor, tick)
	})

	t.Run("keeps a typed value", func(t *testing.T) {
		t.Parallel()
		f := newField(t, &fakeLookup{}, &changeRecorder{})

		f.Input("typed")
		assert.False(t, f.InputIfUntouched("acme"))
		assert.Equal(t, "typed", f.State().Value)
	})

	t.Run("keeps a seeded value", func(t *testing.T) {
		t.Parallel()
		f := newField(t, &fakeLookup{}, &changeRecorder{}, orgkey.WithInitialValue("seeded"))
		assert.False(t, f.InputIfUntouched("acme"))
	})

	t.Run("read-only and closed fields refuse", func(t *testing.T) {
		t.Parallel()
		ro := newField(t, &fakeLookup{}, &changeRecorder{}, orgkey.WithReadOnly(true))
		assert.False(t, ro.InputIfUntouched("acme"))

		closed := newField(t, &fakeLookup{}, &changeRecorder{})
		closed.Close()
		assert.False(t, closed.InputIfUntouched("acme"))
	})
}
