package feed

import (
	"fmt"
	"log"
	"sort"
	"time"

	"TickVault/internal/decoder"
	"TickVault/internal/model"
	"TickVault/internal/resolver"
	"TickVault/internal/store"
)

// State of a Feed. A feed starts Idle, becomes Subscribed once the
// dataset is decoded, and ends Exhausted when the cursor passes the
// last point.
type State string

const (
	StateIdle       State = "IDLE"
	StateSubscribed State = "SUBSCRIBED"
	StateExhausted  State = "EXHAUSTED"
)

// Feed delivers decoded points in time order as an external clock
// advances. Delivery is exactly-once: each tick releases every buffered
// point newer than the last emission and no later than the tick time.
// Single-threaded pull model; the caller drives it one tick at a time.
type Feed struct {
	Store    store.Store
	Resolver *resolver.Resolver

	state  State
	ctx    model.SubscriptionContext
	points []model.TimeSeriesPoint
	cursor int
}

// New creates an idle Feed.
func New(s store.Store, r *resolver.Resolver) *Feed {
	return &Feed{Store: s, Resolver: r, state: StateIdle}
}

// State reports the feed's current state.
func (f *Feed) State() State { return f.state }

// Context returns the subscription context. Zero value while Idle.
func (f *Feed) Context() model.SubscriptionContext { return f.ctx }

// Subscribe resolves the identifier, loads the raw dataset, and decodes
// the full sequence once, sorted ascending by effective timestamp. A
// missing key is fatal: ingestion must precede any read.
func (f *Feed) Subscribe(identifier string, offset time.Duration, policy decoder.Policy) error {
	if f.state != StateIdle {
		return fmt.Errorf("subscribe %q: feed already %s", identifier, f.state)
	}

	ctx, err := f.Resolver.Resolve(identifier, model.RequestLive)
	if err != nil {
		return fmt.Errorf("subscribe %q: %w", identifier, err)
	}

	payload, err := f.Store.Get(ctx.Key)
	if err != nil {
		return fmt.Errorf("subscribe %q: %w", identifier, err)
	}

	points, err := decoder.DecodeAll(payload, ctx.Symbol, offset, policy)
	if err != nil {
		return fmt.Errorf("subscribe %q: %w", identifier, err)
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	f.ctx = ctx
	f.points = points
	f.cursor = 0
	f.state = StateSubscribed
	if len(points) == 0 {
		f.state = StateExhausted
	}
	log.Printf("[INFO] subscribed %s: %d points buffered (key=%s)", identifier, len(points), ctx.Key)
	return nil
}

// OnTick releases every buffered point with timestamp <= t that has not
// been emitted yet, in ascending order. An empty result means nothing
// matured this tick. Ticks after exhaustion are no-ops.
func (f *Feed) OnTick(t time.Time) ([]model.TimeSeriesPoint, error) {
	switch f.state {
	case StateIdle:
		return nil, fmt.Errorf("tick: feed not subscribed")
	case StateExhausted:
		return nil, nil
	}

	start := f.cursor
	for f.cursor < len(f.points) && !f.points[f.cursor].Timestamp.After(t) {
		f.cursor++
	}
	emitted := f.points[start:f.cursor]
	if f.cursor == len(f.points) {
		f.state = StateExhausted
		log.Printf("[INFO] feed %s exhausted after %d points", f.ctx.Symbol, len(f.points))
	}
	return emitted, nil
}

// Span returns the effective timestamps of the first and last buffered
// points. ok is false while Idle or when the dataset decoded empty.
func (f *Feed) Span() (first, last time.Time, ok bool) {
	if len(f.points) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return f.points[0].Timestamp, f.points[len(f.points)-1].Timestamp, true
}

// Unsubscribe discards all feed state and returns to Idle.
func (f *Feed) Unsubscribe() {
	f.ctx = model.SubscriptionContext{}
	f.points = nil
	f.cursor = 0
	f.state = StateIdle
}
