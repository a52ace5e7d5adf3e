package cart

import "context"

// Actions are the cart mutations a page can trigger.
type Actions interface {
	LinesAdd(ctx context.Context, lines []LineInput) error
	CartCreate(ctx context.Context, in CreateInput) error
}

// State is the cart visible to a request: the current cart id, if any, and
// the actions that mutate it.
type State struct {
	ID      string
	Actions Actions
}

func (s State) HasCart() bool { return s.ID != "" }

// WithActions keeps the cart id and swaps the mutations.
func (s State) WithActions(a Actions) State {
	s.Actions = a
	return s
}

type stateKey struct{}

// WithState attaches st to ctx. The most recently attached state wins.
func WithState(ctx context.Context, st State) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}

func StateFrom(ctx context.Context) (State, bool) {
	st, ok := ctx.Value(stateKey{}).(State)
	return st, ok
}
