package question

import (
	"math/rand/v2"
	"sync"
)

// RandSource yields a uniform int in [0, n). *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// lockedSource lets one seeded generator serve concurrent requests.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// NewSeededSource returns a deterministic, goroutine-safe RandSource.
func NewSeededSource(seed uint64) RandSource {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Scope is the category range a quiz draws from.
type Scope struct {
	all        bool
	categoryID int64
}

// AllCategories draws from the whole question bank.
func AllCategories() Scope { return Scope{all: true} }

// InCategory restricts draws to a single category.
func InCategory(id int64) Scope { return Scope{categoryID: id} }

// All reports whether the scope spans every category.
func (s Scope) All() bool { return s.all }

// CategoryID returns the scoped category; meaningless when All is true.
func (s Scope) CategoryID() int64 { return s.categoryID }

// DrawState is the terminal state of a single quiz request.
type DrawState int

const (
	StateReady DrawState = iota
	StateDrawn
	StateExhausted
)

func (s DrawState) String() string {
	switch s {
	case StateDrawn:
		return "drawn"
	case StateExhausted:
		return "exhausted"
	default:
		return "ready"
	}
}

// Draw is the outcome of Selector.Next. Question is nil when the quiz is over.
type Draw struct {
	State    DrawState
	Question *Question
}

// Exhausted reports whether no eligible question remained.
func (d Draw) Exhausted() bool { return d.State == StateExhausted }

// Selector picks the next quiz question. It holds no per-session state.
type Selector struct {
	src RandSource
}

// NewSelector builds a Selector over src; a nil src uses the process-wide generator.
func NewSelector(src RandSource) *Selector {
	if src == nil {
		src = globalSource{}
	}
	return &Selector{src: src}
}

// Eligible returns the questions in scope whose ids are not excluded, in input order.
func Eligible(questions []Question, scope Scope, excluded []int64) []Question {
	skip := make(map[int64]struct{}, len(excluded))
	for _, id := range excluded {
		skip[id] = struct{}{}
	}
	out := make([]Question, 0, len(questions))
	for _, q := range questions {
		if !scope.all && q.CategoryID != scope.categoryID {
			continue
		}
		if _, seen := skip[q.ID]; seen {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Next draws one eligible question uniformly at random. An unknown scope category
// fails before any draw; an empty eligible set yields an Exhausted draw, not an error.
func (s *Selector) Next(questions []Question, categories Categories, scope Scope, excluded []int64) (Draw, error) {
	if !scope.all && !categories.Has(scope.categoryID) {
		return Draw{State: StateReady}, Unprocessable("next question", "unknown quiz category %d", scope.categoryID)
	}

	eligible := Eligible(questions, scope, excluded)
	if len(eligible) == 0 {
		return Draw{State: StateExhausted}, nil
	}

	picked := eligible[s.src.IntN(len(eligible))]
	return Draw{State: StateDrawn, Question: &picked}, nil
}
