package scorer

import (
	"fmt"
	"sort"
	"sync"

	"boardeval/internal/ap"
	"boardeval/internal/llm"
)

// Factory constructs a Scorer. Construction may fail, e.g. when a rubric
// scorer's configuration is incomplete.
type Factory func() (Scorer, error)

// Registry maps question types to scoring strategies. Instances are
// constructed lazily on first lookup and cached; the construction path is
// mutex-guarded so concurrent evaluations never build duplicate scorers.
type Registry struct {
	mu        sync.Mutex
	factories map[ap.QuestionType]Factory
	instances map[ap.QuestionType]Scorer
}

// NewRegistry creates a Registry with the standard strategy per question
// type: exact-match for multiple choice, numeric-tolerance for grid-ins,
// and rubric grading through the given provider for the open-ended types.
func NewRegistry(provider llm.Provider, cfg Config) *Registry {
	r := &Registry{
		factories: make(map[ap.QuestionType]Factory),
		instances: make(map[ap.QuestionType]Scorer),
	}

	r.factories[ap.MultipleChoice] = func() (Scorer, error) {
		return &ExactMatchScorer{}, nil
	}
	r.factories[ap.StudentProduced] = func() (Scorer, error) {
		return &GridInScorer{}, nil
	}

	rubric := func(rc RubricConfig) Factory {
		return func() (Scorer, error) {
			return NewRubricScorer(provider, rc)
		}
	}
	r.factories[ap.ShortAnswer] = rubric(cfg.ShortAnswer)
	r.factories[ap.LongAnswer] = rubric(cfg.LongAnswer)
	r.factories[ap.FreeResponse] = rubric(cfg.FreeResponse)

	return r
}

// Get returns the cached scorer for the question type, constructing it on
// first request. Returns *ErrNoScorer when no factory is registered,
// never a silent default.
func (r *Registry) Get(qt ap.QuestionType) (Scorer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.instances[qt]; ok {
		return s, nil
	}

	factory, ok := r.factories[qt]
	if !ok {
		return nil, &ErrNoScorer{Type: qt}
	}

	s, err := factory()
	if err != nil {
		return nil, fmt.Errorf("construct scorer for %q: %w", qt, err)
	}

	r.instances[qt] = s
	return s, nil
}

// Register adds or overrides the strategy for a question type and drops
// any cached instance, so the next Get re-constructs it. Tests and
// alternate grading backends substitute strategies this way without
// touching the evaluator.
func (r *Registry) Register(qt ap.QuestionType, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[qt] = factory
	delete(r.instances, qt)
}

// SupportedTypes returns the registered question types in stable order.
func (r *Registry) SupportedTypes() []ap.QuestionType {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]ap.QuestionType, 0, len(r.factories))
	for qt := range r.factories {
		types = append(types, qt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
