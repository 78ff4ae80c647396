package services

import (
	"context"
	"sync"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

type EventsSource interface {
	Events(ctx context.Context, category string, mode ViewMode) (types.EventStats, error)
}

type CategoryState struct {
	Loading bool              `json:"loading"`
	Data    *types.EventStats `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
}

type EventsSnapshot struct {
	Selected   string                   `json:"selected"`
	Categories map[string]CategoryState `json:"categories"`
}

// EventsScreen keeps the state of the events screen. Exactly one category is
// selected at a time; selecting one clears every other category.
// Completions are not fenced: whichever fetch finishes last writes its state.
type EventsScreen struct {
	source EventsSource

	mu       sync.Mutex
	selected string
	states   map[string]CategoryState
}

func NewEventsScreen(source EventsSource) *EventsScreen {
	screen := &EventsScreen{source: source}
	screen.reset()
	return screen
}

func (s *EventsScreen) Select(ctx context.Context, category string, mode ViewMode) (CategoryState, error) {
	if !isEventCategory(category) {
		return CategoryState{}, ErrUnknownCategory
	}

	s.mu.Lock()
	s.reset()
	s.selected = category
	s.states[category] = CategoryState{Loading: true}
	s.mu.Unlock()

	stats, err := s.source.Events(ctx, category, mode)

	state := CategoryState{}
	if err != nil {
		state.Error = err.Error()
	} else {
		state.Data = &stats
	}

	s.mu.Lock()
	s.states[category] = state
	s.mu.Unlock()

	return state, err
}

func (s *EventsScreen) Snapshot() EventsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := make(map[string]CategoryState, len(s.states))
	for category, state := range s.states {
		categories[category] = state
	}

	return EventsSnapshot{Selected: s.selected, Categories: categories}
}

// reset must be called with mu held.
func (s *EventsScreen) reset() {
	s.states = make(map[string]CategoryState, len(types.EventCategories))
	for _, category := range types.EventCategories {
		s.states[category] = CategoryState{}
	}
}
