package search

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/VitorNoe/MovieSearchApp/internal/logx"
	"github.com/google/uuid"
)

const (
	MessageEmptyQuery  = "Please enter a movie title"
	MessageNoMovies    = "No movies found"
	MessageFetchFailed = "Failed to fetch movies"
)

// Controller owns a search State and exposes the commands a presentation
// layer binds to. Only the response of the latest triggered search is ever
// applied; superseded searches are cancelled and their answers discarded.
type Controller struct {
	searcher Searcher

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	state        State
	generation   uint64
	cancelSearch context.CancelFunc
	closed       bool
	subscribers  map[*subscription]struct{}

	wg sync.WaitGroup
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.clone()
}

// OnQueryChange sets the query text. It does not start a search.
func (c *Controller) OnQueryChange(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.transition(func(s *State) {
		s.Query = text
	})
}

// ClearError removes the current error message.
func (c *Controller) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.transition(func(s *State) {
		s.ErrorMessage = ""
	})
}

// TriggerSearch starts an asynchronous search for the current query and
// returns immediately. A blank query only sets a validation message.
func (c *Controller) TriggerSearch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	query := c.state.Query

	if strings.TrimSpace(query) == "" {
		c.transition(func(s *State) {
			s.ErrorMessage = MessageEmptyQuery
		})
		return
	}

	if c.cancelSearch != nil {
		c.cancelSearch()
	}

	c.generation++
	generation := c.generation

	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelSearch = cancel

	c.transition(func(s *State) {
		s.Loading = true
		s.ErrorMessage = ""
	})

	c.wg.Add(1)
	go c.run(ctx, cancel, generation, query)
}

func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, generation uint64, query string) {
	defer c.wg.Done()
	defer cancel()

	ctx = logx.WithAttrs(ctx,
		slog.String("request_id", uuid.NewString()),
		slog.Uint64("generation", generation),
	)

	slog.DebugContext(ctx, "search started", slog.String("query", query))

	result := c.searcher.SearchMovies(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || generation != c.generation {
		slog.DebugContext(ctx, "discarding stale search response")
		return
	}

	c.cancelSearch = nil

	c.transition(func(s *State) {
		s.Loading = false
		applyResult(s, result)
	})

	slog.DebugContext(ctx, "search completed", slog.Int("results", len(result.Items)), slog.Bool("succeeded", result.Succeeded))
}

func applyResult(s *State, result Result) {
	switch {
	case result.Succeeded && len(result.Items) > 0:
		s.Results = slices.Clone(result.Items)
		s.ErrorMessage = ""
	case result.Succeeded:
		s.Results = []Movie{}
		s.ErrorMessage = MessageNoMovies
	default:
		s.Results = []Movie{}
		s.ErrorMessage = result.Error
		if s.ErrorMessage == "" {
			s.ErrorMessage = MessageFetchFailed
		}
	}
}

// transition replaces the snapshot and notifies subscribers. Callers must
// hold c.mu.
func (c *Controller) transition(fn func(s *State)) {
	if c.closed {
		return
	}

	next := c.state.clone()
	fn(&next)
	next.Version = c.state.Version + 1

	c.state = next

	for sub := range c.subscribers {
		sub.publish(next.clone())
	}
}

// Subscribe returns a channel that always holds the most recent snapshot not
// yet received, starting with the current one. Intermediate snapshots may be
// skipped by slow readers. The channel is closed by the returned function or
// when the controller is closed.
func (c *Controller) Subscribe() (<-chan State, func()) {
	sub := &subscription{
		ch: make(chan State, 1),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		close(sub.ch)
		return sub.ch, func() {}
	}

	sub.publish(c.state.clone())
	c.subscribers[sub] = struct{}{}

	unsubscribe := func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if _, exists := c.subscribers[sub]; !exists {
			return
		}

		delete(c.subscribers, sub)
		close(sub.ch)
	}

	return sub.ch, unsubscribe
}

// Wait blocks until every search started so far has completed or been
// discarded.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels any in flight search, closes subscriptions and waits for
// pending goroutines. Responses arriving afterwards are dropped.
func (c *Controller) Close() {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return
	}

	c.closed = true
	c.cancel()

	for sub := range c.subscribers {
		close(sub.ch)
	}
	c.subscribers = nil

	c.mu.Unlock()

	c.wg.Wait()
}

// NewController creates a controller whose searches are bound to ctx and to
// the controller lifetime.
func NewController(ctx context.Context, searcher Searcher) *Controller {
	ctx, cancel := context.WithCancel(ctx)

	return &Controller{
		searcher: searcher,
		ctx:      ctx,
		cancel:   cancel,
		state: State{
			Results: []Movie{},
		},
		subscribers: make(map[*subscription]struct{}),
	}
}
