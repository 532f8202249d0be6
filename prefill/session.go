package prefill

import (
	"context"
	"sync"

	"github.com/fwojciec/larder"
)

// Update reports the outcome of one source URL lookup.
type Update struct {
	URL string

	// Filled names the draft fields the lookup filled.
	Filled []string

	// Stale is set when the source URL changed before the lookup finished;
	// its result was discarded.
	Stale bool

	Err error
}

// Session holds the draft of one add-recipe form.
//
// Every change of the source URL to a new value starts one lookup and
// cancels the previous one. A lookup result is applied only while its URL
// is still current, and only to fields the user left empty.
type Session struct {
	prefiller *Prefiller

	mu     sync.Mutex
	draft  larder.Draft
	key    string
	gen    uint64
	cancel context.CancelFunc
}

// NewSession creates a Session backed by prefiller.
func NewSession(prefiller *Prefiller) *Session {
	return &Session{prefiller: prefiller}
}

// Draft returns a copy of the current draft.
func (s *Session) Draft() larder.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft
	d.Ingredients = append([]string(nil), d.Ingredients...)
	d.Steps = append([]string(nil), d.Steps...)
	d.MealTypes = append([]string(nil), d.MealTypes...)
	return d
}

// Edit applies a user edit to the draft.
func (s *Session) Edit(fn func(d *larder.Draft)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.draft)
}

// SetSourceURL records a new source URL value and starts its lookup.
//
// The returned channel receives one Update when the lookup finishes and is
// then closed. It is closed without an Update when no lookup was started:
// the value is not a remote URL, or it normalizes to the current one and
// the lookup for that value has not failed.
func (s *Session) SetSourceURL(ctx context.Context, sourceURL string) <-chan Update {
	ch := make(chan Update, 1)

	s.mu.Lock()
	s.draft.SourceURL = sourceURL
	key := larder.NormalizeForLookup(sourceURL)
	if key == s.key {
		s.mu.Unlock()
		close(ch)
		return ch
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.key = key
	gen := s.gen
	if !larder.IsRemoteURL(sourceURL) {
		s.mu.Unlock()
		close(ch)
		return ch
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		defer close(ch)
		defer cancel()

		r, err := s.prefiller.Prefill(ctx, sourceURL)

		u := Update{URL: sourceURL}
		s.mu.Lock()
		switch {
		case s.gen != gen:
			u.Stale = true
		case err != nil:
			u.Err = err
			// Setting the same value again retries.
			s.key = ""
		default:
			u.Filled = s.draft.Apply(r)
		}
		s.mu.Unlock()
		ch <- u
	}()
	return ch
}

// Close cancels any pending lookup.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}
