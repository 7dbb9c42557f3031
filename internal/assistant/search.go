package assistant

import (
	"context"
	"strings"
	"sync"
)

// SearchSession is one listener's search box. Overlapping submissions are
// allowed; each takes a sequence number and only the newest one issued may
// replace the displayed answer.
type SearchSession struct {
	adapter *QueryAdapter

	mu      sync.Mutex
	issued  uint64
	applied uint64
	latest  Answer
	has     bool
}

func NewSearchSession(adapter *QueryAdapter) *SearchSession {
	return &SearchSession{adapter: adapter}
}

// Submit asks query and reports whether the answer became the displayed
// one. Blank queries return immediately with state untouched. A submission
// overtaken by a newer one returns its answer with applied=false.
func (s *SearchSession) Submit(ctx context.Context, query string) (answer Answer, applied bool) {
	if strings.TrimSpace(query) == "" {
		return Answer{Query: query, Skipped: true}, false
	}

	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	answer = s.adapter.Ask(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.issued {
		return answer, false
	}
	s.latest = answer
	s.applied = seq
	s.has = true
	return answer, true
}

// Latest returns the displayed answer (ok=false before the first one) and
// whether the newest submission is still outstanding.
func (s *SearchSession) Latest() (answer Answer, ok bool, pending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.has, s.issued != s.applied
}
