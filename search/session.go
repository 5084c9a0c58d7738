package search

import (
	"strings"

	"tech-blog/models"
)

// State distinguishes "not searched yet" from "searched, nothing found".
type State int

const (
	StateIdle State = iota
	StateNoResults
	StateResults
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateNoResults:
		return "no_results"
	case StateResults:
		return "results"
	default:
		return "unknown"
	}
}

// Session holds a query, its filters and the last results.
// 한 사용자(요청) 단위로 사용하며 동시 사용은 지원하지 않는다.
type Session struct {
	engine   *Engine
	query    string
	filters  Filters
	results  []Result
	state    State
	searched string
}

func NewSession(engine *Engine) *Session {
	if engine == nil {
		engine = NewEngine()
	}
	return &Session{engine: engine, results: []Result{}}
}

// SetQuery stores the query; results are recomputed only by Search.
func (s *Session) SetQuery(q string) { s.query = q }

func (s *Session) Query() string { return s.query }

func (s *Session) SetFilters(f Filters) { s.filters = f }

func (s *Session) Filters() Filters { return s.filters }

// Search runs the current query and filters over posts.
// A blank query clears the results and returns the session to idle.
func (s *Session) Search(posts []models.Post) []Result {
	if strings.TrimSpace(s.query) == "" {
		s.results = []Result{}
		s.state = StateIdle
		s.searched = ""
		return s.results
	}

	s.results = s.engine.Search(s.query, posts, s.filters)
	s.searched = s.query
	if len(s.results) == 0 {
		s.state = StateNoResults
	} else {
		s.state = StateResults
	}
	return s.results
}

// ClearSearch resets query, filters and results.
func (s *Session) ClearSearch() {
	s.query = ""
	s.filters = Filters{}
	s.results = []Result{}
	s.state = StateIdle
	s.searched = ""
}

func (s *Session) Results() []Result { return s.results }

func (s *Session) State() State { return s.state }

// SearchedQuery is the query the current results were computed for,
// used for a "no results for X" message.
func (s *Session) SearchedQuery() string { return s.searched }
