package search

import "slices"

// State is an immutable snapshot of a Controller. Every transition produces a
// new snapshot with a greater Version.
type State struct {
	Version      uint64  `json:"version" yaml:"version"`
	Query        string  `json:"query" yaml:"query"`
	Results      []Movie `json:"results" yaml:"results"`
	Loading      bool    `json:"loading" yaml:"loading"`
	ErrorMessage string  `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
}

func (s State) HasError() bool {
	return s.ErrorMessage != ""
}

func (s State) clone() State {
	s.Results = slices.Clone(s.Results)
	if s.Results == nil {
		s.Results = []Movie{}
	}
	return s
}

type subscription struct {
	ch chan State
}

// publish keeps only the latest snapshot in the buffer. It must be called
// with the controller lock held so that a single writer feeds the channel.
func (s *subscription) publish(state State) {
	select {
	case <-s.ch:
	default:
	}

	s.ch <- state
}
