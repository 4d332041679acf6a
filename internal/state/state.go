// Package state holds the active language and the profile derived from it.
// Transitions go through Reduce; the Accessor drives them from preference
// changes and loader results.
package state

import (
	"github.com/vathanak/portfolio/internal/content"
)

// Status is the lifecycle of the active profile.
type Status int

const (
	Loading Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "error"
	default:
		return "loading"
	}
}

// State is an immutable snapshot. Profile is nil unless Status is Ready,
// except while Loading, when it may still hold the previous language.
type State struct {
	Language content.Language
	Status   Status
	Profile  *content.Profile
	Err      error
}

// Action is a transition accepted by Reduce.
type Action interface {
	action()
}

// SetLanguage selects a new language and starts loading it.
type SetLanguage struct {
	Language content.Language
}

// DataLoaded delivers the profile fetched for Language.
type DataLoaded struct {
	Language content.Language
	Profile  *content.Profile
}

// DataFailed reports a fetch failure for Language.
type DataFailed struct {
	Language content.Language
	Err      error
}

func (SetLanguage) action() {}
func (DataLoaded) action()  {}
func (DataFailed) action()  {}

// Reduce applies a to s. Results tagged with a language other than the one
// currently selected are stale and leave s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetLanguage:
		return State{Language: a.Language, Status: Loading, Profile: s.Profile}
	case DataLoaded:
		if a.Language != s.Language {
			return s
		}
		return State{Language: s.Language, Status: Ready, Profile: a.Profile}
	case DataFailed:
		if a.Language != s.Language {
			return s
		}
		return State{Language: s.Language, Status: Failed, Err: a.Err}
	}
	return s
}
