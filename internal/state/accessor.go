package state

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/vathanak/portfolio/internal/content"
)

// PreferenceKey is the key the chosen language is persisted under.
const PreferenceKey = "language"

// Preferences is a small persistent key/value store scoped to one visitor.
type Preferences interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Loader resolves the profile for a language.
type Loader interface {
	Load(ctx context.Context, lang content.Language) (*content.Profile, error)
}

// Accessor supplies the active profile and its load status.
type Accessor struct {
	loader Loader
	prefs  Preferences
	logger *zap.Logger

	mu    sync.Mutex
	state State
}

// NewAccessor starts in the Loading state for the preferred language. Call
// Start to load it.
func NewAccessor(loader Loader, prefs Preferences, logger *zap.Logger) *Accessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Accessor{loader: loader, prefs: prefs, logger: logger}
	a.state = State{Language: a.PreferredLanguage(), Status: Loading}
	return a
}

// PreferredLanguage returns the persisted language, or the default when
// nothing valid is stored.
func (a *Accessor) PreferredLanguage() content.Language {
	if a.prefs != nil {
		if v, ok := a.prefs.Get(PreferenceKey); ok {
			if lang := content.Language(v); lang.Valid() {
				return lang
			}
		}
	}
	return content.DefaultLanguage
}

// State returns the current snapshot.
func (a *Accessor) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Language returns the selected language.
func (a *Accessor) Language() content.Language {
	return a.State().Language
}

func (a *Accessor) dispatch(action Action) State {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = Reduce(a.state, action)
	return a.state
}

// Start loads the currently selected language.
func (a *Accessor) Start(ctx context.Context) State {
	_, _ = a.Load(ctx, a.Language())
	return a.State()
}

// SetLanguage validates code, persists it and loads the matching profile.
// The preference is written before the load, so it sticks even when the
// load fails.
func (a *Accessor) SetLanguage(ctx context.Context, code string) error {
	lang, err := content.ParseLanguage(code)
	if err != nil {
		return err
	}
	if a.prefs != nil {
		a.prefs.Set(PreferenceKey, string(lang))
	}
	a.dispatch(SetLanguage{Language: lang})
	_, err = a.Load(ctx, lang)
	return err
}

// Toggle switches to the other supported language.
func (a *Accessor) Toggle(ctx context.Context) error {
	return a.SetLanguage(ctx, string(a.Language().Toggle()))
}

// Load fetches the profile for lang and records the result. A result for a
// language that is no longer selected is discarded by Reduce. Failures are
// logged and not retried.
func (a *Accessor) Load(ctx context.Context, lang content.Language) (*content.Profile, error) {
	profile, err := a.loader.Load(ctx, lang)
	if err != nil {
		a.logger.Error("failed to load content",
			zap.String("language", string(lang)), zap.Error(err))
		a.dispatch(DataFailed{Language: lang, Err: err})
		return nil, err
	}
	a.dispatch(DataLoaded{Language: lang, Profile: profile})
	return profile, nil
}
