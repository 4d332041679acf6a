package content

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// fetchTimeout bounds a shared fetch once it is detached from its caller.
const fetchTimeout = 30 * time.Second

// Library keeps the decoded document resident so switching language never
// needs a fetch. The first Load after construction or Invalidate fetches from
// the source; concurrent callers share that fetch.
type Library struct {
	src    Source
	logger *zap.Logger
	group  singleflight.Group

	mu  sync.RWMutex
	doc Document
	gen uint64
}

func NewLibrary(src Source, logger *zap.Logger) *Library {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Library{src: src, logger: logger}
}

// Document returns the cached document, fetching it when nothing is cached.
// A failed fetch caches nothing, so the next call tries again.
func (l *Library) Document(ctx context.Context) (Document, error) {
	l.mu.RLock()
	doc, gen := l.doc, l.gen
	l.mu.RUnlock()
	if doc != nil {
		return doc, nil
	}

	v, err, _ := l.group.Do("document", func() (any, error) {
		// Other callers share this fetch, so it must outlive the caller that
		// started it.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		doc, err := Fetch(fetchCtx, l.src)
		if err != nil {
			return nil, err
		}
		if err := doc.Validate(); err != nil {
			l.logger.Warn("content document failed validation",
				zap.String("source", l.src.Name()), zap.Error(err))
		}
		l.mu.Lock()
		// An Invalidate during the fetch means this copy may already be stale.
		if l.gen == gen {
			l.doc = doc
		}
		l.mu.Unlock()
		l.logger.Info("content document loaded", zap.String("source", l.src.Name()))
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Document), nil
}

// Load returns the profile for lang.
func (l *Library) Load(ctx context.Context, lang Language) (*Profile, error) {
	doc, err := l.Document(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Profile(lang)
}

// Invalidate drops the cached document.
func (l *Library) Invalidate() {
	l.mu.Lock()
	l.doc = nil
	l.gen++
	l.mu.Unlock()
	l.group.Forget("document")
}
