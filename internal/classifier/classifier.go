package classifier

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
)

// Classifier labels a piece of text as positive or negative.
type Classifier interface {
	Classify(ctx context.Context, text string) (domain.Classification, error)
}

// Func adapts a plain function to the Classifier interface.
type Func func(ctx context.Context, text string) (domain.Classification, error)

func (f Func) Classify(ctx context.Context, text string) (domain.Classification, error) {
	return f(ctx, text)
}

// Lazy builds the underlying classifier on first use. Construction happens at
// most once per process, and a failed construction is reported on every call.
type Lazy struct {
	factory func() (Classifier, error)

	once sync.Once
	impl Classifier
	err  error
}

// NewLazy wraps factory so it runs on the first Classify call.
func NewLazy(factory func() (Classifier, error)) *Lazy {
	return &Lazy{factory: factory}
}

func (l *Lazy) get() (Classifier, error) {
	l.once.Do(func() {
		l.impl, l.err = l.factory()
	})
	return l.impl, l.err
}

// Classify initialises the classifier if needed and delegates to it.
func (l *Lazy) Classify(ctx context.Context, text string) (domain.Classification, error) {
	impl, err := l.get()
	if err != nil {
		return domain.Classification{}, fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}
	return impl.Classify(ctx, text)
}

// Close releases the underlying classifier if it was built and holds resources.
func (l *Lazy) Close() error {
	l.once.Do(func() {
		l.err = fmt.Errorf("classifier closed")
	})
	if c, ok := l.impl.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
