package githubapi

import "context"

// Stream is a lazy, forward-only sequence over a paginated API listing.
// Next fetches the following page when the buffered one is used up, so
// nothing is requested before the first call to Next. Exhaustion is not an
// error: Next returns false and Err returns nil. Streams cannot be restarted.
type Stream[T any] interface {
	Next(ctx context.Context) bool
	Item() T
	Err() error
}

// fetchFunc loads one page and reports the page number after it, or 0 when
// there is none.
type fetchFunc[T any] func(ctx context.Context, page int) (items []T, nextPage int, err error)

type pager[T any] struct {
	fetch    fetchFunc[T]
	buf      []T
	cur      T
	nextPage int
	started  bool
	done     bool
	err      error
}

func newPager[T any](fetch fetchFunc[T]) *pager[T] {
	return &pager[T]{fetch: fetch, nextPage: 1}
}

func (p *pager[T]) Next(ctx context.Context) bool {
	for len(p.buf) == 0 {
		if p.done || p.err != nil {
			return false
		}
		if p.started && p.nextPage == 0 {
			p.done = true
			return false
		}

		items, next, err := p.fetch(ctx, p.nextPage)
		p.started = true
		if err != nil {
			p.err = err
			return false
		}
		p.buf = items
		p.nextPage = next
	}

	p.cur = p.buf[0]
	p.buf = p.buf[1:]
	return true
}

func (p *pager[T]) Item() T {
	return p.cur
}

func (p *pager[T]) Err() error {
	return p.err
}
