package client

import (
	"context"
	"errors"
	"sync"

	"github.com/courtline/courtline/internal/reservation"
)

// PageSizes are the listing page sizes a user may choose from.
var PageSizes = []int{5, 10, 20}

// DefaultPageSize is the listing's initial page size.
const DefaultPageSize = 10

var (
	// ErrInvalidPageSize rejects page sizes outside PageSizes.
	ErrInvalidPageSize = errors.New("invalid page size")
	// ErrUnknownRecord is returned when a uid is not on the held page.
	ErrUnknownRecord = errors.New("record not on current page")
	// ErrNotCancellable rejects cancellation of a record that has left
	// Pending. The request is never sent to the server.
	ErrNotCancellable = errors.New("only pending reservations can be cancelled")
)

// Lister pages through booking records. Every page-parameter change
// issues an explicit fetch stamped with an increasing sequence token: a
// slow response for stale parameters can never overwrite state that a
// newer request has since produced.
type Lister struct {
	client *Client

	mu        sync.Mutex
	pageIndex int
	pageSize  int
	count     int
	records   []reservation.Record
	seq       uint64
}

func NewLister(c *Client) *Lister {
	return &Lister{client: c, pageSize: DefaultPageSize}
}

// Refresh fetches the page for the current parameters. If the parameters
// change while the fetch is outstanding, the response is discarded.
func (l *Lister) Refresh(ctx context.Context) error {
	l.mu.Lock()
	l.seq++
	token := l.seq
	page, size := l.pageIndex, l.pageSize
	l.mu.Unlock()

	result, err := l.client.FetchPage(ctx, page, size)

	l.mu.Lock()
	defer l.mu.Unlock()
	if token != l.seq {
		// Superseded by a newer request; drop result and error alike.
		return nil
	}
	if err != nil {
		return err
	}
	l.count = result.Count
	l.records = result.Result
	return nil
}

// SetPageSize switches the page size and resets to page 0, so the next
// fetch can never request an out-of-range page. It refreshes immediately.
func (l *Lister) SetPageSize(ctx context.Context, size int) error {
	valid := false
	for _, s := range PageSizes {
		if s == size {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidPageSize
	}

	l.mu.Lock()
	l.pageSize = size
	l.pageIndex = 0
	l.mu.Unlock()
	return l.Refresh(ctx)
}

// Next advances one page, clamped at the last page, and refreshes.
func (l *Lister) Next(ctx context.Context) error {
	l.mu.Lock()
	if l.pageIndex >= l.lastPageLocked() {
		l.mu.Unlock()
		return nil
	}
	l.pageIndex++
	l.mu.Unlock()
	return l.Refresh(ctx)
}

// Prev steps back one page, clamped at page 0, and refreshes.
func (l *Lister) Prev(ctx context.Context) error {
	l.mu.Lock()
	if l.pageIndex == 0 {
		l.mu.Unlock()
		return nil
	}
	l.pageIndex--
	l.mu.Unlock()
	return l.Refresh(ctx)
}

// HasPrev reports whether a previous page exists.
func (l *Lister) HasPrev() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pageIndex > 0
}

// HasNext reports whether a further page exists. An empty listing has
// none.
func (l *Lister) HasNext() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pageIndex < l.lastPageLocked()
}

// lastPageLocked is ceil(count/size)-1, or 0 for an empty listing.
// Callers must hold mu.
func (l *Lister) lastPageLocked() int {
	if l.count == 0 {
		return 0
	}
	return (l.count+l.pageSize-1)/l.pageSize - 1
}

// CancelRecord cancels the record with the given uid. Records that are no
// longer pending are rejected locally without a network call. On success
// the record is removed from the held page optimistically: Count is left
// alone and the true totals re-sync on the next refresh.
func (l *Lister) CancelRecord(ctx context.Context, uid int64) error {
	l.mu.Lock()
	var found *reservation.Record
	for i := range l.records {
		if l.records[i].Uid == uid {
			found = &l.records[i]
			break
		}
	}
	if found == nil {
		l.mu.Unlock()
		return ErrUnknownRecord
	}
	if !found.Cancellable() {
		l.mu.Unlock()
		return ErrNotCancellable
	}
	l.mu.Unlock()

	if err := l.client.Cancel(ctx, uid); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.records[:0]
	for _, rec := range l.records {
		if rec.Uid != uid {
			kept = append(kept, rec)
		}
	}
	l.records = kept
	return nil
}

// PageIndex returns the current 0-based page.
func (l *Lister) PageIndex() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pageIndex
}

// PageSize returns the current page size.
func (l *Lister) PageSize() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pageSize
}

// Count returns the server-reported total from the last applied fetch.
func (l *Lister) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Records returns a copy of the held page.
func (l *Lister) Records() []reservation.Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]reservation.Record, len(l.records))
	copy(out, l.records)
	return out
}
