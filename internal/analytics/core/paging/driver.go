// Package paging drives the sequential page fetches of a guild's streams.
package paging

import (
	"errors"
	"fmt"

	"guild-analytics-service/internal/analytics/core/domain"
)

var (
	ErrStreamDone         = errors.New("stream is done")
	ErrStreamBusy         = errors.New("stream already has a request in flight")
	ErrUnexpectedPage     = errors.New("reply does not match the outstanding page")
	ErrNothingOutstanding = errors.New("no request outstanding")
	ErrNotStalled         = errors.New("stream is not stalled")
)

type State int

const (
	Idle State = iota
	Awaiting
	Stalled
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Awaiting:
		return "awaiting"
	case Stalled:
		return "stalled"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Request asks the page source for one page of one stream.
type Request struct {
	GuildID string
	Kind    domain.StreamKind
	Page    uint64
	Size    int
}

// Pointer is the position of one stream.
type Pointer struct {
	Page  uint64
	State State
}

// Driver tracks the page pointer of every stream of one guild. At most one
// request per stream is outstanding, so pages are ingested in order.
type Driver struct {
	guildID  string
	pageSize int
	streams  map[domain.StreamKind]*Pointer
}

func NewDriver(guildID string, pageSize int) *Driver {
	if pageSize <= 0 {
		pageSize = domain.PageValue
	}
	d := &Driver{
		guildID:  guildID,
		pageSize: pageSize,
		streams:  make(map[domain.StreamKind]*Pointer, len(domain.StreamKinds)),
	}
	for _, k := range domain.StreamKinds {
		d.streams[k] = &Pointer{}
	}
	return d
}

func (d *Driver) PageSize() int { return d.pageSize }

// Pointer returns a copy of the stream's pointer.
func (d *Driver) Pointer(kind domain.StreamKind) Pointer {
	if p, ok := d.streams[kind]; ok {
		return *p
	}
	return Pointer{}
}

// Start issues the first request of an idle stream.
func (d *Driver) Start(kind domain.StreamKind) (Request, error) {
	p := d.stream(kind)
	switch p.State {
	case Done:
		return Request{}, ErrStreamDone
	case Awaiting, Stalled:
		return Request{}, ErrStreamBusy
	}
	p.State = Awaiting
	return d.request(kind, p.Page), nil
}

// Receive accounts for a reply of n records to page. A full page yields the
// request for the next page; a short page finishes the stream.
func (d *Driver) Receive(kind domain.StreamKind, page uint64, n int) (next Request, more bool, err error) {
	p := d.stream(kind)
	if err := d.expect(p, page); err != nil {
		return Request{}, false, err
	}
	if n < d.pageSize {
		p.State = Done
		return Request{}, false, nil
	}
	p.Page++
	return d.request(kind, p.Page), true, nil
}

// Fail marks the outstanding page as undecodable. The stream stalls until
// Retry is called.
func (d *Driver) Fail(kind domain.StreamKind, page uint64) error {
	p := d.stream(kind)
	if err := d.expect(p, page); err != nil {
		return err
	}
	p.State = Stalled
	return nil
}

// Retry re-issues the request for a stalled stream's page.
func (d *Driver) Retry(kind domain.StreamKind) (Request, error) {
	p := d.stream(kind)
	if p.State != Stalled {
		return Request{}, ErrNotStalled
	}
	p.State = Awaiting
	return d.request(kind, p.Page), nil
}

// Done reports whether every stream finished.
func (d *Driver) Done() bool {
	for _, p := range d.streams {
		if p.State != Done {
			return false
		}
	}
	return true
}

func (d *Driver) expect(p *Pointer, page uint64) error {
	switch p.State {
	case Done:
		return ErrStreamDone
	case Awaiting:
	default:
		return ErrNothingOutstanding
	}
	if page != p.Page {
		return fmt.Errorf("%w: got %d, want %d", ErrUnexpectedPage, page, p.Page)
	}
	return nil
}

func (d *Driver) stream(kind domain.StreamKind) *Pointer {
	p, ok := d.streams[kind]
	if !ok {
		p = &Pointer{}
		d.streams[kind] = p
	}
	return p
}

func (d *Driver) request(kind domain.StreamKind, page uint64) Request {
	return Request{GuildID: d.guildID, Kind: kind, Page: page, Size: d.pageSize}
}
