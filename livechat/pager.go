package livechat

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type pagerState int

const (
	stateStart pagerState = iota
	stateFetching
	stateDone
	stateFailed
)

// Pager walks list_archives one page at a time, following next_page_id
// until the server stops returning one or sends an empty page. It is not
// restartable: once Done or Failed, Next always returns false.
type Pager struct {
	lister   ArchiveLister
	creds    Credentials
	filters  Filters
	limit    int
	maxPages int

	state  pagerState
	pageID string
	pages  int
	chats  []ChatRecord
	err    error
}

type PagerOption func(*Pager)

// WithMaxPages bounds the number of requests. Zero means unbounded.
func WithMaxPages(n int) PagerOption {
	return func(p *Pager) {
		p.maxPages = n
	}
}

func NewPager(lister ArchiveLister, creds Credentials, dateRange DateRange, limit int, opts ...PagerOption) *Pager {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	p := &Pager{
		lister:  lister,
		creds:   creds,
		filters: dateRange.Filters(),
		limit:   limit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Next fetches the following page. It returns false when pagination is
// finished or failed; check Err to tell the two apart.
func (p *Pager) Next(ctx context.Context) bool {
	if p.state == stateDone || p.state == stateFailed {
		return false
	}
	if p.maxPages > 0 && p.pages >= p.maxPages {
		p.fail(fmt.Errorf("%w: %d pages", ErrPageLimit, p.maxPages))
		return false
	}

	p.state = stateFetching
	resp, err := p.lister.ListArchives(ctx, p.creds, ListArchivesRequest{
		Filters: p.filters,
		Limit:   p.limit,
		PageID:  p.pageID,
	})
	if err != nil {
		p.fail(err)
		return false
	}
	p.pages++

	if len(resp.Chats) == 0 {
		p.chats = nil
		p.state = stateDone
		return false
	}

	p.chats = resp.Chats
	if resp.NextPageID == "" {
		p.state = stateDone
	} else {
		p.pageID = resp.NextPageID
	}

	log.Debug().
		Int("page", p.pages).
		Int("chats", len(resp.Chats)).
		Int("found_chats", resp.FoundChats).
		Bool("has_next", resp.NextPageID != "").
		Msg("Fetched archive page")

	return true
}

func (p *Pager) fail(err error) {
	p.err = err
	p.chats = nil
	p.state = stateFailed
}

// Chats returns the records of the page produced by the last Next call.
func (p *Pager) Chats() []ChatRecord {
	return p.chats
}

func (p *Pager) Pages() int {
	return p.pages
}

func (p *Pager) Err() error {
	return p.err
}
