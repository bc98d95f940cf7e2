package fetcher

import (
	"context"
	"fmt"
	"net/url"

	"gamehub/pkg/models"
)

// Pager accumulates category/search pages client-side. Each LoadMore
// bumps the page counter and re-issues the (cached) request for the
// cumulative limit, so earlier pages stay prefix-consistent with the
// accumulated list.
type Pager struct {
	ctrl     *Controller
	policy   Policy
	pageSize int

	category string
	query    string

	page  int
	items []models.Game
	more  bool
}

func NewPager(ctrl *Controller, pageSize int, policy Policy) *Pager {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Pager{ctrl: ctrl, pageSize: pageSize, policy: policy, more: true}
}

// SetCategory switches the pager to a category view. A change resets
// pagination to page 1 and clears the accumulated list.
func (p *Pager) SetCategory(category string) {
	if category == p.category && p.query == "" {
		return
	}
	p.category = category
	p.query = ""
	p.reset()
}

// SetQuery switches the pager to a search view, resetting state on change.
func (p *Pager) SetQuery(query string) {
	if query == p.query && p.category == "" {
		return
	}
	p.query = query
	p.category = ""
	p.reset()
}

func (p *Pager) reset() {
	p.page = 0
	p.items = nil
	p.more = true
}

// LoadMore fetches the next cumulative page. It returns the full
// accumulated list, not just the new tail.
func (p *Pager) LoadMore(ctx context.Context) ([]models.Game, error) {
	if !p.more {
		return p.items, nil
	}

	limit := (p.page + 1) * p.pageSize
	res, err := p.ctrl.Fetch(ctx, p.path(limit), p.policy)
	if err != nil {
		return nil, err
	}

	games, err := res.Games()
	if err != nil {
		return nil, err
	}

	p.page++
	p.items = games

	// more is plausible only when the upstream filled the whole request
	// and the count lines up with a page boundary
	p.more = len(games) >= limit && len(games)%p.pageSize == 0
	return p.items, nil
}

// CanLoadMore reports whether the last response suggested further pages.
func (p *Pager) CanLoadMore() bool { return p.more }

// Items returns the accumulated list.
func (p *Pager) Items() []models.Game { return p.items }

// Page returns the current page number (0 before the first load).
func (p *Pager) Page() int { return p.page }

func (p *Pager) path(limit int) string {
	if p.query != "" {
		return fmt.Sprintf("/games/search?q=%s&limit=%d", url.QueryEscape(p.query), limit)
	}
	return fmt.Sprintf("/games/category/%s?limit=%d", url.PathEscape(p.category), limit)
}
