// Package feed drives the per-tab article fetch: one request per selection,
// with late results from superseded selections dropped.
package feed

import (
	"context"
	"log"
	"time"

	"github.com/tinytelemetry/tabfeed/internal/model"
)

// Request is one fetch issued for a selection. Generation increases with every
// request; only the newest generation may commit.
type Request struct {
	TabID      int
	Endpoint   string
	Generation uint64

	ctx     context.Context
	started time.Time
}

// Result carries a settled request back to the owner of the Controller.
type Result struct {
	TabID      int
	Generation uint64
	Articles   []model.Article
	Err        error
	Elapsed    time.Duration
}

// Controller owns FetchState for one mounted view. Select, Reload, Apply and
// Close must be called from a single goroutine; Run may be called from any.
type Controller struct {
	fetcher model.ArticleFetcher

	active     int
	generation uint64
	cancel     context.CancelFunc

	state   State
	content []model.Article // last successful listing, kept across failures
}

// NewController creates a controller with no tab selected yet.
func NewController(fetcher model.ArticleFetcher) *Controller {
	return &Controller{fetcher: fetcher}
}

// Active returns the selected tab ID, or 0 before the first selection.
func (c *Controller) Active() int { return c.active }

// State returns the current fetch state.
func (c *Controller) State() State { return c.state }

// Content returns the most recent successful listing. It survives later
// failures so callers may still show it if they choose to.
func (c *Controller) Content() []model.Article { return c.content }

// Select makes id the active tab. It returns a request to run when id differs
// from the current selection, and false when id is already active or unknown.
func (c *Controller) Select(id int) (Request, bool) {
	if id == c.active && c.generation > 0 {
		return Request{}, false
	}
	tab, ok := model.LookupTab(id)
	if !ok {
		log.Printf("feed: ignoring selection of unknown tab %d", id)
		return Request{}, false
	}
	c.active = tab.ID
	return c.issue(tab), true
}

// Reload issues a fresh request for the active tab.
func (c *Controller) Reload() (Request, bool) {
	tab, ok := model.LookupTab(c.active)
	if !ok {
		return Request{}, false
	}
	return c.issue(tab), true
}

func (c *Controller) issue(tab model.Tab) Request {
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.generation++

	c.state = State{Phase: PhaseLoading, TabID: tab.ID}

	return Request{
		TabID:      tab.ID,
		Endpoint:   tab.Endpoint,
		Generation: c.generation,
		ctx:        ctx,
		started:    time.Now(),
	}
}

// Run performs the request. It blocks until the fetch settles or the request
// is superseded.
func (c *Controller) Run(req Request) Result {
	ctx := req.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	articles, err := c.fetcher.FetchArticles(ctx, req.Endpoint)
	return Result{
		TabID:      req.TabID,
		Generation: req.Generation,
		Articles:   articles,
		Err:        err,
		Elapsed:    time.Since(req.started),
	}
}

// Apply commits a settled result. Results for anything but the newest
// request are dropped and Apply returns false.
func (c *Controller) Apply(res Result) bool {
	if res.Generation != c.generation || res.TabID != c.active || !c.state.Loading() {
		log.Printf("feed: dropping stale result for tab %d (generation %d, active tab %d generation %d)",
			res.TabID, res.Generation, c.active, c.generation)
		return false
	}

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if res.Err != nil {
		log.Printf("feed: tab %d failed after %s: %v", res.TabID, res.Elapsed.Round(time.Millisecond), res.Err)
		c.state = State{Phase: PhaseFailed, TabID: res.TabID, Message: LoadFailedMessage}
		return true
	}

	articles := res.Articles
	if articles == nil {
		articles = []model.Article{}
	}
	log.Printf("feed: tab %d loaded %d articles in %s", res.TabID, len(articles), res.Elapsed.Round(time.Millisecond))
	c.content = articles
	c.state = State{Phase: PhaseLoaded, TabID: res.TabID, Articles: articles}
	return true
}

// Close abandons any in-flight request.
func (c *Controller) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
