package catalog

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/url"
	"strings"
	"time"

	"collablearn/internal/config"
	"collablearn/internal/database"
	"collablearn/internal/pipeline"
	"collablearn/internal/ws"

	"github.com/gocolly/colly/v2"
)

const sourceName = "workshophub"

// Invalidator clears derived recommendation state after the candidate pool
// changes in bulk.
type Invalidator interface {
	InvalidateRecommendations(ctx context.Context) error
}

// WorkshopImporter pulls published workshop listings from an external
// catalog site into the local listings table.
type WorkshopImporter struct {
	db          database.DB
	cfg         config.ImporterConfig
	cache       Invalidator
	logger      *log.Logger
	baseURL     string
	allowedHost string
}

func NewWorkshopImporter(db database.DB, cfg config.ImporterConfig, cache Invalidator, logger *log.Logger) *WorkshopImporter {
	if logger == nil {
		logger = log.Default()
	}
	base := strings.TrimSpace(cfg.CatalogBaseURL)
	if base == "" {
		base = "https://www.workshophub.io"
	}
	return &WorkshopImporter{
		db:          db,
		cfg:         cfg,
		cache:       cache,
		logger:      logger,
		baseURL:     strings.TrimRight(base, "/"),
		allowedHost: hostFromBaseURL(base),
	}
}

type workshopListItem struct {
	Link string
}

type workshopDetail struct {
	externalID  string
	name        string
	category    string
	subCategory string
	tags        []string
	price       float64
	level       string
}

func (s *WorkshopImporter) Run(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("nil importer/db")
	}
	pages := s.cfg.Pages
	if pages <= 0 {
		pages = 1
	}
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = 4
	}

	instructorID, err := ensureImportUser(ctx, s.db, sourceName)
	if err != nil {
		return err
	}

	if err := unpublishSource(ctx, s.db, sourceName); err != nil {
		s.logger.Printf("[Importer] unpublish failed | source=%s err=%v", sourceName, err)
	}

	pool := pipeline.NewWorkerPool(workers, workers*2)
	results := pool.Run(ctx)

	imported := 0
	for page := 1; page <= pages; page++ {
		items, err := s.fetchListPage(ctx, page)
		if err != nil {
			s.logger.Printf("[Importer] list page failed | page=%d err=%v", page, err)
			continue
		}
		if len(items) == 0 && s.cfg.Headless {
			items, err = s.fetchListPageHeadless(ctx, page, 30)
			if err != nil {
				s.logger.Printf("[Importer] headless list page failed | page=%d err=%v", page, err)
				continue
			}
		}
		for _, it := range items {
			it := it
			link := strings.TrimSpace(it.Link)
			if link == "" {
				continue
			}
			imported++
			pool.Submit(func(ctx context.Context) error {
				detail, err := s.fetchDetailPage(ctx, link)
				if err != nil {
					return err
				}
				return upsertListing(ctx, s.db, sourceName, instructorID, rawListingInput{
					ExternalID:  detail.externalID,
					Name:        detail.name,
					Category:    detail.category,
					SubCategory: detail.subCategory,
					Tags:        detail.tags,
					Price:       detail.price,
					Level:       detail.level,
					URL:         link,
				})
			})
		}
	}

	pool.Close()

	failed := 0
	for res := range results {
		if res.Err != nil {
			failed++
			s.logger.Printf("[Importer] item failed | err=%v", res.Err)
		}
	}

	s.logger.Printf("[Importer] run finished | source=%s submitted=%d failed=%d", sourceName, imported, failed)

	if imported > failed {
		if s.cache != nil {
			if err := s.cache.InvalidateRecommendations(context.Background()); err != nil {
				s.logger.Printf("[Importer] cache invalidation failed | err=%v", err)
			}
		}
		ws.NotifyListingsUpdated(sourceName, imported-failed)
	}

	return nil
}

func (s *WorkshopImporter) fetchListPage(ctx context.Context, page int) ([]workshopListItem, error) {
	c := colly.NewCollector(
		colly.AllowedDomains(s.allowedHost),
	)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, RandomDelay: 750 * time.Millisecond, Delay: 400 * time.Millisecond})

	items := make([]workshopListItem, 0)

	c.OnHTML("a", func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.Attr("href"))
		if href == "" {
			return
		}
		if !strings.Contains(href, "/workshops/") {
			return
		}
		abs := e.Request.AbsoluteURL(href)
		if abs == "" {
			return
		}
		items = append(items, workshopListItem{Link: abs})
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	listURL := fmt.Sprintf("%s/workshops?sort=newest&page=%d", s.baseURL, page)
	if err := c.Visit(listURL); err != nil {
		return nil, err
	}

	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}

	dedup := map[string]struct{}{}
	out := make([]workshopListItem, 0, len(items))
	for _, it := range items {
		u := strings.TrimSpace(it.Link)
		if u == "" {
			continue
		}
		if _, ok := dedup[u]; ok {
			continue
		}
		dedup[u] = struct{}{}
		out = append(out, workshopListItem{Link: u})
	}
	return out, nil
}

func (s *WorkshopImporter) fetchDetailPage(ctx context.Context, listingURL string) (workshopDetail, error) {
	c := colly.NewCollector(
		colly.AllowedDomains(s.allowedHost),
	)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, RandomDelay: 850 * time.Millisecond, Delay: 450 * time.Millisecond})

	var out workshopDetail
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML("h1", func(e *colly.HTMLElement) {
		if out.name == "" {
			out.name = strings.TrimSpace(e.Text)
		}
	})

	c.OnHTML("title", func(e *colly.HTMLElement) {
		if out.name == "" {
			out.name = strings.TrimSpace(e.Text)
		}
	})

	c.OnHTML("[data-field=category]", func(e *colly.HTMLElement) {
		out.category = strings.TrimSpace(e.Text)
	})

	c.OnHTML("[data-field=subcategory]", func(e *colly.HTMLElement) {
		out.subCategory = strings.TrimSpace(e.Text)
	})

	c.OnHTML("[data-field=level]", func(e *colly.HTMLElement) {
		out.level = strings.TrimSpace(e.Text)
	})

	c.OnHTML("[data-field=price]", func(e *colly.HTMLElement) {
		out.price = parsePrice(e.Text)
	})

	c.OnHTML("[data-field=tags] li", func(e *colly.HTMLElement) {
		tag := strings.TrimSpace(e.Text)
		if tag != "" {
			out.tags = append(out.tags, tag)
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return workshopDetail{}, ctx.Err()
	}
	if err := c.Visit(listingURL); err != nil {
		return workshopDetail{}, err
	}

	c.Wait()
	if reqErr != nil {
		return workshopDetail{}, reqErr
	}

	out.externalID = extractWorkshopExternalID(listingURL)
	return out, nil
}

func extractWorkshopExternalID(listingURL string) string {
	listingURL = strings.TrimSpace(listingURL)
	u, err := url.Parse(listingURL)
	if err == nil {
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) > 0 {
			last := strings.TrimSpace(parts[len(parts)-1])
			if last != "" {
				return last
			}
		}
	}
	return listingURL
}

func httpHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "CollabLearnImporter/0.1",
		"Accept-Language": "en-US,en;q=0.9",
	}
}

func hostFromBaseURL(base string) string {
	base = strings.TrimSpace(base)
	u, err := url.Parse(base)
	if err != nil {
		return "www.workshophub.io"
	}
	host := u.Host
	if host == "" {
		return "www.workshophub.io"
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
