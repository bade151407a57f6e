package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// fetchListPageHeadless is the fallback for catalog pages that render their
// listing grid client-side, where the plain HTTP pass sees an empty shell.
func (s *WorkshopImporter) fetchListPageHeadless(ctx context.Context, page int, limit int) ([]workshopListItem, error) {
	if s == nil {
		return nil, fmt.Errorf("nil importer")
	}
	if limit <= 0 {
		limit = 30
	}

	listURL := fmt.Sprintf("%s/workshops?sort=newest&page=%d", s.baseURL, page)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, 25*time.Second)
	defer reqCancel()

	var hrefs []string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(listURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.EvaluateAsDevTools(`Array.from(document.querySelectorAll('a[href]'))
			.map(a => a.getAttribute('href'))
			.filter(h => h && h.includes('/workshops/'))`, &hrefs),
	)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	out := make([]workshopListItem, 0, limit)

	for _, h := range hrefs {
		if len(out) >= limit {
			break
		}
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if strings.HasPrefix(h, "/") {
			h = s.baseURL + h
		} else if !strings.HasPrefix(h, "http://") && !strings.HasPrefix(h, "https://") {
			h = s.baseURL + "/" + h
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, workshopListItem{Link: h})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no workshop urls found (headless)")
	}
	return out, nil
}
