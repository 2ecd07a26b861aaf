package cli

import (
	"context"
	"fmt"
	"time"
)

// ShowNews prints the cached feed. The accessor keeps it fresh on its own
// timer; this command never blocks on the network.
func (a *App) ShowNews(ctx context.Context) error {
	articles := a.news.Articles()
	if len(articles) == 0 {
		printlnFn("No news cached yet; try 'refreshnews'")
		return nil
	}

	if last, ok := a.news.LastFetched(); ok {
		printlnFn("Fetched " + last.Local().Format(time.RFC1123))
	}
	for _, article := range articles {
		printlnFn(fmt.Sprintf("%s: %s", article.Source, article.Title))
		if article.URL != "" {
			printlnFn("  " + article.URL)
		}
	}
	return nil
}

// RefreshNews forces a fetch outside the freshness window.
func (a *App) RefreshNews(ctx context.Context) error {
	if err := a.news.Refresh(ctx); err != nil {
		printlnFn("Could not refresh news: " + err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Fetched %d articles", len(a.news.Articles())))
	return nil
}
