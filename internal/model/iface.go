package model

import "context"

// ArticleFetcher retrieves the article listing behind a tab endpoint.
type ArticleFetcher interface {
	FetchArticles(ctx context.Context, endpoint string) ([]Article, error)
}
