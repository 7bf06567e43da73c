package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kismat91/FinDocGPT/internal/api/config"
	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/pkg/logger"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
	"github.com/patrickmn/go-cache"
)

type newsFeedRepository struct {
	cfg           *config.Config
	logger        *logger.Logger
	client        *http.Client
	inmemoryCache *cache.Cache
}

func NewNewsFeedRepository(cfg *config.Config, logger *logger.Logger) NewsFeedRepository {
	return &newsFeedRepository{
		cfg:    cfg,
		logger: logger,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		inmemoryCache: cache.New(15*time.Minute, 30*time.Minute),
	}
}

func (r *newsFeedRepository) GetHeadlines(ctx context.Context, symbol string) ([]dto.NewsItem, error) {
	cacheKey := fmt.Sprintf("news:%s", strings.ToUpper(symbol))
	if cached, found := r.inmemoryCache.Get(cacheKey); found {
		return cached.([]dto.NewsItem), nil
	}

	feedURL := fmt.Sprintf("%s/rss/search?q=%s+stock", r.cfg.NewsFeed.BaseURL, url.QueryEscape(symbol))
	r.logger.Info("Fetching news feed", logger.StringField("url", feedURL))

	fp := gofeed.NewParser()
	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		r.logger.Error("Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	sort.Slice(feed.Items, func(i, j int) bool {
		if feed.Items[i].PublishedParsed == nil || feed.Items[j].PublishedParsed == nil {
			return false
		}
		return feed.Items[i].PublishedParsed.After(*feed.Items[j].PublishedParsed)
	})

	maxItems := r.cfg.NewsFeed.MaxItems
	if maxItems <= 0 {
		maxItems = 10
	}

	items := make([]dto.NewsItem, 0, maxItems)
	for _, item := range feed.Items {
		if len(items) >= maxItems {
			break
		}
		newsItem := dto.NewsItem{
			Title: strings.TrimSpace(item.Title),
			Link:  item.Link,
		}
		if item.PublishedParsed != nil {
			newsItem.PublishedAt = *item.PublishedParsed
		}
		items = append(items, newsItem)
	}

	r.inmemoryCache.Set(cacheKey, items, cache.DefaultExpiration)
	return items, nil
}

func (r *newsFeedRepository) GetArticleContent(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to fetch news content", logger.ErrorField(err), logger.StringField("url", articleURL))
		return "", fmt.Errorf("failed to fetch news content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Failed to fetch news content with non-200 status", logger.IntField("status", resp.StatusCode), logger.StringField("url", articleURL))
		return "", fmt.Errorf("failed to fetch news content, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		r.logger.Error("Failed to parse news content", logger.ErrorField(err), logger.StringField("url", articleURL))
		return "", fmt.Errorf("failed to parse news content: %w", err)
	}
	content := doc.Content()
	docHTML, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(content)))
	if err != nil {
		return "", fmt.Errorf("failed to parse news content: %w", err)
	}

	content = strings.TrimSpace(docHTML.Text())
	content = strings.ReplaceAll(content, "\n", " ")
	content = strings.ReplaceAll(content, "\t", " ")
	content = strings.ReplaceAll(content, "\r", " ")
	return content, nil
}
