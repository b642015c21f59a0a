package taskapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

// 默认分页与重试参数
const (
	DefaultPageSize     = 1000
	DefaultMaxPages     = 50
	DefaultMaxRetries   = 3
	DefaultRetryBackoff = 500 * time.Millisecond
	DefaultTimeout      = 30 * time.Second
)

const maxErrorBody = 512

// Options 客户端选项
type Options struct {
	BaseURL      string
	Token        string
	PageSize     int
	MaxPages     int
	MaxRetries   int
	RetryBackoff time.Duration
	HTTPClient   *http.Client
	Logger       *zap.Logger
}

// Client 外部任务系统客户端
type Client struct {
	baseURL      *url.URL
	token        string
	pageSize     int
	maxPages     int
	maxRetries   int
	retryBackoff time.Duration
	httpClient   *http.Client
	logger       *zap.Logger
	sleep        func(ctx context.Context, d time.Duration) error
}

// New 创建客户端
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, ErrNotConfigured
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid task api base url: %w", err)
	}

	c := &Client{
		baseURL:      base,
		token:        opts.Token,
		pageSize:     opts.PageSize,
		maxPages:     opts.MaxPages,
		maxRetries:   opts.MaxRetries,
		retryBackoff: opts.RetryBackoff,
		httpClient:   opts.HTTPClient,
		logger:       opts.Logger,
		sleep:        sleepContext,
	}
	if c.pageSize <= 0 {
		c.pageSize = DefaultPageSize
	}
	if c.maxPages <= 0 {
		c.maxPages = DefaultMaxPages
	}
	if c.maxRetries < 0 {
		c.maxRetries = 0
	}
	if c.retryBackoff <= 0 {
		c.retryBackoff = DefaultRetryBackoff
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.logger = c.logger.Named("taskapi")
	return c, nil
}

type postsPage struct {
	Data []model.Task `json:"data"`
}

type settingsResponse struct {
	Users []model.Collaborator `json:"users"`
}

// FetchPending 指定用户在日期区间内的待办任务
func (c *Client) FetchPending(ctx context.Context, user, start, end string) ([]model.Task, error) {
	return c.fetchPosts(ctx, url.Values{
		"date_start": {start},
		"date_end":   {end},
		"user_name":  {user},
	})
}

// FetchCompleted 指定用户在日期区间内完成的任务
func (c *Client) FetchCompleted(ctx context.Context, user, start, end string) ([]model.Task, error) {
	return c.fetchPosts(ctx, url.Values{
		"completed_start": {start},
		"completed_end":   {end},
		"user_name":       {user},
	})
}

// FetchBoth 并发获取已完成与待办任务，任一失败则整体失败
func (c *Client) FetchBoth(ctx context.Context, user, start, end string) (completed, pending []model.Task, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		completed, err = c.FetchCompleted(gctx, user, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		pending, err = c.FetchPending(gctx, user, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return completed, pending, nil
}

// ListUsers 任务系统中的协作者
func (c *Client) ListUsers(ctx context.Context) ([]model.Collaborator, error) {
	var resp settingsResponse
	if err := c.getJSON(ctx, "/settings", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Users == nil {
		resp.Users = []model.Collaborator{}
	}
	return resp.Users, nil
}

// fetchPosts 分页读取，某页少于 pageSize 条时结束；中途失败丢弃已读取的页
func (c *Client) fetchPosts(ctx context.Context, query url.Values) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	for page := 0; page < c.maxPages; page++ {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("offset", strconv.Itoa(page*c.pageSize))
		q.Set("limit", strconv.Itoa(c.pageSize))

		var resp postsPage
		if err := c.getJSON(ctx, "/posts", q, &resp); err != nil {
			return nil, fmt.Errorf("fetch posts page %d: %w", page, err)
		}
		tasks = append(tasks, resp.Data...)
		if len(resp.Data) < c.pageSize {
			return tasks, nil
		}
	}
	c.logger.Warn("pagination limit reached", zap.Int("max_pages", c.maxPages), zap.Int("page_size", c.pageSize))
	return nil, ErrTooManyPages
}

// getJSON 带重试的 GET 请求
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := c.retryBackoff << (attempt - 1)
			c.logger.Debug("retrying request",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Error(lastErr),
			)
			if err := c.sleep(ctx, wait); err != nil {
				return err
			}
		}

		err := c.doGet(ctx, path, query, out)
		if err == nil {
			return nil
		}
		if !retryable(ctx, err) {
			c.logger.Warn("request failed", zap.String("path", path), zap.Error(err))
			return err
		}
		lastErr = err
	}
	c.logger.Warn("request failed after retries", zap.String("path", path), zap.Int("retries", c.maxRetries), zap.Error(lastErr))
	return lastErr
}

func (c *Client) doGet(ctx context.Context, path string, query url.Values, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &transportError{path: path, err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Path: path, Body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// retryable 网络错误、429 与 5xx 可重试；其他 4xx、解码错误与取消不重试
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	var netErr *transportError
	return errors.As(err, &netErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
