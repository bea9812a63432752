package httpclient

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPClientConfig 配置参数
type HTTPClientConfig struct {
	Timeout    time.Duration // 请求超时时间
	RateLimit  int           // 每分钟请求次数，<= 0 表示不限流
	MaxRetries int           // 最大重试次数
	UserAgent  string
}

// HTTPClient 带限流的 JSON 客户端，用于 webhook 推送
type HTTPClient struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

func NewHTTPClient(cfg HTTPClientConfig, logger *zap.Logger) *HTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RateLimit)/60), 1)
	}

	restyClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.MaxRetries).
		AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
			// 为限流器等待创建带超时的上下文
			limiterCtx, cancel := context.WithTimeout(r.Context(), cfg.Timeout)
			defer cancel()

			if err := limiter.Wait(limiterCtx); err != nil {
				logger.Warn("Rate limiter wait failed", zap.Error(err))
				return err
			}
			if cfg.UserAgent != "" {
				r.SetHeader("User-Agent", cfg.UserAgent)
			}
			return nil
		}).
		AddResponseMiddleware(func(c *resty.Client, resp *resty.Response) error {
			if resp.StatusCode() >= 400 {
				logger.Warn("HTTP request failed",
					zap.Int("status", resp.StatusCode()),
					zap.String("url", resp.Request.URL),
				)
			}
			return nil
		})

	return &HTTPClient{
		client:  restyClient,
		logger:  logger,
		limiter: limiter,
	}
}

// PostJSON 以 JSON 发送 body，out 非空时解析响应
func (c *HTTPClient) PostJSON(ctx context.Context, url string, body interface{}, out interface{}) error {
	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Post(url)
	if err != nil {
		c.logger.Error("HTTP POST JSON request failed", zap.String("url", url), zap.Error(err))
		return err
	}

	if resp.StatusCode() >= 400 {
		return &HTTPError{Code: resp.StatusCode(), Message: resp.String()}
	}
	return nil
}

func (c *HTTPClient) Close() error {
	return c.client.Close()
}

// HTTPError 非 2xx 响应
type HTTPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error %d: %s", e.Code, e.Message)
}
