package resend

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"AreYouAlive/config"
)

// Email Resend /emails 接口的请求体
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`

	// IdempotencyKey 通过请求头传递，不进请求体
	IdempotencyKey string `json:"-"`
}

// Client Resend 邮件投递客户端。一次尝试，不重试不排队，
// 投递结果由调用方观测
type Client struct {
	endpoint string
	apiKey   string
	hc       *client.Client
}

var (
	defaultClient *Client
	once          sync.Once
)

func Init() error {
	var initErr error

	once.Do(func() {
		// netpoll 不支持 TLS，走标准网络库拨号
		hc, err := client.NewClient(
			client.WithDialer(standard.NewDialer()),
			client.WithDialTimeout(5*time.Second),
			client.WithClientReadTimeout(10*time.Second),
		)
		if err != nil {
			initErr = err
			return
		}

		defaultClient = &Client{
			endpoint: config.Cfg.ResendEndpoint,
			apiKey:   config.Cfg.ResendAPIKey,
			hc:       hc,
		}
	})

	return initErr
}

func Default() *Client {
	if defaultClient == nil {
		panic("Resend client not init")
	}
	return defaultClient
}

// Get 返回客户端，未初始化时为 nil（调用方据此降级）
func Get() *Client {
	return defaultClient
}

// Send 投递一封邮件，非 2xx 状态视为投递失败
func (c *Client) Send(ctx context.Context, msg *Email) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, res := protocol.AcquireRequest(), protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(res)
	}()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.endpoint)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if msg.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", msg.IdempotencyKey)
	}
	req.SetBody(body)

	if err := c.hc.Do(ctx, req, res); err != nil {
		return fmt.Errorf("resend request failed: %w", err)
	}

	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return fmt.Errorf("resend returned status %d: %s", res.StatusCode(), res.Body())
	}

	return nil
}
