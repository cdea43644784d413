// Package transport connects peers through the relay: session creation over HTTP
// and the paired websocket channel the sync engine runs on.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/foldersync/pkg/api"
)

// ConnectTimeout ограничение на установку соединения с relay
const ConnectTimeout = 60 * time.Second

// Client представляет HTTP и websocket клиент relay
type Client struct {
	httpClient *http.Client
	dialer     *websocket.Dialer
	logger     *slog.Logger
	baseURL    string
}

// NewClient создает новый клиент relay
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: ConnectTimeout,
			ReadBufferSize:   65536,
			WriteBufferSize:  65536,
		},
	}
}

// CreateSession регистрирует новую сессию и возвращает код для получателя
func (c *Client) CreateSession(ctx context.Context) (*api.CreateSessionResponse, error) {
	var resp api.CreateSessionResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/sessions", nil, &resp); err != nil {
		return nil, fmt.Errorf("create session request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность relay
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// DialHost занимает слот отправителя в сессии
func (c *Client) DialHost(ctx context.Context, sessionID, token string) (*Conn, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	return c.dial(ctx, "/ws/v1/sessions/"+url.PathEscape(sessionID)+"/host", header)
}

// DialJoin подключается к сессии по коду
func (c *Client) DialJoin(ctx context.Context, code string) (*Conn, error) {
	return c.dial(ctx, "/ws/v1/join?code="+url.QueryEscape(code), nil)
}

func (c *Client) dial(ctx context.Context, path string, header http.Header) (*Conn, error) {
	target, err := websocketURL(c.baseURL + path)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()

	ws, resp, err := c.dialer.DialContext(ctx, target, header)
	if err != nil {
		if resp != nil {
			defer func() {
				_ = resp.Body.Close()
			}()
			return nil, fmt.Errorf("relay refused connection: %w", responseError(resp))
		}
		return nil, fmt.Errorf("failed to connect to relay: %w", err)
	}

	c.logger.Debug("Connected to relay", "url", target)
	return NewConn(ws, c.logger), nil
}

// websocketURL заменяет схему http(s) на ws(s)
func websocketURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid relay url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported relay url scheme %q", u.Scheme)
	}
	return u.String(), nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return responseError(resp)
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// responseError разбирает ErrorResponse из неуспешного ответа
func responseError(resp *http.Response) error {
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	var errResp api.ErrorResponse
	if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
		if errResp.Message != "" {
			return fmt.Errorf("server error (%d): %s: %s", resp.StatusCode, errResp.Error, errResp.Message)
		}
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
	}
	return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
}
