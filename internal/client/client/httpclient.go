package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gzapadmin/internal/client/models"
	"github.com/dmitrijs2005/gzapadmin/internal/client/session"
	"github.com/dmitrijs2005/gzapadmin/internal/common"
	"github.com/dmitrijs2005/gzapadmin/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultRateLimit = 5
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	session    session.Context
	limiter    *rate.Limiter
	logger     logging.Logger
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = d
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less disables
// the limiter.
func WithRateLimit(requestsPerSecond float64) Option {
	return func(c *HTTPClient) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		burst := int(math.Ceil(requestsPerSecond))
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		c.logger = l
	}
}

func NewHTTPClient(baseURL string, sess session.Context, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		session:    sess,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type errorBody struct {
	Code    any             `json:"code"`
	Message json.RawMessage `json:"message"`
}

// decodeMessage accepts both "msg" and ["msg1","msg2"] (validation errors).
func decodeMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeader, uuid.NewString())

	if c.session != nil {
		if tkn, ok := c.session.Credential(); ok && tkn != "" {
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+tkn)
		}
	}
	return req, nil
}

// do sends the request and decodes a JSON body into out. It reports whether a
// non-empty, non-null body was present.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, &APIError{Code: "any", Message: common.NetworkErrorMessage, cause: err}
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return false, err
	}

	c.logger.Debug(ctx, "relay request", "method", method, "path", path, "request_id", req.Header.Get(common.RequestIDHeader))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, &APIError{Code: "any", Message: common.NetworkErrorMessage, cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, &APIError{StatusCode: resp.StatusCode, Code: "any", Message: err.Error(), cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, c.normalize(resp.StatusCode, data)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}
	if out == nil {
		return true, nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return false, fmt.Errorf("failed to decode %s %s: %w", method, path, err)
	}
	return true, nil
}

func (c *HTTPClient) normalize(status int, data []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Code: "any"}

	var eb errorBody
	if json.Unmarshal(data, &eb) == nil {
		switch code := eb.Code.(type) {
		case string:
			if code != "" {
				apiErr.Code = code
			}
		case float64:
			apiErr.Code = strconv.Itoa(int(code))
		}
		apiErr.Message = decodeMessage(eb.Message)
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("Request failed with status code %d", status)
	}
	return apiErr
}

// Ping reports whether the relay answers at all; any HTTP status counts.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Code: "any", Message: common.NetworkErrorMessage, cause: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	var out models.LoginResponse
	body := map[string]string{"username": username, "password": password}
	ok, err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out)
	if err != nil {
		return "", err
	}
	if !ok || out.AccessToken == "" {
		return "", errors.New("login response carried no access token")
	}
	return out.AccessToken, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.Identity, error) {
	var id models.Identity
	ok, err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("empty identity response")
	}
	return &id, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, username string) error {
	_, err := c.do(ctx, http.MethodPost, "/users/reset-password", nil, map[string]string{"username": username}, nil)
	return err
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, in models.ProfileInput) error {
	_, err := c.do(ctx, http.MethodPut, "/users/", nil, in, nil)
	return err
}

func (c *HTTPClient) Connection(ctx context.Context) (*models.Connection, error) {
	var conn models.Connection
	ok, err := c.do(ctx, http.MethodGet, "/connections", nil, nil, &conn)
	if err != nil || !ok {
		return nil, err
	}
	return &conn, nil
}

func (c *HTTPClient) GenerateQRCode(ctx context.Context) (*models.QRCode, error) {
	var qr models.QRCode
	if _, err := c.do(ctx, http.MethodGet, "/whatsapp/generate-qr", nil, nil, &qr); err != nil {
		return nil, err
	}
	return &qr, nil
}

func (c *HTTPClient) LogoutSession(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/whatsapp/logout", nil, nil, nil)
	return err
}

func (c *HTTPClient) MessageLog(ctx context.Context, page, limit int) ([]models.MessageLog, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var logs []models.MessageLog
	if _, err := c.do(ctx, http.MethodGet, "/whatsapp-message-log", q, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (c *HTTPClient) ResendFailed(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/whatsapp-message-log/resend", nil, nil, nil)
	return err
}

func (c *HTTPClient) Companies(ctx context.Context) ([]models.Company, error) {
	var list []models.Company
	if _, err := c.do(ctx, http.MethodGet, "/companies/all", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) CreateCompany(ctx context.Context, in models.CompanyInput) error {
	_, err := c.do(ctx, http.MethodPost, "/companies", nil, in, nil)
	return err
}

func (c *HTTPClient) UpdateCompany(ctx context.Context, id string, in models.CompanyInput) error {
	_, err := c.do(ctx, http.MethodPut, "/companies/"+url.PathEscape(id), nil, in, nil)
	return err
}

func (c *HTTPClient) Users(ctx context.Context) ([]models.User, error) {
	var list []models.User
	if _, err := c.do(ctx, http.MethodGet, "/users/all", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, in models.UserInput) error {
	_, err := c.do(ctx, http.MethodPost, "/users", nil, in, nil)
	return err
}

func (c *HTTPClient) UpdateUser(ctx context.Context, in models.UserInput) error {
	_, err := c.do(ctx, http.MethodPut, "/users/admin", nil, in, nil)
	return err
}

func (c *HTTPClient) SetUserActive(ctx context.Context, id string, active bool) error {
	_, err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), nil, map[string]bool{"isActive": active}, nil)
	return err
}
