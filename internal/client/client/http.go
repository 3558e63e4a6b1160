package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/cryptox"
	"github.com/k4jlpg/inventory/internal/logging"
	"github.com/k4jlpg/inventory/internal/shared"
)

// DefaultTimeout applies to every request when none is configured.
const DefaultTimeout = 10 * time.Second

const maxBodySize = 4 << 20

// HTTPClient talks to the remote service over REST/JSON.
type HTTPClient struct {
	baseURL    string
	serviceKey string
	tokens     TokenSource
	http       *http.Client
	log        logging.Logger
}

// NewHTTPClient returns a client for the service at baseURL. tokens may be
// nil, in which case every call sends serviceKey.
func NewHTTPClient(baseURL, serviceKey string, tokens TokenSource, timeout time.Duration, log logging.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		tokens:     tokens,
		http:       &http.Client{Timeout: timeout},
		log:        log,
	}
}

// sessionToken returns the live session token or the service key. Tokens
// minted by local sign-in are unknown to the service and are never sent.
func (c *HTTPClient) sessionToken() string {
	if c.tokens != nil {
		if t := c.tokens.AccessToken(); t != "" && !cryptox.IsLocalToken(t) {
			return t
		}
	}
	return c.serviceKey
}

func (c *HTTPClient) SignIn(ctx context.Context, username, password string) (*AuthResult, error) {
	env, err := c.do(ctx, http.MethodPost, shared.PathSignIn, c.serviceKey,
		shared.SignInRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	if env.AccessToken == "" || env.User == nil {
		return nil, fmt.Errorf("%w: sign-in response without token or user", ErrBadResponse)
	}
	return &AuthResult{AccessToken: env.AccessToken, User: env.User.ToModel()}, nil
}

func (c *HTTPClient) SignUp(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPost, shared.PathSignUp, c.serviceKey,
		shared.SignUpRequest{Username: username, Password: password, Role: string(role)})
	if err != nil {
		return nil, err
	}
	return userOf(env)
}

// CheckSession asks the service whether token is still valid and returns its user.
func (c *HTTPClient) CheckSession(ctx context.Context, token string) (*models.User, error) {
	env, err := c.do(ctx, http.MethodGet, shared.PathSession, token, nil)
	if err != nil {
		return nil, err
	}
	return userOf(env)
}

func (c *HTTPClient) GetProducts(ctx context.Context) ([]models.Product, error) {
	env, err := c.do(ctx, http.MethodGet, shared.PathProducts, c.sessionToken(), nil)
	if err != nil {
		return nil, err
	}
	result := make([]models.Product, 0, len(env.Products))
	for _, p := range env.Products {
		result = append(result, p.ToModel())
	}
	return result, nil
}

func (c *HTTPClient) AddProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	dto := shared.ProductFromModel(in.ToProduct(""))
	env, err := c.do(ctx, http.MethodPost, shared.PathProducts, c.sessionToken(), dto)
	if err != nil {
		return nil, err
	}
	return productOf(env)
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	env, err := c.do(ctx, http.MethodPut, shared.PathProducts+"/"+url.PathEscape(id), c.sessionToken(),
		shared.ProductPatchFromModel(patch))
	if err != nil {
		return nil, err
	}
	return productOf(env)
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, shared.PathProducts+"/"+url.PathEscape(id), c.sessionToken(), nil)
	return err
}

func (c *HTTPClient) GetUsers(ctx context.Context) ([]models.User, error) {
	env, err := c.do(ctx, http.MethodGet, shared.PathUsers, c.sessionToken(), nil)
	if err != nil {
		return nil, err
	}
	result := make([]models.User, 0, len(env.Users))
	for _, u := range env.Users {
		result = append(result, u.ToModel())
	}
	return result, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPut, shared.PathUsers+"/"+url.PathEscape(id), c.sessionToken(),
		shared.UserPatchFromModel(patch))
	if err != nil {
		return nil, err
	}
	return userOf(env)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, shared.PathUsers+"/"+url.PathEscape(id), c.sessionToken(), nil)
	return err
}

// InitializeDefaults seeds the remote service with its default users and
// products and returns the server message.
func (c *HTTPClient) InitializeDefaults(ctx context.Context) (string, error) {
	env, err := c.do(ctx, http.MethodPost, shared.PathInit, c.serviceKey, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// do performs one request and decodes the envelope. It never retries.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body any) (*shared.Envelope, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "remote request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var env shared.Envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message = firstNonEmpty(env.Error, env.Message)
		}
		c.log.Debug(ctx, "remote request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadResponse, decodeErr)
	}
	if !env.Success {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: firstNonEmpty(env.Error, env.Message, "request failed")}
	}
	return &env, nil
}

func userOf(env *shared.Envelope) (*models.User, error) {
	if env.User == nil {
		return nil, fmt.Errorf("%w: response without user", ErrBadResponse)
	}
	u := env.User.ToModel()
	return &u, nil
}

func productOf(env *shared.Envelope) (*models.Product, error) {
	if env.Product == nil {
		return nil, fmt.Errorf("%w: response without product", ErrBadResponse)
	}
	p := env.Product.ToModel()
	return &p, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// IsUnavailable reports whether err means the service could not be reached.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
