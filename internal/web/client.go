package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"newsroom/internal/model"
	"newsroom/internal/service"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// tokenRejectedCode marks a 401 caused by the bearer token itself, as
// opposed to a denied operation.
const tokenRejectedCode = "UNAUTHORIZED"

// IsSessionExpired reports whether the API rejected the token.
func IsSessionExpired(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized && apiErr.Code == tokenRejectedCode
}

// ErrUnavailable is returned while the breaker is open.
var ErrUnavailable = errors.New("the news service is unavailable, please try again later")

// Client calls the newsroom REST API on behalf of a signed-in user.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient creates an API client for baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "newsroom-api",
			MaxRequests: 3,
			Interval:    30 * time.Second,
			Timeout:     15 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			// Client errors are answers, not outages.
			IsSuccessful: func(err error) bool {
				var apiErr *APIError
				return err == nil || (errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError)
			},
		}),
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.send(ctx, method, path, token, body, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrUnavailable
	}
	return err
}

func (c *Client) send(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
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
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		}
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			apiErr.Code = payload.Code
			if payload.Message != "" {
				apiErr.Message = payload.Message
			}
		}
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// SignupRequest is the registration form.
type SignupRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
}

// ArticleForm is the create and edit payload.
type ArticleForm struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Picture     string `json:"picture"`
	ArticleType string `json:"articleType"`
	PublishedAt string `json:"publishedAt,omitempty"`
	PaperID     *uint  `json:"paperId,omitempty"`
}

// ReviewForm is the review payload.
type ReviewForm struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Rating    *int   `json:"rating,omitempty"`
	ArticleID uint   `json:"articleId"`
}

// PaperForm is the create paper payload.
type PaperForm struct {
	Date          string `json:"date"`
	NamePaper     string `json:"namePaper"`
	NamePublisher string `json:"namePublisher"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*service.LoginResult, error) {
	var res service.LoginResult
	err := c.do(ctx, http.MethodPost, "/users/login", "", map[string]string{
		"username": username,
		"password": password,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Signup(ctx context.Context, in SignupRequest) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPost, "/users/signup", "", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/users/logout", token, nil, nil)
}

func (c *Client) Profile(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/users/profile", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Users(ctx context.Context, token string) ([]model.User, error) {
	var users []model.User
	err := c.do(ctx, http.MethodGet, "/users", token, nil, &users)
	return users, err
}

func (c *Client) DeleteUser(ctx context.Context, token string, id uint) error {
	return c.do(ctx, http.MethodDelete, "/users/"+itoa(id), token, nil, nil)
}

func (c *Client) UserReviews(ctx context.Context, token string, id uint) ([]model.Review, error) {
	var reviews []model.Review
	err := c.do(ctx, http.MethodGet, "/users/"+itoa(id)+"/reviews", token, nil, &reviews)
	return reviews, err
}

// ArticlesOn lists the articles published on day.
func (c *Client) ArticlesOn(ctx context.Context, token string, day time.Time) ([]model.Article, error) {
	var articles []model.Article
	err := c.do(ctx, http.MethodGet, "/articles/"+day.Format(time.DateOnly), token, nil, &articles)
	return articles, err
}

func (c *Client) Article(ctx context.Context, token string, id uint) (*model.Article, error) {
	var article model.Article
	if err := c.do(ctx, http.MethodGet, "/articles/"+itoa(id), token, nil, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (c *Client) CreateArticle(ctx context.Context, token string, in ArticleForm) (*model.Article, error) {
	var article model.Article
	if err := c.do(ctx, http.MethodPost, "/articles", token, in, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (c *Client) UpdateArticle(ctx context.Context, token string, id uint, in ArticleForm) (*model.Article, error) {
	var article model.Article
	if err := c.do(ctx, http.MethodPut, "/articles/"+itoa(id), token, in, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (c *Client) DeleteArticle(ctx context.Context, token string, id uint) error {
	return c.do(ctx, http.MethodDelete, "/articles/"+itoa(id), token, nil, nil)
}

func (c *Client) Like(ctx context.Context, token string, articleID uint) error {
	return c.do(ctx, http.MethodPost, "/articlelikes", token, map[string]uint{"articleId": articleID}, nil)
}

func (c *Client) Review(ctx context.Context, token string, in ReviewForm) error {
	return c.do(ctx, http.MethodPost, "/reviews", token, in, nil)
}

// PapersOn lists the papers dated on day.
func (c *Client) PapersOn(ctx context.Context, token string, day time.Time) ([]model.Paper, error) {
	var papers []model.Paper
	err := c.do(ctx, http.MethodGet, "/papers?date="+day.Format(time.DateOnly), token, nil, &papers)
	return papers, err
}

func (c *Client) CreatePaper(ctx context.Context, token string, in PaperForm) (*model.Paper, error) {
	var paper model.Paper
	if err := c.do(ctx, http.MethodPost, "/papers", token, in, &paper); err != nil {
		return nil, err
	}
	return &paper, nil
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
