package usersapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"usersvc/internal/httpclient"
	"usersvc/internal/logging"
)

// ErrNotFound is returned when the API answers 404 for a user.
var ErrNotFound = errors.New("user not found")

const usersPath = "/api/v1/users"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	LastName  string    `json:"lastName"`
	Rut       string    `json:"rut"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Rut      string `json:"rut"`
	Address  string `json:"address"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	LastName *string `json:"lastName,omitempty"`
	Rut      *string `json:"rut,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// Client talks to the users API over HTTP.
type Client struct {
	http   *httpclient.Client
	logger logging.Logger
}

func New(baseURL string, timeout time.Duration, logger logging.Logger) (*Client, error) {
	httpCli, err := httpclient.New(baseURL, timeout, logger.With("component", "users_http"))
	if err != nil {
		return nil, err
	}

	return &Client{
		http:   httpCli,
		logger: logger,
	}, nil
}

func (c *Client) Create(ctx context.Context, req CreateUserRequest) (User, error) {
	var res User
	err := c.http.PostJSON(ctx, usersPath, req, &res)
	return res, err
}

func (c *Client) Get(ctx context.Context, id int64) (User, error) {
	var res User
	err := c.http.GetJSON(ctx, userPath(id), nil, &res)
	return res, notFound(err)
}

// List fetches one page. Zero page or limit lets the server pick its default.
func (c *Client) List(ctx context.Context, page, limit int) ([]User, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	res := []User{}
	err := c.http.GetJSON(ctx, usersPath, query, &res)
	return res, err
}

func (c *Client) Update(ctx context.Context, id int64, req UpdateUserRequest) (User, error) {
	var res User
	err := c.http.PatchJSON(ctx, userPath(id), req, &res)
	return res, notFound(err)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return notFound(c.http.Delete(ctx, userPath(id)))
}

func userPath(id int64) string {
	return usersPath + "/" + strconv.FormatInt(id, 10)
}

func notFound(err error) error {
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return err
}
