// Package moodle реализует коллабораторов навыка поверх REST веб-сервисов Moodle.
package moodle

import (
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/logger"
	"bitbucket.org/sotavant/moodle-alexa-skill/internal/store"
	"context"
	"encoding/json"
	"fmt"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"strconv"
	"time"
)

const (
	tokenPath = "/login/token.php"
	restPath  = "/webservice/rest/server.php"

	// курс главной страницы, в нём живёт форум новостей сайта
	siteCourseID = 1

	DefaultService = "alexa_skill_web_service"
	DefaultLimit   = 5
)

// Error описывает исключение веб-сервиса. Moodle отдаёт его с кодом 200.
type Error struct {
	Exception string `json:"exception"`
	ErrorCode string `json:"errorcode"`
	Message   string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("moodle %s (%s): %s", e.Exception, e.ErrorCode, e.Message)
}

type Option func(*Client)

func WithService(service string) Option {
	return func(c *Client) {
		c.service = service
	}
}

// WithLimit ограничивает число объявлений и событий в ответе.
func WithLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.limit = n
		}
	}
}

type Client struct {
	http    *resty.Client
	service string
	limit   int
}

var (
	_ store.Store       = (*Client)(nil)
	_ store.TokenIssuer = (*Client)(nil)
)

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	return NewWithClient(resty.New().SetBaseURL(baseURL).SetTimeout(timeout), opts...)
}

func NewWithClient(http *resty.Client, opts ...Option) *Client {
	c := &Client{
		http:    http,
		service: DefaultService,
		limit:   DefaultLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) IssueToken(ctx context.Context, username, password string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": username,
			"password": password,
			"service":  c.service,
		}).
		Post(tokenPath)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("issue token: unexpected status %d", resp.StatusCode())
	}

	var out struct {
		Token     string `json:"token"`
		Error     string `json:"error"`
		ErrorCode string `json:"errorcode"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("issue token: decode: %w", err)
	}

	switch {
	case out.ErrorCode == "invalidlogin":
		return "", store.ErrInvalidCredentials
	case out.Error != "" || out.Token == "":
		return "", fmt.Errorf("issue token: %w", &Error{Exception: "moodle_exception", ErrorCode: out.ErrorCode, Message: out.Error})
	}
	return out.Token, nil
}

// call вызывает функцию веб-сервиса и декодирует ответ в out.
func (c *Client) call(ctx context.Context, token, function string, params map[string]string, out any) error {
	form := map[string]string{
		"wstoken":            token,
		"wsfunction":         function,
		"moodlewsrestformat": "json",
	}
	for k, v := range params {
		form[k] = v
	}

	logger.Log.Debug("calling moodle web service", zap.String("function", function))

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(form).
		Post(restPath)
	if err != nil {
		return fmt.Errorf("%s: %w", function, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%s: unexpected status %d", function, resp.StatusCode())
	}

	body := resp.Body()
	var exc Error
	if err := json.Unmarshal(body, &exc); err == nil && exc.Exception != "" {
		return fmt.Errorf("%s: %w", function, &exc)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode: %w", function, err)
	}
	return nil
}

func (c *Client) WhoAmI(ctx context.Context, token string) (store.User, error) {
	var info struct {
		SiteName string `json:"sitename"`
		UserID   int64  `json:"userid"`
		FullName string `json:"fullname"`
	}
	if err := c.call(ctx, token, "core_webservice_get_site_info", nil, &info); err != nil {
		return store.User{}, err
	}
	return store.User{ID: info.UserID, FullName: info.FullName, SiteName: info.SiteName}, nil
}

type course struct {
	ID        int64  `json:"id"`
	ShortName string `json:"shortname"`
	FullName  string `json:"fullname"`
}

func (c *Client) userCourses(ctx context.Context, token string, userID int64) ([]course, error) {
	var courses []course
	err := c.call(ctx, token, "core_enrol_get_users_courses", map[string]string{
		"userid": itoa(userID),
	}, &courses)
	return courses, err
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
