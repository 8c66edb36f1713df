package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"imagefeed/pkg/images"
	"imagefeed/pkg/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client talks the image service's fixed REST contract. It is the only place
// that knows wire shapes; everything above it works with decoded models.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.SugaredLogger
}

func New(baseURL string, timeout time.Duration, logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type voteCountResponse struct {
	VoteCount int `json:"vote_count"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	UserID   int64  `json:"user_id"`
}

// List fetches the image collection, optionally filtered by tag. Order is the
// server's, preserved verbatim.
func (c *Client) List(ctx context.Context, tag string) ([]images.Image, error) {
	path := "/images"
	if tag != "" {
		path += "?tag=" + url.QueryEscape(tag)
	}

	body, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	var list []images.Image
	err = json.Unmarshal(body, &list)
	if err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	return list, nil
}

// Vote casts an up (+1) or down (-1) vote and returns the server's
// confirmation message.
func (c *Client) Vote(ctx context.Context, imageID int64, value int) (string, error) {
	reqBody, err := json.Marshal(map[string]int{"vote": value})
	if err != nil {
		return "", err
	}

	body, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/images/%d/vote", imageID), bytes.NewReader(reqBody), "application/json")
	if err != nil {
		return "", err
	}

	var resp messageResponse
	err = json.Unmarshal(body, &resp)
	if err != nil {
		return "", &MalformedResponseError{Err: err}
	}

	return resp.Message, nil
}

// VoteCount fetches the authoritative tally for one image.
func (c *Client) VoteCount(ctx context.Context, imageID int64) (int, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/images/%d/votes", imageID), nil, "")
	if err != nil {
		return 0, err
	}

	var resp voteCountResponse
	err = json.Unmarshal(body, &resp)
	if err != nil {
		return 0, &MalformedResponseError{Err: err}
	}

	return resp.VoteCount, nil
}

type UploadRequest struct {
	FileName    string
	File        io.Reader
	Name        string
	Description string
	Tags        string
}

// Upload submits a new image as a multipart body. Field names match the
// server's form contract: image, name, description, tags.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (string, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	part, err := mw.CreateFormFile("image", req.FileName)
	if err != nil {
		return "", err
	}
	_, err = io.Copy(part, req.File)
	if err != nil {
		return "", err
	}

	for field, value := range map[string]string{
		"name":        req.Name,
		"description": req.Description,
		"tags":        req.Tags,
	} {
		err = mw.WriteField(field, value)
		if err != nil {
			return "", err
		}
	}

	err = mw.Close()
	if err != nil {
		return "", err
	}

	body, err := c.do(ctx, http.MethodPost, "/upload", buf, mw.FormDataContentType())
	if err != nil {
		return "", err
	}

	var resp messageResponse
	err = json.Unmarshal(body, &resp)
	if err != nil {
		return "", &MalformedResponseError{Err: err}
	}

	return resp.Message, nil
}

// Login authenticates and returns the user record the session store persists.
func (c *Client) Login(ctx context.Context, username, password string) (*session.User, error) {
	body, err := c.doAuth(ctx, "/login", username, password)
	if err != nil {
		return nil, err
	}

	var resp loginResponse
	err = json.Unmarshal(body, &resp)
	if err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	return &session.User{ID: resp.UserID, Username: resp.Username}, nil
}

// Register creates an account and returns the server's confirmation message.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	body, err := c.doAuth(ctx, "/register", username, password)
	if err != nil {
		return "", err
	}

	var resp messageResponse
	err = json.Unmarshal(body, &resp)
	if err != nil {
		return "", &MalformedResponseError{Err: err}
	}

	return resp.Message, nil
}

// ImageURL builds the display URL for a listed image.
func (c *Client) ImageURL(img images.Image) string {
	return c.baseURL + "/uploads/" + img.PathRef
}

func (c *Client) doAuth(ctx context.Context, path, username, password string) ([]byte, error) {
	reqBody, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return nil, err
	}

	return c.do(ctx, http.MethodPost, path, bytes.NewReader(reqBody), "application/json")
}

func (c *Client) do(ctx context.Context, method, path string, reqBody io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}

	reqID := uuid.New().String()
	req.Header.Set("X-Request-Id", reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Errorf("%s %s [%s]: %v", method, path, reqID, err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode >= 300 {
		httpErr := &HTTPError{Status: resp.StatusCode, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			httpErr.Message = errResp.Error
		}
		c.logger.Errorf("%s %s [%s]: %d %s", method, path, reqID, resp.StatusCode, httpErr.Message)
		return nil, httpErr
	}

	return body, nil
}
