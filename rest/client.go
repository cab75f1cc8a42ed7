package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"

	"github.com/rudikone/TestExamples/rest/model"
)

const (
	defaultClientPort int = 3000
	maxClientPort         = 65535
)

// Client provides an interface for interacting with a remote roster
// Service.
type Client struct {
	host   string
	prefix string
	port   int
	client *http.Client
}

// ClientOptions locate a remote service.
type ClientOptions struct {
	Host   string
	Port   int
	Prefix string
}

// NewClient takes host, port, and URI prefix information and constructs a
// new Client.
func NewClient(opts ClientOptions) (*Client, error) {
	c := &Client{client: &http.Client{}}

	return c.initClient(opts)
}

// NewClientFromExisting takes an existing http.Client object and produces a
// new Client object.
func NewClientFromExisting(client *http.Client, opts ClientOptions) (*Client, error) {
	if client == nil {
		return nil, errors.New("must use a non-nil existing client")
	}

	c := &Client{client: client}

	return c.initClient(opts)
}

// Copy takes an existing Client object and returns a new client object with
// the same settings that uses a *new* http.Client.
func (c *Client) Copy() *Client {
	out := &Client{}
	*out = *c
	out.client = &http.Client{}

	return out
}

func (c *Client) initClient(opts ClientOptions) (*Client, error) {
	if err := c.SetHost(opts.Host); err != nil {
		return nil, err
	}

	if err := c.SetPort(opts.Port); err != nil {
		return nil, err
	}

	if err := c.SetPrefix(opts.Prefix); err != nil {
		return nil, err
	}

	return c, nil
}

////////////////////////////////////////////////////////////////////////
//
// Configuration Interface
//
////////////////////////////////////////////////////////////////////////

// Client returns a pointer to embedded http.Client object.
func (c *Client) Client() *http.Client {
	return c.client
}

// SetHost allows callers to change the hostname (including leading
// "http(s)") for the Client. Returns an error if the specified host does
// not start with "http".
func (c *Client) SetHost(h string) error {
	if !strings.HasPrefix(h, "http") {
		return errors.Errorf("host '%s' is malformed. must start with 'http'", h)
	}

	c.host = strings.TrimSuffix(h, "/")

	return nil
}

// Host returns the current host.
func (c *Client) Host() string {
	return c.host
}

// SetPort allows callers to change the port used for the client. If the
// port is invalid, returns an error and sets the port to the default value.
func (c *Client) SetPort(p int) error {
	if p <= 0 || p > maxClientPort {
		c.port = defaultClientPort
		return errors.Errorf("cannot set the port to %d, using %d instead", p, defaultClientPort)
	}

	c.port = p
	return nil
}

// Port returns the current port value for the Client.
func (c *Client) Port() int {
	return c.port
}

// SetPrefix allows callers to modify the prefix for this client.
func (c *Client) SetPrefix(p string) error {
	c.prefix = strings.Trim(p, "/")
	return nil
}

// Prefix accesses the prefix for the client. The prefix is the part of the
// URI between the end-point and the hostname, of the API.
func (c *Client) Prefix() string {
	return c.prefix
}

func (c *Client) getURL(endpoint string) string {
	var url []string

	if c.port == 80 || c.port == 0 {
		url = append(url, c.host)
	} else {
		url = append(url, fmt.Sprintf("%s:%d", c.host, c.port))
	}

	if c.prefix != "" {
		url = append(url, c.prefix)
	}

	if endpoint = strings.Trim(endpoint, "/"); endpoint != "" {
		url = append(url, endpoint)
	}

	return strings.Join(url, "/")
}

// do sends the request and decodes a successful response into out. Failed
// requests return the service's gimlet.ErrorResponse.
func (c *Client) do(ctx context.Context, method, endpoint string, body interface{}, out interface{}) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "problem encoding request body")
		}
		payload = bytes.NewReader(data)
	}

	url := c.getURL(endpoint)
	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return errors.Wrap(err, "problem building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	grip.Debugln(method, url)
	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "problem sending %s request to '%s'", method, url)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		errResp := gimlet.ErrorResponse{}
		if err = gimlet.GetJSON(resp.Body, &errResp); err != nil || errResp.StatusCode == 0 {
			errResp.StatusCode = resp.StatusCode
		}
		if errResp.Message == "" {
			errResp.Message = http.StatusText(resp.StatusCode)
		}
		return errResp
	}

	if out == nil {
		return nil
	}

	return errors.Wrap(gimlet.GetJSON(resp.Body, out), "problem reading response")
}

////////////////////////////////////////////////////////////////////////
//
// Public Operations that Interact with the Service
//
////////////////////////////////////////////////////////////////////////

// GetStatus returns the service's status.
func (c *Client) GetStatus(ctx context.Context) (*model.APIStatus, error) {
	out := &model.APIStatus{}
	if err := c.do(ctx, http.MethodGet, "/v1/status", nil, out); err != nil {
		return nil, err
	}

	return out, nil
}

// ListCharacters returns the members, limited to one race when race is not
// empty.
func (c *Client) ListCharacters(ctx context.Context, race string) ([]model.APICharacter, error) {
	endpoint := "/v1/characters"
	if race != "" {
		endpoint += "?" + url.Values{raceParam: []string{race}}.Encode()
	}

	out := []model.APICharacter{}
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// GetCharacter returns the member with the given id.
func (c *Client) GetCharacter(ctx context.Context, id string) (*model.APICharacter, error) {
	out := &model.APICharacter{}
	if err := c.do(ctx, http.MethodGet, "/v1/characters/"+url.PathEscape(id), nil, out); err != nil {
		return nil, err
	}

	return out, nil
}

// RecruitCharacter adds a member and returns it with its assigned id.
func (c *Client) RecruitCharacter(ctx context.Context, character model.APICharacter) (*model.APICharacter, error) {
	out := &model.APICharacter{}
	if err := c.do(ctx, http.MethodPost, "/v1/characters", character, out); err != nil {
		return nil, err
	}

	return out, nil
}

// DismissCharacter removes the member with the given id and returns it.
func (c *Client) DismissCharacter(ctx context.Context, id string) (*model.APICharacter, error) {
	out := &model.APICharacter{}
	if err := c.do(ctx, http.MethodDelete, "/v1/characters/"+url.PathEscape(id), nil, out); err != nil {
		return nil, err
	}

	return out, nil
}

// GetCensus returns the latest census.
func (c *Client) GetCensus(ctx context.Context) (*model.APICensus, error) {
	out := &model.APICensus{}
	if err := c.do(ctx, http.MethodGet, "/v1/census", nil, out); err != nil {
		return nil, err
	}

	return out, nil
}

// ScheduleCensus asks the service to take a census and returns the job id.
func (c *Client) ScheduleCensus(ctx context.Context) (string, error) {
	out := &model.APIScheduledJob{}
	if err := c.do(ctx, http.MethodPost, "/v1/census", nil, out); err != nil {
		return "", err
	}

	return out.ID, nil
}
