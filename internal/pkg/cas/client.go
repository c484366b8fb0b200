// Package cas exchanges CAS service tickets for validated user attributes.
package cas

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gocas "gopkg.in/cas.v2"

	"github.com/rjoshi/gradevault/internal/pkg/apperrors"
)

// Identity is the result of a successful ticket validation: the opaque CAS
// user plus the attributes this deployment cares about.
type Identity struct {
	User   string
	Email  string
	Name   string
	RollNo string
}

// TicketValidator validates a CAS service ticket. Satisfied by Client;
// test doubles stand in for the CAS server.
type TicketValidator interface {
	ValidateTicket(ticket string) (*Identity, error)
}

// Client talks to an external CAS server.
type Client struct {
	validator  *gocas.ServiceTicketValidator
	serverURL  *url.URL
	serviceURL *url.URL
}

// NewClient builds a CAS client. serviceURL is this service's externally
// visible /auth/login endpoint, which CAS redirects back to with a ticket.
func NewClient(serverURL, serviceURL string, httpClient *http.Client) (*Client, error) {
	server, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid CAS server URL: %w", err)
	}
	service, err := url.Parse(serviceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid CAS service URL: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		validator:  gocas.NewServiceTicketValidator(httpClient, server),
		serverURL:  server,
		serviceURL: service,
	}, nil
}

// ValidateTicket verifies the ticket against the CAS server. A response
// without attributes is treated as an authentication failure. The email
// attribute falls back to the opaque CAS user when unset.
func (c *Client) ValidateTicket(ticket string) (*Identity, error) {
	resp, err := c.validator.ValidateTicket(c.serviceURL, ticket)
	if err != nil {
		return nil, fmt.Errorf("CAS ticket validation failed: %w", err)
	}
	return identityFromResponse(resp)
}

func identityFromResponse(resp *gocas.AuthenticationResponse) (*Identity, error) {
	if len(resp.Attributes) == 0 {
		return nil, apperrors.ErrNoAttributes
	}

	email := resp.Attributes.Get("E-Mail")
	if email == "" {
		email = resp.User
	}

	return &Identity{
		User:   resp.User,
		Email:  email,
		Name:   resp.Attributes.Get("Name"),
		RollNo: resp.Attributes.Get("RollNo"),
	}, nil
}

// LoginURL is where unauthenticated callers are redirected to log in.
func (c *Client) LoginURL() string {
	login := *c.serverURL
	login.Path = strings.TrimSuffix(login.Path, "/") + "/login"
	q := login.Query()
	q.Set("service", c.serviceURL.String())
	login.RawQuery = q.Encode()
	return login.String()
}

// LogoutURL is the CAS-side logout endpoint.
func (c *Client) LogoutURL() string {
	logout := *c.serverURL
	logout.Path = strings.TrimSuffix(logout.Path, "/") + "/logout"
	return logout.String()
}
