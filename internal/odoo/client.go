// Package odoo implements a minimal client for the Odoo external API
// (XML-RPC) covering authentication and the execute_kw entry point.
package odoo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kolo/xmlrpc"
)

// ErrAuthentication indicates the ERP rejected the configured credentials.
var ErrAuthentication = errors.New("odoo authentication failed")

// Credentials identify one Odoo database user.
type Credentials struct {
	URL      string
	Database string
	Username string
	Password string
}

// Client talks to a single Odoo instance. The uid obtained from the first
// successful authenticate call is reused for subsequent execute_kw calls.
type Client struct {
	creds  Credentials
	common *xmlrpc.Client
	object *xmlrpc.Client

	mu  sync.Mutex
	uid int64
}

// NewClient builds a Client for the given credentials. No network traffic
// happens until the first call.
func NewClient(creds Credentials) (*Client, error) {
	if creds.URL == "" || creds.Database == "" {
		return nil, errors.New("odoo url and database are required")
	}
	common, err := xmlrpc.NewClient(creds.URL+"/xmlrpc/2/common", nil)
	if err != nil {
		return nil, fmt.Errorf("create common endpoint client: %w", err)
	}
	object, err := xmlrpc.NewClient(creds.URL+"/xmlrpc/2/object", nil)
	if err != nil {
		return nil, fmt.Errorf("create object endpoint client: %w", err)
	}
	return &Client{creds: creds, common: common, object: object}, nil
}

// Authenticate resolves and caches the user id. Odoo answers the boolean
// false instead of a uid when credentials are wrong.
func (c *Client) Authenticate(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.uid != 0 {
		return c.uid, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var reply any
	args := []any{c.creds.Database, c.creds.Username, c.creds.Password, map[string]any{}}
	if err := c.common.Call("authenticate", args, &reply); err != nil {
		return 0, fmt.Errorf("authenticate against %s: %w", c.creds.URL, err)
	}
	uid, ok := asInt(reply)
	if !ok || uid <= 0 {
		return 0, ErrAuthentication
	}
	c.uid = uid
	return uid, nil
}

// ExecuteKw invokes a model method through execute_kw and decodes the reply
// into result.
func (c *Client) ExecuteKw(ctx context.Context, model, method string, args []any, kwargs map[string]any, result any) error {
	uid, err := c.Authenticate(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := []any{c.creds.Database, uid, c.creds.Password, model, method, args}
	if kwargs != nil {
		params = append(params, kwargs)
	}
	if err := c.object.Call("execute_kw", params, result); err != nil {
		return fmt.Errorf("execute_kw %s.%s: %w", model, method, err)
	}
	return nil
}

// SearchRead runs search_read on a model, restricted to the given fields.
func (c *Client) SearchRead(ctx context.Context, model string, domain []any, fields []string) ([]map[string]any, error) {
	var records []map[string]any
	kwargs := map[string]any{"fields": fields}
	if err := c.ExecuteKw(ctx, model, "search_read", []any{domain}, kwargs, &records); err != nil {
		return nil, err
	}
	return records, nil
}
