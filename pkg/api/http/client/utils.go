package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/voidshard/jobgate/pkg/api/http/common"
)

// Error is returned when the server responds with an error code.
type Error struct {
	Code int

	// Message & Errors are as sent by the server
	Message string
	Errors  []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("bad status code %d, returned %s", e.Code, e.Message)
}

// do is a helper to send data (if any) to a given URL and unmarshal the response
func (c *Client) do(ctx context.Context, method string, addr *url.URL, in []byte, out interface{}) error {
	var body io.Reader
	if in != nil {
		body = bytes.NewReader(in)
	}

	req, err := http.NewRequestWithContext(ctx, method, addr.String(), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.key != "" {
		req.Header.Set(common.HEADER_API_KEY, c.key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 { // some error code, assume body is an error response
		eresp := &common.ErrorResponse{}
		if json.Unmarshal(data, eresp) != nil || eresp.Error == "" {
			eresp.Error = string(data)
		}
		return &Error{Code: resp.StatusCode, Message: eresp.Error, Errors: eresp.Errors}
	}

	return json.Unmarshal(data, out)
}
