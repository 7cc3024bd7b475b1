package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a RestyClient. A zero timeout keeps resty's default,
// which never times out on its own; callers bound requests through ctx.
func NewRestyClient(timeout time.Duration) *RestyClient {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &RestyClient{client: c}
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponse{resp: resp}, nil
}

type restyResponse struct {
	resp *resty.Response
}

func (r *restyResponse) Body() []byte    { return r.resp.Body() }
func (r *restyResponse) StatusCode() int { return r.resp.StatusCode() }
