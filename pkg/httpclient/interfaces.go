package httpclient

import "context"

// Response is the subset of an HTTP response the API client inspects.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client performs GET requests. Implementations must not treat a non-2xx
// status as an error; callers decide what a successful status is.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
