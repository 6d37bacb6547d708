// Package client provides the HTTP client used to fetch resource bundles.
//
// Built on go-resty/resty over the pooled transport from
// hashicorp/go-retryablehttp, with an optional token bucket from
// golang.org/x/time/rate in front of every request.
//
// Example Usage:
//
//	c := client.NewClient(client.Config{Timeout: 30 * time.Second})
//	req, err := c.Request(ctx)
//	if err != nil {
//		return err
//	}
//	resp, err := req.Get("http://example.com/pack1.rcc")
package client
