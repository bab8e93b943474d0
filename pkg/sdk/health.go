package clusterkraf

import (
	"context"
	"time"
)

// Ping runs a one-point clustering pass to verify the client works.
func (c *Client) Ping(ctx context.Context) error {
	start := time.Now()
	err := c.svc.Probe(ctx)
	c.obs.observe("ping", start, err)
	return err
}
