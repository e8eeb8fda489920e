package sheets

import (
	"context"
	"strings"
)

func (c *Client) ListSessionIDs(ctx context.Context) ([]string, error) {
	values, err := c.readAll(ctx, SheetOrders)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for i := 1; i < len(values); i++ {
		id := strings.TrimSpace(get(values[i], colSessionID))
		if id == "" {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}
