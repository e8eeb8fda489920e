package sheets

import (
	"context"
	"fmt"
	"strings"

	sheetsv4 "google.golang.org/api/sheets/v4"

	"prebuilt-checkout/internal/models"
)

const SheetOrders = "Orders"

// Orders columns: order_id, session_id, customer_email, amount_total,
// currency, payment_status, price_ids, created_at. Row 1 is a header.
const colSessionID = 1

func (c *Client) readAll(ctx context.Context, sheet string) ([][]interface{}, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, sheet+"!A:Z").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *Client) appendRow(ctx context.Context, sheet string, row []interface{}) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{row}}
	_, err := c.srv.Spreadsheets.Values.Append(c.spreadsheetID, sheet+"!A:Z", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// ---------- Orders ----------

func (c *Client) AppendOrder(ctx context.Context, o models.Order) error {
	if strings.TrimSpace(o.SessionID) == "" {
		return fmt.Errorf("order has no session id")
	}
	err := c.appendRow(ctx, SheetOrders, []interface{}{
		o.OrderID, o.SessionID, o.CustomerEmail, o.AmountTotal,
		o.Currency, o.PaymentStatus, strings.Join(o.PriceIDs, ","), o.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("append order %s: %w", o.SessionID, err)
	}
	return nil
}

func (c *Client) HasOrder(ctx context.Context, sessionID string) (bool, error) {
	ids, err := c.ListSessionIDs(ctx)
	if err != nil {
		return false, fmt.Errorf("list orders: %w", err)
	}
	for _, id := range ids {
		if id == sessionID {
			return true, nil
		}
	}
	return false, nil
}

// ---------- helpers ----------

func get(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}
