// Package payment holds the payment gateway client and the settlement
// coordinator that turns a pending selection into a confirmed enrollment.
package payment

import (
	"context"
	"errors"
)

// Intent is the gateway's answer to a create-intent request.  ClientSecret
// is handed back to the browser, which completes the charge directly with
// the gateway; the server never sees card data.
type Intent struct {
	ClientSecret string `json:"clientSecret"`
	OrderID      string `json:"orderId"`
	AmountMinor  int64  `json:"-"`
}

// Gateway is the external card processor.  Creating an intent has no local
// side effects: nothing is written before the gateway call succeeds, and a
// stalled call is cut off by the context deadline.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, orderID string) (Intent, error)
}

// ErrGateway wraps every failure talking to the external processor,
// including timeouts.  Handlers surface it as a 500 with a generic message.
var ErrGateway = errors.New("payment gateway error")
