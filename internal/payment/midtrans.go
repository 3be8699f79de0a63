package payment

import (
	"context"
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// MidtransGateway implements Gateway on top of the Midtrans Snap API.  The
// Snap transaction token plays the role of the client secret: the browser
// exchanges it with the gateway to confirm the charge.
type MidtransGateway struct {
	client snap.Client
}

// NewMidtransGateway builds a gateway client.  useProduction selects the
// live environment; anything else charges against the sandbox.
func NewMidtransGateway(serverKey string, useProduction bool) *MidtransGateway {
	g := &MidtransGateway{}
	env := midtrans.Sandbox
	if useProduction {
		env = midtrans.Production
	}
	g.client.New(serverKey, env)
	return g
}

// CreateIntent asks the gateway for a transaction token covering
// amountMinor.  The SDK has no context support, so the call runs in a
// goroutine and the context deadline decides how long to wait; on timeout
// the caller gets ErrGateway and no local state has been touched.
func (g *MidtransGateway) CreateIntent(ctx context.Context, amountMinor int64, orderID string) (Intent, error) {
	if amountMinor <= 0 {
		return Intent{}, fmt.Errorf("%w: non-positive amount %d", ErrGateway, amountMinor)
	}
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amountMinor,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
	}

	type result struct {
		resp *snap.Response
		err  *midtrans.Error
	}
	ch := make(chan result, 1)
	go func() {
		resp, err := g.client.CreateTransaction(req)
		ch <- result{resp: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		return Intent{}, fmt.Errorf("%w: %v", ErrGateway, ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return Intent{}, fmt.Errorf("%w: %v", ErrGateway, r.err)
		}
		return Intent{ClientSecret: r.resp.Token, OrderID: orderID, AmountMinor: amountMinor}, nil
	}
}
