package tssession

import (
	"context"

	"github.com/uber/langsession/src/langsession/mapper"
	"go.lsp.dev/jsonrpc2"
)

// Subscribe forwards the selected session signals to this connection until it
// unsubscribes or disconnects.
func (r *jsonRPCRouter) Subscribe(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSubscribeParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	res, err := r.conn.subscribe(ctx, *params)
	return reply(ctx, res, err)
}

func (r *jsonRPCRouter) Unsubscribe(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToUnsubscribeParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.conn.unsubscribe(ctx, params.SubscriptionID)
	return reply(ctx, nil, err)
}
