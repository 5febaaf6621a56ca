package tssession

import (
	"context"

	"github.com/uber/langsession/src/langsession/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) OpenFile(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToFileParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.ctrl.OpenFile(ctx, params.SessionID, params.File, params.Content)
	return reply(ctx, nil, err)
}

func (r *jsonRPCRouter) UpdateFile(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToFileParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.ctrl.UpdateFile(ctx, params.SessionID, params.File, params.Content)
	return reply(ctx, nil, err)
}

func (r *jsonRPCRouter) CloseFile(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToFileParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.ctrl.CloseFile(ctx, params.SessionID, params.File)
	return reply(ctx, nil, err)
}
