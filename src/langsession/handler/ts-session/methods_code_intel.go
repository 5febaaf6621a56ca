package tssession

import (
	"context"

	"github.com/uber/langsession/src/langsession/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) Completions(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToPositionParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	res, err := r.ctrl.GetCompletions(ctx, *params)
	return reply(ctx, res, err)
}

func (r *jsonRPCRouter) CompletionDetails(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToCompletionDetailsParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	res, err := r.ctrl.GetCompletionDetails(ctx, *params)
	return reply(ctx, res, err)
}

func (r *jsonRPCRouter) QuickInfo(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToPositionParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	res, err := r.ctrl.GetQuickInfo(ctx, *params)
	return reply(ctx, res, err)
}

// Diagnostics reads only the session and file of the request.
func (r *jsonRPCRouter) Diagnostics(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToFileParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	res, err := r.ctrl.GetDiagnostics(ctx, params.SessionID, params.File)
	return reply(ctx, res, err)
}

func (r *jsonRPCRouter) Definition(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToPositionParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	res, err := r.ctrl.GetDefinition(ctx, *params)
	return reply(ctx, res, err)
}

func (r *jsonRPCRouter) References(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToPositionParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	res, err := r.ctrl.GetReferences(ctx, *params)
	return reply(ctx, res, err)
}

func (r *jsonRPCRouter) SignatureHelp(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToPositionParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	res, err := r.ctrl.GetSignatureHelp(ctx, *params)
	return reply(ctx, res, err)
}
