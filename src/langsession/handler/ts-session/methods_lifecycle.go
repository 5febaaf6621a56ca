package tssession

import (
	"context"

	"github.com/uber/langsession/src/langsession/entity"
	"github.com/uber/langsession/src/langsession/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) Start(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToStartServerParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	res, err := r.ctrl.StartServer(ctx, *params)
	return reply(ctx, res, err)
}

func (r *jsonRPCRouter) Stop(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSessionParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.ctrl.StopServer(ctx, params.SessionID)
	return reply(ctx, nil, err)
}

func (r *jsonRPCRouter) IsAlive(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSessionParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	alive := r.ctrl.IsSessionAlive(ctx, params.SessionID)
	return reply(ctx, entity.AliveResult{Alive: alive}, nil)
}

func (r *jsonRPCRouter) ActiveSessions(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	return reply(ctx, r.ctrl.GetActiveSessions(ctx), nil)
}

func (r *jsonRPCRouter) SessionInfo(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSessionParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	res, err := r.ctrl.SessionInfo(ctx, params.SessionID)
	return reply(ctx, res, err)
}

func (r *jsonRPCRouter) ReloadProjects(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSessionParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.ctrl.ReloadProjects(ctx, params.SessionID)
	return reply(ctx, nil, err)
}
