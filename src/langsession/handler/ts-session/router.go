package tssession

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	controller "github.com/uber/langsession/src/langsession/controller/ts-session"
	"github.com/uber/langsession/src/langsession/mapper"
	"go.lsp.dev/jsonrpc2"
)

// Methods served over the JSON-RPC inbound.
const (
	MethodStart          = "tsserver/start"
	MethodStop           = "tsserver/stop"
	MethodIsAlive        = "tsserver/isAlive"
	MethodActiveSessions = "tsserver/activeSessions"
	MethodSessionInfo    = "tsserver/sessionInfo"
	MethodReloadProjects = "tsserver/reloadProjects"

	MethodOpenFile   = "tsserver/openFile"
	MethodUpdateFile = "tsserver/updateFile"
	MethodCloseFile  = "tsserver/closeFile"

	MethodCompletions       = "tsserver/completions"
	MethodCompletionDetails = "tsserver/completionDetails"
	MethodQuickInfo         = "tsserver/quickInfo"
	MethodDiagnostics       = "tsserver/diagnostics"
	MethodDefinition        = "tsserver/definition"
	MethodReferences        = "tsserver/references"
	MethodSignatureHelp     = "tsserver/signatureHelp"

	MethodSubscribe   = "tsserver/subscribe"
	MethodUnsubscribe = "tsserver/unsubscribe"
)

type jsonRPCRouter struct {
	ctrl  controller.Controller
	conn  *connection
	uuid  uuid.UUID
	stats tally.Scope
}

// HandleReq handles routing for a single request.
func (r *jsonRPCRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	ctx = mapper.ConnectionUUIDToContext(ctx, r.uuid)
	r.stats.Tagged(map[string]string{"method": req.Method()}).Counter("calls").Inc(1)

	switch req.Method() {
	// Lifecycle related methods.
	case MethodStart:
		return r.Start(ctx, reply, req)

	case MethodStop:
		return r.Stop(ctx, reply, req)

	case MethodIsAlive:
		return r.IsAlive(ctx, reply, req)

	case MethodActiveSessions:
		return r.ActiveSessions(ctx, reply, req)

	case MethodSessionInfo:
		return r.SessionInfo(ctx, reply, req)

	case MethodReloadProjects:
		return r.ReloadProjects(ctx, reply, req)

	// Document related methods.
	case MethodOpenFile:
		return r.OpenFile(ctx, reply, req)

	case MethodUpdateFile:
		return r.UpdateFile(ctx, reply, req)

	case MethodCloseFile:
		return r.CloseFile(ctx, reply, req)

	// Code intelligence methods.
	case MethodCompletions:
		return r.Completions(ctx, reply, req)

	case MethodCompletionDetails:
		return r.CompletionDetails(ctx, reply, req)

	case MethodQuickInfo:
		return r.QuickInfo(ctx, reply, req)

	case MethodDiagnostics:
		return r.Diagnostics(ctx, reply, req)

	case MethodDefinition:
		return r.Definition(ctx, reply, req)

	case MethodReferences:
		return r.References(ctx, reply, req)

	case MethodSignatureHelp:
		return r.SignatureHelp(ctx, reply, req)

	// Event methods.
	case MethodSubscribe:
		return r.Subscribe(ctx, reply, req)

	case MethodUnsubscribe:
		return r.Unsubscribe(ctx, reply, req)

	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

// UUID returns the UUID of the connection served by this router.
func (r *jsonRPCRouter) UUID() uuid.UUID {
	return r.uuid
}
