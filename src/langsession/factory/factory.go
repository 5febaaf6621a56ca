package factory

import (
	"fmt"
	"math/rand"

	"github.com/gofrs/uuid"
	"github.com/uber/langsession/src/langsession/entity"
	"go.lsp.dev/jsonrpc2"
)

// UUID is a user-defined factory for a random uuid.UUID.
func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// SessionID returns a random session id.
func SessionID() string {
	return fmt.Sprintf("session-%s", UUID())
}

// JSONRPCRequest is a user-defined factory for a JSON-RPC request containing the specified method and parameters.
func JSONRPCRequest(method string, params interface{}) jsonrpc2.Request {
	req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), method, params)
	return req
}

// Location returns a random 1-based location.
func Location() entity.Location {
	return entity.Location{Line: rand.Intn(100) + 1, Offset: rand.Intn(100) + 1}
}

// Diagnostic returns a diagnostic spanning a random single line.
func Diagnostic(category string) entity.Diagnostic {
	start := Location()
	return entity.Diagnostic{
		Start:    start,
		End:      entity.Location{Line: start.Line, Offset: start.Offset + rand.Intn(10) + 1},
		Text:     fmt.Sprintf("sample %s message", category),
		Code:     rand.Intn(9000) + 1000,
		Category: category,
	}
}
