package mapper

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/uber/langsession/src/langsession/entity"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/uri"
)

// RequestToStartServerParams maps the parameters from a jsonrpc2.Request into entity.StartServerParams.
func RequestToStartServerParams(req jsonrpc2.Request) (*entity.StartServerParams, error) {
	params := entity.StartServerParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	params.ProjectPath = FileToPath(params.ProjectPath)
	return &params, nil
}

// RequestToSessionParams maps the parameters from a jsonrpc2.Request into entity.SessionParams.
func RequestToSessionParams(req jsonrpc2.Request) (*entity.SessionParams, error) {
	params := entity.SessionParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// RequestToFileParams maps the parameters from a jsonrpc2.Request into entity.FileParams.
func RequestToFileParams(req jsonrpc2.Request) (*entity.FileParams, error) {
	params := entity.FileParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	params.File = FileToPath(params.File)
	return &params, nil
}

// RequestToPositionParams maps the parameters from a jsonrpc2.Request into entity.PositionParams.
func RequestToPositionParams(req jsonrpc2.Request) (*entity.PositionParams, error) {
	params := entity.PositionParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	params.File = FileToPath(params.File)
	return &params, nil
}

// RequestToCompletionDetailsParams maps the parameters from a jsonrpc2.Request into entity.CompletionDetailsParams.
func RequestToCompletionDetailsParams(req jsonrpc2.Request) (*entity.CompletionDetailsParams, error) {
	params := entity.CompletionDetailsParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	params.File = FileToPath(params.File)
	return &params, nil
}

// RequestToSubscribeParams maps the parameters from a jsonrpc2.Request into entity.SubscribeParams.
// Unknown topics are rejected.
func RequestToSubscribeParams(req jsonrpc2.Request) (*entity.SubscribeParams, error) {
	params := entity.SubscribeParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	for _, topic := range params.Topics {
		if !topic.Valid() {
			return nil, wrapErrParse(fmt.Errorf("unknown topic %q", topic))
		}
	}
	return &params, nil
}

// RequestToUnsubscribeParams maps the parameters from a jsonrpc2.Request into entity.UnsubscribeParams.
func RequestToUnsubscribeParams(req jsonrpc2.Request) (*entity.UnsubscribeParams, error) {
	params := entity.UnsubscribeParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// FileToPath converts a file URI to a filesystem path. Plain paths are cleaned.
func FileToPath(file string) string {
	if file == "" {
		return ""
	}
	if strings.HasPrefix(file, uri.FileScheme+"://") {
		return uri.URI(file).Filename()
	}
	return filepath.Clean(file)
}

func wrapErrParse(err error) error {
	return fmt.Errorf("%w: %w", jsonrpc2.ErrParse, err)
}
