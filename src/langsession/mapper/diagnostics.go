package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/uber/langsession/src/langsession/entity"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

const _diagnosticSource = "ts"

// LocationToPosition converts a 1-based backend location to a 0-based protocol position.
func LocationToPosition(l entity.Location) protocol.Position {
	return protocol.Position{
		Line:      uint32(max(l.Line-1, 0)),
		Character: uint32(max(l.Offset-1, 0)),
	}
}

// PathToDocumentURI converts a filesystem path into a document URI.
func PathToDocumentURI(path string) protocol.DocumentURI {
	return protocol.DocumentURI(uri.File(path))
}

// DiagnosticToProtocol converts a backend diagnostic into its protocol equivalent.
func DiagnosticToProtocol(d entity.Diagnostic) protocol.Diagnostic {
	result := protocol.Diagnostic{
		Range: protocol.Range{
			Start: LocationToPosition(d.Start),
			End:   LocationToPosition(d.End),
		},
		Severity: categoryToSeverity(d.Category),
		Source:   d.Source,
		Message:  d.Text,
	}
	if result.Source == "" {
		result.Source = _diagnosticSource
	}
	if d.Code != 0 {
		result.Code = d.Code
	}
	if d.ReportsUnnecessary {
		result.Tags = append(result.Tags, protocol.DiagnosticTagUnnecessary)
	}
	if d.ReportsDeprecated {
		result.Tags = append(result.Tags, protocol.DiagnosticTagDeprecated)
	}
	return result
}

// DiagnosticEventToPublishParams converts the body of a syntaxDiag or semanticDiag event
// into publishDiagnostics parameters.
func DiagnosticEventToPublishParams(body json.RawMessage) (*protocol.PublishDiagnosticsParams, error) {
	var event entity.DiagnosticEventBody
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("decoding diagnostics event: %w", err)
	}
	if event.File == "" {
		return nil, fmt.Errorf("diagnostics event is missing a file")
	}

	diagnostics := make([]protocol.Diagnostic, 0, len(event.Diagnostics))
	for _, d := range event.Diagnostics {
		diagnostics = append(diagnostics, DiagnosticToProtocol(d))
	}
	return &protocol.PublishDiagnosticsParams{
		URI:         PathToDocumentURI(event.File),
		Diagnostics: diagnostics,
	}, nil
}

func categoryToSeverity(category string) protocol.DiagnosticSeverity {
	switch category {
	case "error":
		return protocol.DiagnosticSeverityError
	case "warning":
		return protocol.DiagnosticSeverityWarning
	case "suggestion":
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityInformation
	}
}
