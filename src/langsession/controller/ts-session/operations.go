package tssession

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/uber/langsession/src/langsession/entity"
	"github.com/uber/langsession/src/langsession/internal/errors"
)

type fileArgs struct {
	File string `json:"file"`
}

type openArgs struct {
	File            string `json:"file"`
	FileContent     string `json:"fileContent"`
	ProjectRootPath string `json:"projectRootPath,omitempty"`
}

type positionArgs struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Offset int    `json:"offset"`
}

type completionsArgs struct {
	positionArgs
	IncludeExternalModuleExports bool `json:"includeExternalModuleExports"`
	IncludeInsertTextCompletions bool `json:"includeInsertTextCompletions"`
}

type completionDetailsArgs struct {
	positionArgs
	EntryNames []string `json:"entryNames"`
}

func toPositionArgs(p entity.PositionParams) positionArgs {
	return positionArgs{File: p.File, Line: p.Line, Offset: p.Offset}
}

func (c *controller) OpenFile(ctx context.Context, sessionID string, file string, content string) error {
	s, err := c.liveSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := c.notify(s, entity.CommandOpen, openArgs{
		File:            file,
		FileContent:     content,
		ProjectRootPath: s.ProjectPath,
	}); err != nil {
		return fmt.Errorf("opening %s: %w", file, err)
	}
	s.SetDocument(file, content)
	return nil
}

func (c *controller) CloseFile(ctx context.Context, sessionID string, file string) error {
	s, err := c.liveSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := c.notify(s, entity.CommandClose, fileArgs{File: file}); err != nil {
		return fmt.Errorf("closing %s: %w", file, err)
	}
	s.RemoveDocument(file)
	return nil
}

func (c *controller) ReloadProjects(ctx context.Context, sessionID string) error {
	s, err := c.liveSession(ctx, sessionID)
	if err != nil {
		return err
	}
	return c.notify(s, entity.CommandReloadProjects, nil)
}

func (c *controller) GetCompletions(ctx context.Context, params entity.PositionParams) ([]entity.CompletionEntry, error) {
	var entries []entity.CompletionEntry
	err := c.call(ctx, params.SessionID, entity.CommandCompletions, completionsArgs{
		positionArgs:                 toPositionArgs(params),
		IncludeExternalModuleExports: true,
		IncludeInsertTextCompletions: true,
	}, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *controller) GetCompletionDetails(ctx context.Context, params entity.CompletionDetailsParams) ([]entity.CompletionEntryDetails, error) {
	var details []entity.CompletionEntryDetails
	err := c.call(ctx, params.SessionID, entity.CommandCompletionEntryDetails, completionDetailsArgs{
		positionArgs: toPositionArgs(params.PositionParams),
		EntryNames:   params.EntryNames,
	}, &details)
	if err != nil {
		return nil, err
	}
	return details, nil
}

// GetQuickInfo returns nil when the backend has nothing to say about the
// position or the request fails. Only a missing session is reported.
func (c *controller) GetQuickInfo(ctx context.Context, params entity.PositionParams) (*entity.QuickInfo, error) {
	var info *entity.QuickInfo
	if err := c.call(ctx, params.SessionID, entity.CommandQuickInfo, toPositionArgs(params), &info); err != nil {
		if _, ok := errors.NotFoundSession(err); ok {
			return nil, err
		}
		c.logger.Debugw("quick info unavailable", "session", params.SessionID, "file", params.File, "error", err)
		return nil, nil
	}
	return info, nil
}

// GetSignatureHelp degrades to nil the same way GetQuickInfo does.
func (c *controller) GetSignatureHelp(ctx context.Context, params entity.PositionParams) (*entity.SignatureHelpItems, error) {
	var items *entity.SignatureHelpItems
	if err := c.call(ctx, params.SessionID, entity.CommandSignatureHelp, toPositionArgs(params), &items); err != nil {
		if _, ok := errors.NotFoundSession(err); ok {
			return nil, err
		}
		c.logger.Debugw("signature help unavailable", "session", params.SessionID, "file", params.File, "error", err)
		return nil, nil
	}
	return items, nil
}

func (c *controller) GetDefinition(ctx context.Context, params entity.PositionParams) ([]entity.FileSpan, error) {
	var spans []entity.FileSpan
	if err := c.call(ctx, params.SessionID, entity.CommandDefinition, toPositionArgs(params), &spans); err != nil {
		return nil, err
	}
	return spans, nil
}

func (c *controller) GetReferences(ctx context.Context, params entity.PositionParams) (*entity.References, error) {
	var refs *entity.References
	if err := c.call(ctx, params.SessionID, entity.CommandReferences, toPositionArgs(params), &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// GetDiagnostics runs the syntactic and semantic passes concurrently and
// concatenates them, syntax first. A failed pass contributes nothing.
func (c *controller) GetDiagnostics(ctx context.Context, sessionID string, file string) ([]entity.Diagnostic, error) {
	if _, err := c.liveSession(ctx, sessionID); err != nil {
		return nil, err
	}

	commands := []string{entity.CommandSyntacticDiagnosticsSync, entity.CommandSemanticDiagnosticsSync}
	results := make([][]entity.Diagnostic, len(commands))

	var wg sync.WaitGroup
	for i, command := range commands {
		wg.Add(1)
		go func(i int, command string) {
			defer wg.Done()

			var diags []entity.Diagnostic
			if err := c.call(ctx, sessionID, command, fileArgs{File: file}, &diags); err != nil {
				c.logger.Debugw("diagnostics pass failed", "session", sessionID, "command", command, "error", err)
				return
			}
			results[i] = diags
		}(i, command)
	}
	wg.Wait()

	diagnostics := make([]entity.Diagnostic, 0, len(results[0])+len(results[1]))
	for _, r := range results {
		diagnostics = append(diagnostics, r...)
	}
	return diagnostics, nil
}

// call sends command and decodes a non-empty response body into out.
func (c *controller) call(ctx context.Context, sessionID string, command string, args interface{}, out interface{}) error {
	body, err := c.Send(ctx, sessionID, command, args)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", command, err)
	}
	return nil
}
