package entity

import "encoding/json"

// Backend command names.
const (
	CommandOpen                     = "open"
	CommandChange                   = "change"
	CommandClose                    = "close"
	CommandCompletions              = "completions"
	CommandCompletionEntryDetails   = "completionEntryDetails"
	CommandQuickInfo                = "quickinfo"
	CommandSyntacticDiagnosticsSync = "syntacticDiagnosticsSync"
	CommandSemanticDiagnosticsSync  = "semanticDiagnosticsSync"
	CommandDefinition               = "definition"
	CommandReferences               = "references"
	CommandSignatureHelp            = "signatureHelp"
	CommandReloadProjects           = "reloadProjects"
	CommandExit                     = "exit"
)

// Backend event names that are re-published as diagnostics.
const (
	EventSyntaxDiag   = "syntaxDiag"
	EventSemanticDiag = "semanticDiag"
)

// Location is a 1-based line and character offset within a file.
type Location struct {
	Line   int `json:"line"`
	Offset int `json:"offset"`
}

// TextSpan is a range between two locations.
type TextSpan struct {
	Start Location `json:"start"`
	End   Location `json:"end"`
}

// FileSpan is a TextSpan within a named file.
type FileSpan struct {
	File         string    `json:"file"`
	Start        Location  `json:"start"`
	End          Location  `json:"end"`
	ContextStart *Location `json:"contextStart,omitempty"`
	ContextEnd   *Location `json:"contextEnd,omitempty"`
}

// SymbolDisplayPart is one fragment of rendered symbol text.
type SymbolDisplayPart struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

// JSDocTagInfo is a documentation tag. Text is either a string or a list of display parts depending on the backend version.
type JSDocTagInfo struct {
	Name string          `json:"name"`
	Text json.RawMessage `json:"text,omitempty"`
}

// CompletionEntry is one item of a completions response.
type CompletionEntry struct {
	Name            string    `json:"name"`
	Kind            string    `json:"kind"`
	KindModifiers   string    `json:"kindModifiers,omitempty"`
	SortText        string    `json:"sortText"`
	InsertText      string    `json:"insertText,omitempty"`
	ReplacementSpan *TextSpan `json:"replacementSpan,omitempty"`
	HasAction       bool      `json:"hasAction,omitempty"`
	Source          string    `json:"source,omitempty"`
	IsRecommended   bool      `json:"isRecommended,omitempty"`
}

// CodeEdit replaces the text between Start and End.
type CodeEdit struct {
	Start   Location `json:"start"`
	End     Location `json:"end"`
	NewText string   `json:"newText"`
}

// FileCodeEdits groups edits by file.
type FileCodeEdits struct {
	FileName    string     `json:"fileName"`
	TextChanges []CodeEdit `json:"textChanges"`
}

// CodeAction is an edit offered alongside a completion, such as an auto-import.
type CodeAction struct {
	Description string          `json:"description"`
	Changes     []FileCodeEdits `json:"changes"`
}

// CompletionEntryDetails describes a completion entry in full.
type CompletionEntryDetails struct {
	Name          string              `json:"name"`
	Kind          string              `json:"kind"`
	KindModifiers string              `json:"kindModifiers,omitempty"`
	DisplayParts  []SymbolDisplayPart `json:"displayParts"`
	Documentation []SymbolDisplayPart `json:"documentation,omitempty"`
	Tags          []JSDocTagInfo      `json:"tags,omitempty"`
	CodeActions   []CodeAction        `json:"codeActions,omitempty"`
	Source        []SymbolDisplayPart `json:"source,omitempty"`
}

// QuickInfo is the hover description of the symbol at a location.
type QuickInfo struct {
	Kind          string          `json:"kind"`
	KindModifiers string          `json:"kindModifiers,omitempty"`
	Start         Location        `json:"start"`
	End           Location        `json:"end"`
	DisplayString string          `json:"displayString"`
	Documentation json.RawMessage `json:"documentation,omitempty"`
	Tags          []JSDocTagInfo  `json:"tags,omitempty"`
}

// Diagnostic is one compiler message.
type Diagnostic struct {
	Start              Location `json:"start"`
	End                Location `json:"end"`
	Text               string   `json:"text"`
	Code               int      `json:"code,omitempty"`
	Category           string   `json:"category"`
	Source             string   `json:"source,omitempty"`
	ReportsUnnecessary bool     `json:"reportsUnnecessary,omitempty"`
	ReportsDeprecated  bool     `json:"reportsDeprecated,omitempty"`
}

// DiagnosticEventBody is the body of syntaxDiag and semanticDiag events.
type DiagnosticEventBody struct {
	File        string       `json:"file"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// ReferenceEntry is one reference to a symbol.
type ReferenceEntry struct {
	FileSpan
	LineText      string `json:"lineText,omitempty"`
	IsWriteAccess bool   `json:"isWriteAccess"`
	IsDefinition  bool   `json:"isDefinition,omitempty"`
}

// References is the body of a references response.
type References struct {
	Refs                []ReferenceEntry `json:"refs"`
	SymbolName          string           `json:"symbolName"`
	SymbolStartOffset   int              `json:"symbolStartOffset"`
	SymbolDisplayString string           `json:"symbolDisplayString"`
}

// SignatureHelpParameter describes one parameter of a signature.
type SignatureHelpParameter struct {
	Name          string              `json:"name"`
	Documentation []SymbolDisplayPart `json:"documentation,omitempty"`
	DisplayParts  []SymbolDisplayPart `json:"displayParts"`
	IsOptional    bool                `json:"isOptional"`
}

// SignatureHelpItem is one candidate signature.
type SignatureHelpItem struct {
	IsVariadic            bool                     `json:"isVariadic"`
	PrefixDisplayParts    []SymbolDisplayPart      `json:"prefixDisplayParts"`
	SuffixDisplayParts    []SymbolDisplayPart      `json:"suffixDisplayParts"`
	SeparatorDisplayParts []SymbolDisplayPart      `json:"separatorDisplayParts"`
	Parameters            []SignatureHelpParameter `json:"parameters"`
	Documentation         []SymbolDisplayPart      `json:"documentation,omitempty"`
	Tags                  []JSDocTagInfo           `json:"tags,omitempty"`
}

// SignatureHelpItems is the body of a signatureHelp response.
type SignatureHelpItems struct {
	Items             []SignatureHelpItem `json:"items"`
	ApplicableSpan    TextSpan            `json:"applicableSpan"`
	SelectedItemIndex int                 `json:"selectedItemIndex"`
	ArgumentIndex     int                 `json:"argumentIndex"`
	ArgumentCount     int                 `json:"argumentCount"`
}
