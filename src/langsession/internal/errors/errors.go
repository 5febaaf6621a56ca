package errors

import stderr "errors"

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

var (
	// NoSessionIDError reports that the request is missing a session id.
	NoSessionIDError = New("session id is required")
	// NoProjectPathError reports that the request is missing a project path.
	NoProjectPathError = New("project path is required")
	// NoFileError reports that the request is missing a file.
	NoFileError = New("file is required")
)

// IsBadRequest reports whether the error is a bad request from the caller.
func IsBadRequest(e error) bool {
	return stderr.Is(e, NoSessionIDError) || stderr.Is(e, NoProjectPathError) || stderr.Is(e, NoFileError)
}
