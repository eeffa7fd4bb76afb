package mindmup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	apperrors "github.com/matzehuels/mindmup/pkg/errors"
	"github.com/matzehuels/mindmup/pkg/idea"
)

var (
	// ErrInvalidDocument is returned when a wire document is structurally
	// malformed: a non-positive id, a non-numeric rank or a null child.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrUnsupportedFormatVersion is returned by Decode for documents whose
	// formatVersion is missing or differs from [idea.FormatVersion].
	ErrUnsupportedFormatVersion = errors.New("unsupported format version")
)

// UnsupportedFormatVersionError carries the offending format version.
type UnsupportedFormatVersionError struct {
	Version int // 0 when the field was missing
}

func (e *UnsupportedFormatVersionError) Error() string {
	if e.Version == 0 {
		return fmt.Sprintf("unsupported format version: missing (want %d)", idea.FormatVersion)
	}
	return fmt.Sprintf("unsupported format version %d (want %d)", e.Version, idea.FormatVersion)
}

func (e *UnsupportedFormatVersionError) Is(target error) bool {
	return target == ErrUnsupportedFormatVersion
}

// Code maps codec and tree errors to application error codes for the CLI
// and the HTTP API.
func Code(err error) apperrors.Code {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case err == nil:
		return ""
	case apperrors.GetCode(err) != "":
		return apperrors.GetCode(err)
	case errors.Is(err, ErrUnsupportedFormatVersion):
		return apperrors.ErrCodeUnsupportedVersion
	case errors.Is(err, idea.ErrDuplicateID):
		return apperrors.ErrCodeDuplicateID
	case errors.Is(err, idea.ErrLinkEndpointNotFound):
		return apperrors.ErrCodeLinkEndpoint
	case errors.Is(err, idea.ErrMeasurementParse):
		return apperrors.ErrCodeInvalidMeasurements
	case errors.Is(err, ErrInvalidDocument),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr),
		errors.Is(err, io.ErrUnexpectedEOF):
		return apperrors.ErrCodeInvalidFormat
	case errors.Is(err, os.ErrNotExist):
		return apperrors.ErrCodeFileNotFound
	}
	return apperrors.ErrCodeInternal
}
