package errs

import (
	"errors"
	"fmt"
)

type HttpError struct {
	Code    int
	Message string
	Data    any
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("code %d: %s, data: %v", e.Code, e.Message, e.Data)
}

// ErrMalformedInput marks composer input missing required fields. It is
// raised before any page is drawn so a document is never partially built.
var ErrMalformedInput = errors.New("malformed ticket input")

// ErrInvalidDate marks an unparsable booking or event date.
var ErrInvalidDate = errors.New("invalid date")

// DataFetchError wraps a failed pricing/occurrence/category lookup.
// Callers recover from it by degrading to the next fallback tier.
type DataFetchError struct {
	Op  string
	Err error
}

func (e *DataFetchError) Error() string {
	return fmt.Sprintf("data fetch %s: %v", e.Op, e.Err)
}

func (e *DataFetchError) Unwrap() error { return e.Err }

// RenderableAssetError wraps a failed asset render (QR encoding). The
// composer substitutes a placeholder visual instead of aborting.
type RenderableAssetError struct {
	Asset string
	Err   error
}

func (e *RenderableAssetError) Error() string {
	return fmt.Sprintf("render asset %s: %v", e.Asset, e.Err)
}

func (e *RenderableAssetError) Unwrap() error { return e.Err }
