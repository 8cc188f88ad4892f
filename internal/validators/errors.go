package validators

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidInput is wrapped by every rule violation below.
	ErrInvalidInput = errors.New("invalid input")

	ErrEmptyTestType     = fmt.Errorf("%w: test type is required", ErrInvalidInput)
	ErrInvalidTestResult = fmt.Errorf("%w: test result is not valid JSON", ErrInvalidInput)
	ErrEmptyDiaryContent = fmt.Errorf("%w: diary content is required", ErrInvalidInput)
	ErrInvalidBirthday   = fmt.Errorf("%w: birthday must be YYYY-MM-DD", ErrInvalidInput)
	ErrEmptyContactName  = fmt.Errorf("%w: contact name is required", ErrInvalidInput)
	ErrNegativeTimestamp = fmt.Errorf("%w: timestamp is negative", ErrInvalidInput)
	ErrFieldTooLong      = fmt.Errorf("%w: value is too long", ErrInvalidInput)
)
