package tui

import "errors"

// ErrUnexpectedModel means a prompt program returned a model of another
// type, which only happens when the program was killed.
var ErrUnexpectedModel = errors.New("prompt finished with an unexpected model")
