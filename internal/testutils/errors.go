package testutils

import "errors"

var ErrInjected = errors.New("injected failure")
