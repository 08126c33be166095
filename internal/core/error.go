package core

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupported           = errors.New("NOT_SUPPORTED")
	ErrModuleNotResolved     = errors.New("MODULE_NOT_RESOLVE")
	ErrMissingConfig         = errors.New("MISSING_CONFIG")
	ErrUnmappedPlatformEntry = errors.New("UNMAPPED_PLATFORM_ENTRY")
)

// UnsupportedError reports a source pattern the compiler cannot translate.
// Fragment is the offending source rendered back as text.
type UnsupportedError struct {
	Message  string
	Fragment string
}

func (e *UnsupportedError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("%v: %s", ErrUnsupported, e.Message)
	}
	return fmt.Sprintf("%v: %s %q", ErrUnsupported, e.Message, e.Fragment)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

func Unsupported(message, fragment string) error {
	return &UnsupportedError{Message: message, Fragment: fragment}
}

func ModuleNotResolved(specifier string) error {
	return fmt.Errorf("%w: can not resolve component %q, please check you have this module installed", ErrModuleNotResolved, specifier)
}

func UnmappedPlatformEntry(pkgName, field string) error {
	return fmt.Errorf("%w: can not find compatible miniapp component %q (no miniappConfig[%q])", ErrUnmappedPlatformEntry, pkgName, field)
}
