package entity

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the resolution layer can surface.
type ErrorKind string

const (
	KindEmptyAddress         ErrorKind = "EmptyAddress"
	KindUnsupportedNetwork   ErrorKind = "UnsupportedNetwork"
	KindMissingCredential    ErrorKind = "MissingCredential"
	KindInvalidAddressFormat ErrorKind = "InvalidAddressFormat"
	KindRateLimited          ErrorKind = "RateLimited"
	KindNotFound             ErrorKind = "NotFound"
	KindTransport            ErrorKind = "TransportError"
	KindProvider             ErrorKind = "ProviderError"
)

// Sentinels for errors.Is checks against a *BalanceError.
var (
	ErrEmptyAddress         = errors.New("address is required")
	ErrUnsupportedNetwork   = errors.New("network is not supported")
	ErrMissingCredential    = errors.New("missing or rejected API credential")
	ErrInvalidAddressFormat = errors.New("invalid address format")
	ErrRateLimited          = errors.New("rate limit exceeded")
	ErrNotFound             = errors.New("address not found")
	ErrTransport            = errors.New("upstream transport failure")
	ErrProvider             = errors.New("upstream provider error")
)

var sentinelByKind = map[ErrorKind]error{
	KindEmptyAddress:         ErrEmptyAddress,
	KindUnsupportedNetwork:   ErrUnsupportedNetwork,
	KindMissingCredential:    ErrMissingCredential,
	KindInvalidAddressFormat: ErrInvalidAddressFormat,
	KindRateLimited:          ErrRateLimited,
	KindNotFound:             ErrNotFound,
	KindTransport:            ErrTransport,
	KindProvider:             ErrProvider,
}

// BalanceError is the single error contract of the resolution layer.
// Message is meant for end users; Err keeps the underlying cause for logs.
type BalanceError struct {
	Kind    ErrorKind
	Network string
	Message string
	Err     error
}

// NewBalanceError creates a BalanceError without an underlying cause.
func NewBalanceError(kind ErrorKind, network, message string) *BalanceError {
	return &BalanceError{Kind: kind, Network: network, Message: message}
}

// WrapBalanceError creates a BalanceError that keeps cause for errors.Unwrap.
func WrapBalanceError(kind ErrorKind, network, message string, cause error) *BalanceError {
	return &BalanceError{Kind: kind, Network: network, Message: message, Err: cause}
}

func (e *BalanceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if sentinel, ok := sentinelByKind[e.Kind]; ok {
		return sentinel.Error()
	}
	return string(e.Kind)
}

func (e *BalanceError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel that corresponds to the error kind.
func (e *BalanceError) Is(target error) bool {
	sentinel, ok := sentinelByKind[e.Kind]
	return ok && sentinel == target
}

// Detail returns the message together with the underlying cause, for logging.
func (e *BalanceError) Detail() string {
	if e.Err == nil {
		return e.Error()
	}
	return fmt.Sprintf("%s: %v", e.Error(), e.Err)
}

// KindOf extracts the ErrorKind from err. Errors outside the taxonomy report KindProvider.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var be *BalanceError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindProvider
}
