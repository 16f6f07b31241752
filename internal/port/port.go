// Package port parses the textual port directives accepted by the serve and
// create commands.
//
// A directive is a decimal port number in 1..65535, optionally followed by an
// ellipsis of two or more dots ("5500..."). The ellipsis allows the network
// layer to scan forward from the given port when it is busy. No sockets are
// touched here.
package port

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPort matches every error returned by Parse.
var ErrInvalidPort = errors.New("invalid port")

// InvalidPortError describes a rejected port directive.
type InvalidPortError struct {
	Label  string
	Token  string
	Reason string
	cause  error
}

func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("%s: invalid port %q: %s", e.Label, e.Token, e.Reason)
}

func (e *InvalidPortError) Is(target error) bool { return target == ErrInvalidPort }

func (e *InvalidPortError) Unwrap() error { return e.cause }

// Spec is a parsed port directive.
type Spec struct {
	Port uint16
	Scan bool
}

// String renders the directive in the form Parse accepts.
func (s Spec) String() string {
	if s.Scan {
		return strconv.FormatUint(uint64(s.Port), 10) + "..."
	}
	return strconv.FormatUint(uint64(s.Port), 10)
}

// Parse parses token. label names the setting in error messages
// (e.g. "API port").
func Parse(token, label string) (Spec, error) {
	number, ellipsis, scan := strings.Cut(token, ".")
	if scan && (ellipsis == "" || strings.Trim(ellipsis, ".") != "") {
		return Spec{}, &InvalidPortError{
			Label:  label,
			Token:  token,
			Reason: "the ellipsis must contain two or more periods and nothing else (ex: 5500...)",
		}
	}

	n, err := parseNumber(number)
	if err != nil {
		return Spec{}, &InvalidPortError{
			Label:  label,
			Token:  token,
			Reason: "must be a number between 1 and 65535, with an optional ellipsis at the end (ex: 5500...)",
			cause:  err,
		}
	}
	return Spec{Port: n, Scan: scan}, nil
}

func parseNumber(s string) (uint16, error) {
	// strconv accepts a leading sign; a port directive does not.
	if s == "" || s[0] < '0' || s[0] > '9' {
		return 0, strconv.ErrSyntax
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errors.New("port 0 is reserved")
	}
	return uint16(n), nil
}
