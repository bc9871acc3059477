// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// MissingChainDeclaration: the source has no [syllable] section.
	MissingChainDeclaration ErrorKind = iota + 1
	// EmptyChainLine: a [syllable] section ended without a content line.
	EmptyChainLine
	// ContentOutsideGroup: a content line appeared before any header.
	ContentOutsideGroup
	// ZeroRepeatCount: a group line used 0 as a repeat count.
	ZeroRepeatCount
	// RepeatCountTooLarge: a repeat count exceeded MaxRepeat.
	RepeatCountTooLarge
	// InvalidPercentage: a chain percentage was outside 1-100 or had no
	// following group.
	InvalidPercentage
	// UnknownGroupReference: the chain named an undeclared group.
	UnknownGroupReference
	// EmptyGroup: the chain named a group that holds no tokens.
	EmptyGroup
)

// Sentinel errors matched by errors.Is against a *ParseError.
var (
	ErrMissingChainDeclaration = errors.New("no syllables given")
	ErrEmptyChainLine          = errors.New("syllable sequence not defined")
	ErrContentOutsideGroup     = errors.New("values outside of a syllable group")
	ErrZeroRepeatCount         = errors.New("repeat count is zero")
	ErrRepeatCountTooLarge     = errors.New("repeat count too large")
	ErrInvalidPercentage       = errors.New("invalid syllable percentage")
	ErrUnknownGroupReference   = errors.New("no syllable group matches")
	ErrEmptyGroup              = errors.New("syllable group is empty")
)

var kindSentinels = map[ErrorKind]error{
	MissingChainDeclaration: ErrMissingChainDeclaration,
	EmptyChainLine:          ErrEmptyChainLine,
	ContentOutsideGroup:     ErrContentOutsideGroup,
	ZeroRepeatCount:         ErrZeroRepeatCount,
	RepeatCountTooLarge:     ErrRepeatCountTooLarge,
	InvalidPercentage:       ErrInvalidPercentage,
	UnknownGroupReference:   ErrUnknownGroupReference,
	EmptyGroup:              ErrEmptyGroup,
}

func (k ErrorKind) String() string {
	switch k {
	case MissingChainDeclaration:
		return "MissingChainDeclaration"
	case EmptyChainLine:
		return "EmptyChainLine"
	case ContentOutsideGroup:
		return "ContentOutsideGroup"
	case ZeroRepeatCount:
		return "ZeroRepeatCount"
	case RepeatCountTooLarge:
		return "RepeatCountTooLarge"
	case InvalidPercentage:
		return "InvalidPercentage"
	case UnknownGroupReference:
		return "UnknownGroupReference"
	case EmptyGroup:
		return "EmptyGroup"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError reports malformed rule source. Line is 1-based; 0 means the
// error is not tied to a single line.
type ParseError struct {
	Kind ErrorKind
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// Unwrap returns the sentinel for e.Kind so errors.Is works on kinds.
func (e *ParseError) Unwrap() error {
	return kindSentinels[e.Kind]
}

func newParseError(kind ErrorKind, line int, format string, args ...any) *ParseError {
	msg := kindSentinels[kind].Error()
	if format != "" {
		msg += ": " + fmt.Sprintf(format, args...)
	}
	return &ParseError{Kind: kind, Line: line, Msg: msg}
}
