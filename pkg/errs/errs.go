package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConfig covers the config and credentials files.
	KindConfig
	// KindNetwork means the service did not answer, or answered with a non-2xx status.
	KindNetwork
	// KindResponseShape means the service answered but not the way we expected.
	KindResponseShape
	// KindInput is an identifier that is neither a VOD id nor a channel name.
	KindInput
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config error"
	case KindNetwork:
		return "network error"
	case KindResponseShape:
		return "unexpected response"
	case KindInput:
		return "invalid input"
	default:
		return "unknown error"
	}
}

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Config(op string, err error) error {
	return &Error{Kind: KindConfig, Op: op, Err: err}
}

func Network(op string, err error) error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

func Shape(op string, err error) error {
	return &Error{Kind: KindResponseShape, Op: op, Err: err}
}

func Input(op string, err error) error {
	return &Error{Kind: KindInput, Op: op, Err: err}
}

// KindOf returns the kind of the outermost *Error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
