package resolver

import (
	"errors"
	"strings"
	"twitchlink/pkg/errs"
	"unicode"
)

type Target int

const (
	TargetVOD Target = iota + 1
	TargetLive
)

func (t Target) String() string {
	switch t {
	case TargetVOD:
		return "vod"
	case TargetLive:
		return "live"
	default:
		return "unknown"
	}
}

// Classify decides which pipeline handles identifier: all digits is a VOD
// id, anything with a letter is a channel name. Channel names are returned
// lower-cased.
func Classify(identifier string) (Target, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return 0, "", errs.Input("resolver.classify", errors.New("empty identifier"))
	}

	digits := true
	for _, r := range identifier {
		if unicode.IsLetter(r) {
			return TargetLive, strings.ToLower(identifier), nil
		}
		if r < '0' || r > '9' {
			digits = false
		}
	}

	if !digits {
		return 0, "", errs.Input("resolver.classify", errors.New("identifier is neither a VOD id nor a channel name"))
	}
	return TargetVOD, identifier, nil
}
