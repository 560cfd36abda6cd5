package apierr

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Kind identifies one Yelp API failure category.
type Kind int

const (
	// KindUnknown is reported for error ids the registry doesn't know about.
	KindUnknown Kind = iota
	KindBase
	KindAlreadyConfigured
	KindMissingAPIKeys
	KindMissingLatLng
	KindBoundingBoxNotComplete
	KindInternalError
	KindExceededRequests
	KindMissingParameter
	KindInvalidParameter
	KindInvalidSignature
	KindInvalidOAuthCredentials
	KindInvalidOAuthUser
	KindAccountUnconfirmed
	KindUnavailableForLocation
	KindAreaTooLarge
	KindMultipleLocations
	KindBusinessUnavailable

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:                 "Unknown",
	KindBase:                    "Base",
	KindAlreadyConfigured:       "AlreadyConfigured",
	KindMissingAPIKeys:          "MissingAPIKeys",
	KindMissingLatLng:           "MissingLatLng",
	KindBoundingBoxNotComplete:  "BoundingBoxNotComplete",
	KindInternalError:           "InternalError",
	KindExceededRequests:        "ExceededRequests",
	KindMissingParameter:        "MissingParameter",
	KindInvalidParameter:        "InvalidParameter",
	KindInvalidSignature:        "InvalidSignature",
	KindInvalidOAuthCredentials: "InvalidOAuthCredentials",
	KindInvalidOAuthUser:        "InvalidOAuthUser",
	KindAccountUnconfirmed:      "AccountUnconfirmed",
	KindUnavailableForLocation:  "UnavailableForLocation",
	KindAreaTooLarge:            "AreaTooLarge",
	KindMultipleLocations:       "MultipleLocations",
	KindBusinessUnavailable:     "BusinessUnavailable",
}

var defaultMessages = map[Kind]string{
	KindAlreadyConfigured:      "Gem cannot be reconfigured.  Initialize a new instance of Yelp::Client.",
	KindMissingAPIKeys:         "You're missing an API key",
	KindMissingLatLng:          "Missing required latitude or longitude parameters",
	KindBoundingBoxNotComplete: "Missing required values for bounding box",
}

// String returns the variant name, e.g. "InvalidOAuthUser".
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// DefaultMessage is the text used when an error of this kind is built
// without a message. Only configuration and parameter kinds have one.
func (k Kind) DefaultMessage() string {
	return defaultMessages[k]
}

// ClassName turns a wire id into a variant name:
// "invalid_oauth_credentials" -> "InvalidOAuthCredentials".
func ClassName(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for seg := range strings.SplitSeq(id, "_") {
		b.WriteString(capitalize(seg))
	}
	// the API's only acronym
	return strings.ReplaceAll(b.String(), "Oauth", "OAuth")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

var (
	registryOnce sync.Once
	registry     map[string]Kind
)

func kindsByName() map[string]Kind {
	registryOnce.Do(func() {
		registry = make(map[string]Kind, kindCount)
		for k := KindBase; k < kindCount; k++ {
			registry[k.String()] = k
		}
	})
	return registry
}

// Lookup resolves a wire error id to its Kind.
func Lookup(id string) (Kind, bool) {
	k, ok := kindsByName()[ClassName(id)]
	return k, ok
}
