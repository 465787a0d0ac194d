package location

import (
	"errors"
	"regexp"
	"strings"
)

// UNLcode uniquely identifies a location, e.g. SESTO for Stockholm.
type UNLcode string

// Unknown is the sentinel for "no location yet".
const Unknown UNLcode = ""

var unlCodePattern = regexp.MustCompile(`^[A-Za-z]{2}[A-Za-z2-9]{3}$`)

// NewUNLcode validates and normalizes a raw UN locode string.
func NewUNLcode(code string) (UNLcode, error) {
	if !unlCodePattern.MatchString(code) {
		return Unknown, ErrInvalidUNLcode
	}
	return UNLcode(strings.ToUpper(code)), nil
}

// Location represents a location of a cargo
type Location struct {
	UNLcode UNLcode
	Name    string
}

// SameIdentityAs checks whether two locations are the same place.
func (l Location) SameIdentityAs(other Location) bool {
	return l.UNLcode == other.UNLcode
}

// ErrUnknown is used when a location can't be found
var ErrUnknown = errors.New("unknown location")

// ErrInvalidUNLcode is used when a raw locode doesn't match the UN/LOCODE pattern.
var ErrInvalidUNLcode = errors.New("invalid UN locode")

// Repository represents a location store
type Repository interface {
	Find(UNLcode) (*Location, error)
	FindAll() []*Location
}
