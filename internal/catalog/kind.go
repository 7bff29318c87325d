package catalog

import (
	"fmt"
	"strings"
)

// Kind is one of the three catalog families a booking draws from
type Kind string

const (
	KindDecoration Kind = "decoration"
	KindFurniture  Kind = "furniture"
	KindUtensil    Kind = "utensil"
)

// AllKinds lists every catalog kind in display order
func AllKinds() []Kind {
	return []Kind{KindDecoration, KindUtensil, KindFurniture}
}

func (k Kind) IsValid() bool {
	switch k {
	case KindDecoration, KindFurniture, KindUtensil:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind accepts the singular or plural form in any case ("Utensils", "decoration")
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s"))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
	return k, nil
}
