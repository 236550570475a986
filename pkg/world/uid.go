package world

import "github.com/google/uuid"

// UID identifies an entity in the world arena. By convention uids carry a
// type prefix (Char_, Item_, Area_, Link_) so resolvers can prefer a uid
// match over a name match without a schema lookup.
type UID string

const (
	prefixCharacter = "Char"
	prefixItem      = "Item"
	prefixArea      = "Area"
	prefixLink      = "Link"
	prefixEvent     = "Evt"
)

func newUID(prefix string) UID {
	return UID(prefix + "_" + uuid.NewString())
}

// NewCharacterUID mints a fresh Character uid.
func NewCharacterUID() UID { return newUID(prefixCharacter) }

// NewItemUID mints a fresh Item uid.
func NewItemUID() UID { return newUID(prefixItem) }

// NewAreaUID mints a fresh Area uid.
func NewAreaUID() UID { return newUID(prefixArea) }

// NewLinkingPointUID mints a fresh LinkingPoint uid.
func NewLinkingPointUID() UID { return newUID(prefixLink) }

// NewEventUID mints a fresh Event uid. Events live in pkg/event, but the
// prefix is reserved here to keep all uid conventions in one place.
func NewEventUID() UID { return newUID(prefixEvent) }
