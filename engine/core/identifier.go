package core

import "github.com/google/uuid"

// ContextID is the opaque identity of a rendering context. Buffer caches are
// keyed by it, so two contexts must never share one.
type ContextID uuid.UUID

// InvalidContextID is the zero identity. No live context carries it.
var InvalidContextID = ContextID(uuid.Nil)

// NewContextID aquires a fresh, globally unique context identity.
func NewContextID() ContextID {
	return ContextID(uuid.New())
}

// ParseContextID reads an identity previously produced by ContextID.String.
func ParseContextID(s string) (ContextID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return InvalidContextID, err
	}
	return ContextID(id), nil
}

func (id ContextID) String() string {
	return uuid.UUID(id).String()
}

func (id ContextID) IsValid() bool {
	return id != InvalidContextID
}
