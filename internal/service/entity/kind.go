package entity

import (
	"context"

	"gorm.io/gorm"
)

// Kind holds the per entity kind behavior the generic Service delegates to.
//
// E is the persisted model, Req the request shape used to create and update it
// and Resp the shape returned to callers.
type Kind[E, Req, Resp any] interface {
	// BasicQuery is the base query of find, list and update.
	BasicQuery(tx *gorm.DB) *gorm.DB
	// CascadeQuery loads an entity before it is deleted.
	// It may preload dependents that are removed together with it.
	CascadeQuery(tx *gorm.DB) *gorm.DB
	// MapForCreate builds a new entity owned by ownerID.
	MapForCreate(ownerID string, req *Req) *E
	// MapForUpdate merges req into the tracked entity.
	MapForUpdate(req *Req, current *E)
	// ToRequest maps the current state back into a request.
	ToRequest(current *E) Req
	// ToResponse maps an entity into its response shape.
	ToResponse(e *E) Resp
	// ValidateDomain returns field keyed messages for invalid requests.
	// original is nil on create and the unmodified entity on update.
	ValidateDomain(ctx context.Context, tx *gorm.DB, ownerID string, req *Req, original *E) (map[string]string, error)
}

// Base provides the default queries. Kinds embed it and override what they need.
type Base[E any] struct{}

// BasicQuery returns tx scoped to the table of E.
func (Base[E]) BasicQuery(tx *gorm.DB) *gorm.DB {
	return tx.Model(new(E))
}

// CascadeQuery returns tx scoped to the table of E.
func (Base[E]) CascadeQuery(tx *gorm.DB) *gorm.DB {
	return tx.Model(new(E))
}
