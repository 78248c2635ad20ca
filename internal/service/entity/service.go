// Package entity implements owner scoped CRUD for any user entity kind.
//
// Every row handled by a Service belongs to a user. All reads and writes are
// filtered by the owner's id, so a user can never see or change rows of
// another user. Expected business outcomes are returned as result.Result,
// programming errors (missing ids, nil requests) as ErrInvalidArgument.
package entity

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finansync/finansync-api/internal/db/models"
	"github.com/finansync/finansync-api/internal/result"
	"github.com/finansync/finansync-api/internal/validation"
)

const (
	// DefaultPageSize is the number of rows List fetches per query.
	DefaultPageSize = 100

	// SaveErrorKey and SaveErrorMessage describe a failed write.
	SaveErrorKey     = "Server Error"
	SaveErrorMessage = "Failed to save data."

	// NotFoundMessage is returned with result.EntityNotFound.
	NotFoundMessage = "Entity not found."
	// DeclinedMessage is returned with result.ExternalError when an update callback declines.
	DeclinedMessage = "The update was declined."

	ownerAndIDQuery = models.OwnerColumn + " = ? AND id = ?"
)

var (
	// ErrInvalidArgument is returned when a required argument is missing.
	ErrInvalidArgument = errors.New("invalid argument")

	errSaveFailed = errors.New("save failed")
)

// Service provides owner scoped CRUD for the entity kind E.
type Service[E, Req, Resp any] struct {
	db        *gorm.DB
	kind      Kind[E, Req, Resp]
	validator *validation.Validator

	// PageSize is the number of rows List loads per query.
	PageSize int
}

// New creates a Service for kind.
func New[E, Req, Resp any](db *gorm.DB, v *validation.Validator, kind Kind[E, Req, Resp]) *Service[E, Req, Resp] {
	if v == nil {
		v = validation.New()
	}

	return &Service[E, Req, Resp]{
		db:        db,
		kind:      kind,
		validator: v,
		PageSize:  DefaultPageSize,
	}
}

func invalidArgument(name string) error {
	return fmt.Errorf("%w: %s must not be empty", ErrInvalidArgument, name)
}

// List returns every entity of ownerID mapped to its response shape.
// Rows are fetched lazily page by page while the sequence is consumed,
// every iteration starts again from the first row.
// It is meant for streaming, not for loading large sets into memory.
func (s *Service[E, Req, Resp]) List(ctx context.Context, ownerID string) (iter.Seq2[Resp, error], error) {
	if ownerID == "" {
		return nil, invalidArgument("ownerID")
	}

	size := s.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	return func(yield func(Resp, error) bool) {
		for offset := 0; ; offset += size {
			var page []E

			err := s.kind.BasicQuery(s.db.WithContext(ctx)).
				Where(models.OwnerColumn+" = ?", ownerID).
				Order("id").
				Limit(size).
				Offset(offset).
				Find(&page).Error
			if err != nil {
				var zero Resp

				yield(zero, err)

				return
			}

			for i := range page {
				if !yield(s.kind.ToResponse(&page[i]), nil) {
					return
				}
			}

			if len(page) < size {
				return
			}
		}
	}, nil
}

// Find returns the entity id of ownerID, or nil if there is none.
func (s *Service[E, Req, Resp]) Find(ctx context.Context, ownerID, id string) (*Resp, error) {
	if ownerID == "" {
		return nil, invalidArgument("ownerID")
	}

	if id == "" {
		return nil, invalidArgument("id")
	}

	e, err := s.load(s.kind.BasicQuery(s.db.WithContext(ctx)), ownerID, id)
	if err != nil || e == nil {
		return nil, err
	}

	resp := s.kind.ToResponse(e)

	return &resp, nil
}

// Create validates req and stores it as a new entity of ownerID.
// Field constraints are only checked if validateFields is set.
func (s *Service[E, Req, Resp]) Create(
	ctx context.Context, ownerID string, req *Req, validateFields bool,
) (result.Result[Resp], error) {
	if ownerID == "" {
		return result.Result[Resp]{}, invalidArgument("ownerID")
	}

	if req == nil {
		return result.Result[Resp]{}, invalidArgument("req")
	}

	out, err := s.fieldErrors(req, validateFields)
	if err != nil || !out.IsSuccessful() {
		return out, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		domainErrors, err := s.kind.ValidateDomain(ctx, tx, ownerID, req, nil)
		if err != nil {
			return err
		}

		if len(domainErrors) > 0 {
			out = result.FailWith[Resp](domainErrors, result.ValidationError)
			return nil
		}

		e := s.kind.MapForCreate(ownerID, req)

		res := tx.Omit(clause.Associations).Create(e)
		if res.Error != nil || res.RowsAffected == 0 {
			log.Error().Err(res.Error).Str("owner", ownerID).Type("entity", e).Msg("failed to create entity")
			return errSaveFailed
		}

		out = result.Success(s.kind.ToResponse(e))

		return nil
	})

	return s.finish(ctx, out, err)
}

// Update replaces the state of entity id with req.
func (s *Service[E, Req, Resp]) Update(
	ctx context.Context, ownerID, id string, req *Req, validateFields bool,
) (result.Result[Resp], error) {
	if req == nil {
		return result.Result[Resp]{}, invalidArgument("req")
	}

	return s.UpdateWith(ctx, ownerID, id, func(current *Req) bool {
		*current = *req
		return true
	}, validateFields)
}

// UpdateWith loads entity id, lets update change its request representation
// and stores the result. If update returns false nothing is written and
// the result is a result.ExternalError.
func (s *Service[E, Req, Resp]) UpdateWith(
	ctx context.Context, ownerID, id string, update func(req *Req) bool, validateFields bool,
) (result.Result[Resp], error) {
	if ownerID == "" {
		return result.Result[Resp]{}, invalidArgument("ownerID")
	}

	if id == "" {
		return result.Result[Resp]{}, invalidArgument("id")
	}

	if update == nil {
		return result.Result[Resp]{}, invalidArgument("update")
	}

	var out result.Result[Resp]

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.load(s.kind.BasicQuery(tx), ownerID, id)
		if err != nil {
			return err
		}

		if current == nil {
			out = result.Fail[Resp](result.EntityNotFound, NotFoundMessage)
			return nil
		}

		original := *current
		req := s.kind.ToRequest(current)

		if !update(&req) {
			out = result.Fail[Resp](result.ExternalError, DeclinedMessage)
			return nil
		}

		if out, err = s.fieldErrors(&req, validateFields); err != nil || !out.IsSuccessful() {
			return err
		}

		domainErrors, err := s.kind.ValidateDomain(ctx, tx, ownerID, &req, &original)
		if err != nil {
			return err
		}

		if len(domainErrors) > 0 {
			out = result.FailWith[Resp](domainErrors, result.ValidationError)
			return nil
		}

		s.kind.MapForUpdate(&req, current)

		// Save writes every column, even if nothing changed
		if err = tx.Omit(clause.Associations).Save(current).Error; err != nil {
			log.Error().Err(err).Str("owner", ownerID).Str("id", id).Msg("failed to update entity")
			return errSaveFailed
		}

		out = result.Success(s.kind.ToResponse(current))

		return nil
	})

	return s.finish(ctx, out, err)
}

// Delete removes entity id of ownerID together with the dependents
// its cascade query loads.
func (s *Service[E, Req, Resp]) Delete(ctx context.Context, ownerID, id string) (result.DeleteResult, error) {
	if ownerID == "" {
		return result.DeleteFailed, invalidArgument("ownerID")
	}

	if id == "" {
		return result.DeleteFailed, invalidArgument("id")
	}

	out := result.DeleteFailed

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := s.load(s.kind.CascadeQuery(tx), ownerID, id)
		if err != nil {
			return err
		}

		if e == nil {
			out = result.DeleteEntityNotFound
			return nil
		}

		res := tx.Select(clause.Associations).Delete(e)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			out = result.DeleteSuccess
		}

		return nil
	})
	if err != nil {
		return result.DeleteFailed, err
	}

	return out, nil
}

func (s *Service[E, Req, Resp]) load(q *gorm.DB, ownerID, id string) (*E, error) {
	var e E

	err := q.Where(ownerAndIDQuery, ownerID, id).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil //nolint:nilnil
	}

	if err != nil {
		return nil, err
	}

	return &e, nil
}

// fieldErrors returns a failed result if validateFields is set and req violates a field constraint.
func (s *Service[E, Req, Resp]) fieldErrors(req *Req, validateFields bool) (result.Result[Resp], error) {
	if !validateFields {
		return result.Result[Resp]{}, nil
	}

	errs, err := s.validator.Fields(req)
	if err != nil {
		return result.Result[Resp]{}, err
	}

	if len(errs) > 0 {
		return result.FailWith[Resp](errs, result.ValidationError), nil
	}

	return result.Result[Resp]{}, nil
}

// finish turns a failed write into a result.DatabaseError.
// Cancellation and query errors are returned as they are.
func (s *Service[E, Req, Resp]) finish(
	ctx context.Context, out result.Result[Resp], err error,
) (result.Result[Resp], error) {
	switch {
	case err == nil:
		return out, nil
	case ctx.Err() != nil:
		return result.Result[Resp]{}, ctx.Err()
	case errors.Is(err, errSaveFailed):
		return result.FailWith[Resp](map[string]string{SaveErrorKey: SaveErrorMessage}, result.DatabaseError), nil
	default:
		return result.Result[Resp]{}, err
	}
}
