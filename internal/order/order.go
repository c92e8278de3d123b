package order

import (
	"errors"
	"fmt"
	"log/slog"

	internal "github.com/frahmantamala/order-management/internal"
	"github.com/frahmantamala/order-management/internal/core/datamodel/order"
)

// ErrOrderNotFound is the sentinel the repository maps a missing row to.
var ErrOrderNotFound = errors.New("order not found")

// RepositoryAPI interface for order database operations
type RepositoryAPI interface {
	GetByID(id int64) (*order.Order, error)
	Save(o *order.Order) error
	UpdateState(id int64, state string) error
	SetLocked(id int64, locked bool) error
}

// ServiceAPI is the surface other packages consume: order lookup, the named
// workflow transitions, and the checkout lock.
type ServiceAPI interface {
	GetByID(id int64) (*order.Order, error)
	ApplyTransition(o *order.Order, name string) error
	AvailableTransitions(o *order.Order) []string
	IsLocked(o *order.Order) bool
	Unlock(o *order.Order) error
}

type Service struct {
	repo     RepositoryAPI
	workflow *Workflow
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, workflow *Workflow, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		workflow: workflow,
		logger:   logger,
	}
}

func (s *Service) GetByID(id int64) (*order.Order, error) {
	o, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, internal.ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}
	return o, nil
}

// ApplyTransition runs the named workflow transition and persists the new
// state. Returns ErrTransitionUnavailable when the transition is not legal
// from the order's current state.
func (s *Service) ApplyTransition(o *order.Order, name string) error {
	target, ok := s.workflow.Target(o.State, name)
	if !ok {
		return fmt.Errorf("%w: %s from %s", ErrTransitionUnavailable, name, o.State)
	}

	if err := s.repo.UpdateState(o.ID, target); err != nil {
		return fmt.Errorf("apply transition %s on order %d: %w", name, o.ID, err)
	}

	s.logger.Info("order transition applied",
		"order_id", o.ID,
		"transition", name,
		"from_state", o.State,
		"to_state", target)

	o.State = target
	return nil
}

func (s *Service) AvailableTransitions(o *order.Order) []string {
	return s.workflow.Available(o.State)
}

func (s *Service) IsLocked(o *order.Order) bool {
	return o.Locked
}

// Unlock releases the checkout editing lock.
func (s *Service) Unlock(o *order.Order) error {
	if !o.Locked {
		return nil
	}
	if err := s.repo.SetLocked(o.ID, false); err != nil {
		return fmt.Errorf("unlock order %d: %w", o.ID, err)
	}
	s.logger.Info("order lock released", "order_id", o.ID)
	o.Locked = false
	return nil
}
