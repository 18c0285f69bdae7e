package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"classforge"
	"classforge/compiler/load"
	"classforge/internal/models"
	"classforge/internal/repositories"
)

// ErrInvalidSnapshot marks a snapshot that does not decode into a diagram
// document. Handlers map it to a 400.
var ErrInvalidSnapshot = errors.New("services: invalid diagram snapshot")

// DiagramService manages stored diagrams and their share tokens.
type DiagramService struct {
	repo *repositories.DiagramRepository
}

func NewDiagramService(repo *repositories.DiagramRepository) *DiagramService {
	return &DiagramService{repo: repo}
}

// SaveDiagramRequest is the create/update payload.
type SaveDiagramRequest struct {
	Name     string          `json:"name" binding:"required"`
	Snapshot json.RawMessage `json:"snapshot" binding:"required"`
}

func (s *DiagramService) Create(ctx context.Context, req SaveDiagramRequest) (*models.Diagram, error) {
	if err := validateSnapshot(req.Snapshot); err != nil {
		return nil, err
	}

	d := &models.Diagram{
		Name:     req.Name,
		Snapshot: req.Snapshot,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("save diagram: %w", err)
	}
	return d, nil
}

func (s *DiagramService) Get(ctx context.Context, id string) (*models.Diagram, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, uid)
}

func (s *DiagramService) List(ctx context.Context) ([]models.Diagram, error) {
	return s.repo.List(ctx)
}

func (s *DiagramService) Update(ctx context.Context, id string, req SaveDiagramRequest) (*models.Diagram, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := validateSnapshot(req.Snapshot); err != nil {
		return nil, err
	}

	d, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	d.Name = req.Name
	d.Snapshot = req.Snapshot
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DiagramService) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, uid)
}

// Share returns the diagram's share token, issuing one on first use.
// Sharing is idempotent; repeated calls hand out the same token.
func (s *DiagramService) Share(ctx context.Context, id string) (uuid.UUID, error) {
	uid, err := parseID(id)
	if err != nil {
		return uuid.Nil, err
	}

	d, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return uuid.Nil, err
	}
	if d.Shared() {
		return *d.ShareToken, nil
	}

	token := uuid.New()
	if err := s.repo.SetShareToken(ctx, uid, token); err != nil {
		return uuid.Nil, err
	}
	return token, nil
}

// GetShared resolves a share token to its diagram.
func (s *DiagramService) GetShared(ctx context.Context, token string) (*models.Diagram, error) {
	t, err := uuid.Parse(token)
	if err != nil {
		return nil, classforge.NewNotFoundError("shared diagram")
	}
	return s.repo.GetByShareToken(ctx, t)
}

// parseID treats a malformed id like a missing diagram; no stored diagram
// can ever have it.
func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, classforge.NewNotFoundErrorWithID("diagram", id)
	}
	return uid, nil
}

func validateSnapshot(snapshot json.RawMessage) error {
	d, err := load.Parse(snapshot)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return nil
}
