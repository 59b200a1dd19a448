package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/grouptab/grouptab/internal/models"
	"github.com/grouptab/grouptab/internal/storage"
)

// GroupService is the member directory: it owns groups and their ordered
// member lists. The ledger consults it to validate participant ids and to
// seed balance snapshots with every member of a group.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group with an initial member list.
func (s *GroupService) CreateGroup(ctx context.Context, name string, members []string) (*models.Group, error) {
	if name == "" {
		return nil, fmt.Errorf("group name is required")
	}
	if hasDuplicates(members) {
		return nil, fmt.Errorf("duplicate member ids")
	}

	group := &models.Group{
		Name:    name,
		Members: members,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "name", name, "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "name", name, "members", len(members))
	return group, nil
}

// GetGroup retrieves a group with its ordered member list.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// ListGroups retrieves all groups, newest first.
func (s *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListGroups(ctx)
}

// AddMembers appends members to a group. Ids already present are skipped.
func (s *GroupService) AddMembers(ctx context.Context, groupID string, members []string) (*models.Group, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("no members to add")
	}
	if err := s.store.AddGroupMembers(ctx, groupID, members); err != nil {
		return nil, err
	}
	return s.store.GetGroup(ctx, groupID)
}
