package services

import "github.com/trackline/task-tracker-api/internal/models"

// Caller is the authenticated identity attached to a request.
type Caller struct {
	ID   uint64
	Role models.Role
}

// SeesAllProjects reports whether the role grants unrestricted project
// visibility.
func SeesAllProjects(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleManager
}

// VisibleProjectIDs merges the projects a restricted caller created with the
// projects holding tasks assigned to them, deduplicated, own projects first.
func VisibleProjectIDs(own []models.Project, assignedProjectIDs []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(own)+len(assignedProjectIDs))
	ids := make([]uint64, 0, len(own)+len(assignedProjectIDs))

	for _, p := range own {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		ids = append(ids, p.ID)
	}

	for _, id := range assignedProjectIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids
}
