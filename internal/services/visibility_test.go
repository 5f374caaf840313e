package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trackline/task-tracker-api/internal/models"
)

func TestSeesAllProjects(t *testing.T) {
	require.True(t, SeesAllProjects(models.RoleAdmin))
	require.True(t, SeesAllProjects(models.RoleManager))
	require.False(t, SeesAllProjects(models.RoleDeveloper))
	require.False(t, SeesAllProjects(models.Role("")))
}

func TestVisibleProjectIDs(t *testing.T) {
	projects := func(ids ...uint64) []models.Project {
		out := make([]models.Project, len(ids))
		for i, id := range ids {
			out[i] = models.Project{ID: id}
		}
		return out
	}

	tests := []struct {
		name     string
		own      []models.Project
		assigned []uint64
		want     []uint64
	}{
		{
			name: "empty",
			want: []uint64{},
		},
		{
			name: "own only",
			own:  projects(1, 2),
			want: []uint64{1, 2},
		},
		{
			name:     "assigned only",
			assigned: []uint64{3, 4},
			want:     []uint64{3, 4},
		},
		{
			name:     "union deduplicated, own first",
			own:      projects(1, 2),
			assigned: []uint64{2, 3},
			want:     []uint64{1, 2, 3},
		},
		{
			name:     "duplicate assigned ids",
			assigned: []uint64{5, 5, 5},
			want:     []uint64{5},
		},
		{
			name: "duplicate own projects",
			own:  projects(7, 7),
			want: []uint64{7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleProjectIDs(tt.own, tt.assigned)
			require.Equal(t, tt.want, got)
		})
	}
}
