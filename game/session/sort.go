package session

import (
	"sort"

	"github.com/wricardo/martian-robots/game/service"
)

// sortByCreated orders runs oldest first, breaking ties by ID so listings are stable
func sortByCreated(runs []*service.Run) {
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].CreatedAt.Before(runs[j].CreatedAt)
	})
}
