package catalog

import (
	"strings"

	"github.com/videoshare/videoshare/internal/model"
)

func (s *Store) Filter() model.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.SearchQuery = q
}

// SetCategory selects a category. The empty string selects all categories.
func (s *Store) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category == "" {
		category = model.AllCategories
	}
	s.filter.SelectedCategory = category
}

// FilteredVideos applies the current filter to the catalog. It is computed
// on every call and keeps catalog order.
func (s *Store) FilteredVideos() []model.Video {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(s.filter.SearchQuery)
	category := s.filter.SelectedCategory

	out := []model.Video{}
	for _, row := range s.videos {
		if matchesSearch(row.video, query) && matchesCategory(row.video, category) {
			out = append(out, s.resolve(row))
		}
	}
	return out
}

// matchesSearch expects query to be lower case already.
func matchesSearch(v model.Video, query string) bool {
	if strings.Contains(strings.ToLower(v.Title), query) ||
		strings.Contains(strings.ToLower(v.Description), query) {
		return true
	}
	for _, tag := range v.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func matchesCategory(v model.Video, category string) bool {
	return category == model.AllCategories || v.Category == category
}
