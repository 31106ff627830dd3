// Package catalog holds the in-memory video catalog: videos, their channels,
// comments and the active filter. Every operation runs to completion under
// the store lock and replaces the affected collection instead of editing it,
// so values handed out by earlier reads never change underneath a caller.
package catalog

import (
	"slices"
	"sync"
	"time"

	"github.com/videoshare/videoshare/internal/ids"
	"github.com/videoshare/videoshare/internal/mockdata"
	"github.com/videoshare/videoshare/internal/model"
)

const upNextLimit = 10

const trendingFallbackSize = 6

// Recorder is told about every mutation and whether it changed state.
type Recorder interface {
	RecordOperation(op string, applied bool)
}

type Config struct {
	Seed     mockdata.Catalog
	Now      func() time.Time
	Recorder Recorder
}

// videoRow is a video whose creator lives in the channel table.
type videoRow struct {
	video     model.Video
	creatorID string
}

type Store struct {
	mu          sync.RWMutex
	videos      []videoRow
	channels    map[string]model.Identity
	comments    []model.Comment
	filter      model.Filter
	currentID   string
	categories  []string
	trending    []string
	recommended []string

	now      func() time.Time
	ids      *ids.Generator
	recorder Recorder
}

// New copies the seed into working state. The seed is never referenced
// again, so callers may reuse it.
func New(cfg Config) *Store {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &Store{
		channels:    make(map[string]model.Identity),
		filter:      model.DefaultFilter(),
		categories:  slices.Clone(cfg.Seed.Categories),
		trending:    slices.Clone(cfg.Seed.Trending),
		recommended: slices.Clone(cfg.Seed.Recommended),
		now:         now,
		ids:         ids.New(now),
		recorder:    cfg.Recorder,
	}

	s.videos = make([]videoRow, 0, len(cfg.Seed.Videos))
	for _, v := range cfg.Seed.Videos {
		creator := v.Creator
		if _, exists := s.channels[creator.ID]; !exists {
			s.channels[creator.ID] = creator
		}
		v.Creator = model.Identity{}
		v.Tags = uniqueTags(v.Tags)
		if v.IsLiked && v.IsDisliked {
			v.IsDisliked = false
		}
		s.videos = append(s.videos, videoRow{video: v, creatorID: creator.ID})
	}

	s.comments = cloneComments(cfg.Seed.Comments)
	return s
}

func (s *Store) record(op string, applied bool) {
	if s.recorder != nil {
		s.recorder.RecordOperation(op, applied)
	}
}

// resolve joins a row with its channel. Callers hold the lock.
func (s *Store) resolve(row videoRow) model.Video {
	v := row.video
	v.Tags = slices.Clone(v.Tags)
	v.Creator = s.channels[row.creatorID]
	return v
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.videos, func(r videoRow) bool { return r.video.ID == id })
}

func (s *Store) Videos() []model.Video {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Video, 0, len(s.videos))
	for _, row := range s.videos {
		out = append(out, s.resolve(row))
	}
	return out
}

func (s *Store) Video(id string) (model.Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Video{}, false
	}
	return s.resolve(s.videos[i]), true
}

func (s *Store) Channel(id string) (model.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.channels[id]
	return c, ok
}

// ChannelVideos lists the videos published by one channel, in catalog order.
func (s *Store) ChannelVideos(id string) []model.Video {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Video{}
	for _, row := range s.videos {
		if row.creatorID == id {
			out = append(out, s.resolve(row))
		}
	}
	return out
}

// Categories returns the seeded category list, or the categories present in
// the catalog in order of first appearance when none were seeded.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.categories) > 0 {
		return slices.Clone(s.categories)
	}
	out := []string{}
	for _, row := range s.videos {
		if !slices.Contains(out, row.video.Category) {
			out = append(out, row.video.Category)
		}
	}
	return out
}

// Trending returns the seeded trending videos. Without a seeded list the
// most viewed videos are used instead.
func (s *Store) Trending() []model.Video {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.trending) > 0 {
		return s.lookupAll(s.trending)
	}

	rows := slices.Clone(s.videos)
	slices.SortStableFunc(rows, func(a, b videoRow) int {
		switch {
		case a.video.Views > b.video.Views:
			return -1
		case a.video.Views < b.video.Views:
			return 1
		}
		return 0
	})
	if len(rows) > trendingFallbackSize {
		rows = rows[:trendingFallbackSize]
	}
	out := make([]model.Video, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.resolve(row))
	}
	return out
}

// UpNext lists recommended videos other than currentID, at most upNextLimit.
func (s *Store) UpNext(currentID string) []model.Video {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var candidates []model.Video
	if len(s.recommended) > 0 {
		candidates = s.lookupAll(s.recommended)
	} else {
		for _, row := range s.videos {
			candidates = append(candidates, s.resolve(row))
		}
	}

	out := []model.Video{}
	for _, v := range candidates {
		if v.ID == currentID {
			continue
		}
		out = append(out, v)
		if len(out) == upNextLimit {
			break
		}
	}
	return out
}

func (s *Store) lookupAll(idList []string) []model.Video {
	out := []model.Video{}
	for _, id := range idList {
		if i := s.indexOf(id); i >= 0 {
			out = append(out, s.resolve(s.videos[i]))
		}
	}
	return out
}

// SetCurrentVideo selects the video being watched. An empty id clears the
// selection; an unknown id leaves it unchanged.
func (s *Store) SetCurrentVideo(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && s.indexOf(id) < 0 {
		s.record("set_current_video", false)
		return false
	}
	s.currentID = id
	s.record("set_current_video", true)
	return true
}

func (s *Store) CurrentVideo() (model.Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentID == "" {
		return model.Video{}, false
	}
	i := s.indexOf(s.currentID)
	if i < 0 {
		return model.Video{}, false
	}
	return s.resolve(s.videos[i]), true
}

func uniqueTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func decrement(n int64) int64 {
	if n > 0 {
		return n - 1
	}
	return 0
}
