package catalog

import (
	"slices"

	"github.com/videoshare/videoshare/internal/model"
)

// LikeVideo toggles the like on a video. Liking a disliked video also
// removes the dislike. Unknown ids are ignored.
func (s *Store) LikeVideo(id string) (model.Video, bool) {
	return s.updateVideo("like_video", id, func(v *model.Video) {
		if v.IsLiked {
			v.Likes = decrement(v.Likes)
			v.IsLiked = false
			return
		}
		v.Likes++
		v.IsLiked = true
		if v.IsDisliked {
			v.Dislikes = decrement(v.Dislikes)
			v.IsDisliked = false
		}
	})
}

// DislikeVideo is LikeVideo with the roles of like and dislike swapped.
func (s *Store) DislikeVideo(id string) (model.Video, bool) {
	return s.updateVideo("dislike_video", id, func(v *model.Video) {
		if v.IsDisliked {
			v.Dislikes = decrement(v.Dislikes)
			v.IsDisliked = false
			return
		}
		v.Dislikes++
		v.IsDisliked = true
		if v.IsLiked {
			v.Likes = decrement(v.Likes)
			v.IsLiked = false
		}
	})
}

func (s *Store) updateVideo(op, id string, apply func(*model.Video)) (model.Video, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.record(op, false)
		return model.Video{}, false
	}

	row := s.videos[i]
	row.video.Tags = slices.Clone(row.video.Tags)
	apply(&row.video)

	next := slices.Clone(s.videos)
	next[i] = row
	s.videos = next

	s.record(op, true)
	return s.resolve(row), true
}

// SubscribeToChannel toggles the subscription to a channel. Every video by
// that creator sees the change because they share one channel entry.
func (s *Store) SubscribeToChannel(creatorID string) (model.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.channels[creatorID]
	if !ok {
		s.record("subscribe_channel", false)
		return model.Identity{}, false
	}

	if c.IsSubscribed {
		if c.SubscriberCount > 0 {
			c.SubscriberCount--
		}
		c.IsSubscribed = false
	} else {
		c.SubscriberCount++
		c.IsSubscribed = true
	}
	s.channels[creatorID] = c

	s.record("subscribe_channel", true)
	return c, true
}
