package catalog

import (
	"slices"
	"strings"
	"time"

	"github.com/videoshare/videoshare/internal/model"
)

// Comments lists the comments on one video, most recent first.
func (s *Store) Comments(videoID string) []model.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Comment{}
	for _, c := range s.comments {
		if c.VideoID == videoID {
			out = append(out, cloneComment(c))
		}
	}
	return out
}

// AddComment prepends a comment by author to a video. Blank text, a nil
// author or an unknown video leave the collection untouched.
func (s *Store) AddComment(videoID, text string, author *model.Identity) (model.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content := strings.TrimSpace(text)
	if content == "" || author == nil || s.indexOf(videoID) < 0 {
		s.record("add_comment", false)
		return model.Comment{}, false
	}

	c := s.newComment(videoID, content, *author)
	next := make([]model.Comment, 0, len(s.comments)+1)
	next = append(next, c)
	next = append(next, s.comments...)
	s.comments = next

	s.record("add_comment", true)
	return cloneComment(c), true
}

// ReplyToComment appends a reply to the comment with the given id, at any
// depth of the thread.
func (s *Store) ReplyToComment(commentID, text string, author *model.Identity) (model.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content := strings.TrimSpace(text)
	if content == "" || author == nil {
		s.record("reply_comment", false)
		return model.Comment{}, false
	}

	var reply model.Comment
	next, ok := updateThread(s.comments, commentID, func(parent *model.Comment) {
		reply = s.newComment(parent.VideoID, content, *author)
		replies := make([]model.Comment, 0, len(parent.Replies)+1)
		replies = append(replies, parent.Replies...)
		parent.Replies = append(replies, reply)
	})
	if !ok {
		s.record("reply_comment", false)
		return model.Comment{}, false
	}
	s.comments = next

	s.record("reply_comment", true)
	return cloneComment(reply), true
}

// LikeComment toggles the like on a comment or reply.
func (s *Store) LikeComment(id string) (model.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var liked model.Comment
	next, ok := updateThread(s.comments, id, func(c *model.Comment) {
		if c.IsLiked {
			c.Likes = decrement(c.Likes)
		} else {
			c.Likes++
		}
		c.IsLiked = !c.IsLiked
		liked = cloneComment(*c)
	})
	if !ok {
		s.record("like_comment", false)
		return model.Comment{}, false
	}
	s.comments = next

	s.record("like_comment", true)
	return liked, true
}

func (s *Store) newComment(videoID, content string, author model.Identity) model.Comment {
	return model.Comment{
		ID:        s.ids.Next(),
		VideoID:   videoID,
		Content:   content,
		Author:    author,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
		Replies:   []model.Comment{},
	}
}

// updateThread finds the comment with id anywhere in list and applies fn to
// a copy of it. Only the slices on the path to that comment are copied.
func updateThread(list []model.Comment, id string, fn func(*model.Comment)) ([]model.Comment, bool) {
	for i := range list {
		if list[i].ID == id {
			next := slices.Clone(list)
			fn(&next[i])
			return next, true
		}
		if replies, ok := updateThread(list[i].Replies, id, fn); ok {
			next := slices.Clone(list)
			next[i].Replies = replies
			return next, true
		}
	}
	return list, false
}

func cloneComment(c model.Comment) model.Comment {
	c.Replies = cloneComments(c.Replies)
	return c
}

func cloneComments(list []model.Comment) []model.Comment {
	out := make([]model.Comment, 0, len(list))
	for _, c := range list {
		out = append(out, cloneComment(c))
	}
	return out
}
