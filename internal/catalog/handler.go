package catalog

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/videoshare/videoshare/internal/httputil"
	"github.com/videoshare/videoshare/internal/model"
	"github.com/videoshare/videoshare/internal/validate"
)

// CurrentUser reports who is signed in. Comments are attributed to it.
type CurrentUser interface {
	Current() (model.Identity, bool)
}

type Handler struct {
	store   *Store
	session CurrentUser
}

func NewHandler(store *Store, session CurrentUser) *Handler {
	return &Handler{store: store, session: session}
}

type videoListResponse struct {
	Heading string        `json:"heading"`
	Filter  model.Filter  `json:"filter"`
	Videos  []model.Video `json:"videos"`
}

type channelResponse struct {
	Channel model.Identity `json:"channel"`
	Videos  []model.Video  `json:"videos"`
}

type filterResponse struct {
	model.Filter
	Heading string `json:"heading"`
}

type updateFilterRequest struct {
	SearchQuery      *string `json:"searchQuery"`
	SelectedCategory *string `json:"selectedCategory"`
}

type postCommentRequest struct {
	Content string `json:"content"`
}

type setCurrentVideoRequest struct {
	ID string `json:"id"`
}

// ListVideos returns the catalog narrowed by the active filter.
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	f := h.store.Filter()
	httputil.WriteJSON(w, http.StatusOK, videoListResponse{
		Heading: f.Heading(),
		Filter:  f,
		Videos:  nonNil(h.store.FilteredVideos()),
	})
}

func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, nonNil(h.store.Trending()))
}

func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
	v, ok := h.store.Video(chi.URLParam(r, "id"))
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) UpNext(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.store.Video(id); !ok {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, nonNil(h.store.UpNext(id)))
}

func (h *Handler) LikeVideo(w http.ResponseWriter, r *http.Request) {
	v, ok := h.store.LikeVideo(chi.URLParam(r, "id"))
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) DislikeVideo(w http.ResponseWriter, r *http.Request) {
	v, ok := h.store.DislikeVideo(chi.URLParam(r, "id"))
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) GetChannel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	channel, ok := h.store.Channel(id)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "channel not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, channelResponse{
		Channel: channel,
		Videos:  nonNil(h.store.ChannelVideos(id)),
	})
}

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	channel, ok := h.store.SubscribeToChannel(chi.URLParam(r, "id"))
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "channel not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, channel)
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")
	if _, ok := h.store.Video(videoID); !ok {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, nonNil(h.store.Comments(videoID)))
}

func (h *Handler) PostComment(w http.ResponseWriter, r *http.Request) {
	author, content, ok := h.commentInput(w, r)
	if !ok {
		return
	}
	c, ok := h.store.AddComment(chi.URLParam(r, "id"), content, author)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) PostReply(w http.ResponseWriter, r *http.Request) {
	author, content, ok := h.commentInput(w, r)
	if !ok {
		return
	}
	c, ok := h.store.ReplyToComment(chi.URLParam(r, "id"), content, author)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "comment not found")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) LikeComment(w http.ResponseWriter, r *http.Request) {
	c, ok := h.store.LikeComment(chi.URLParam(r, "id"))
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "comment not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

// commentInput decodes and checks a comment body and resolves its author.
// It writes the error response itself when the input is unusable.
func (h *Handler) commentInput(w http.ResponseWriter, r *http.Request) (*model.Identity, string, bool) {
	user, signedIn := h.session.Current()
	if !signedIn {
		httputil.WriteError(w, http.StatusUnauthorized, "sign in to comment")
		return nil, "", false
	}

	var req postCommentRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return nil, "", false
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		httputil.WriteError(w, http.StatusBadRequest, "comment cannot be empty")
		return nil, "", false
	}
	if msg := validate.CommentBody(content); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return nil, "", false
	}
	return &user, content, true
}

func (h *Handler) GetFilter(w http.ResponseWriter, r *http.Request) {
	f := h.store.Filter()
	httputil.WriteJSON(w, http.StatusOK, filterResponse{Filter: f, Heading: f.Heading()})
}

// UpdateFilter changes only the fields present in the body.
func (h *Handler) UpdateFilter(w http.ResponseWriter, r *http.Request) {
	var req updateFilterRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SearchQuery != nil {
		if msg := validate.SearchQuery(*req.SearchQuery); msg != "" {
			httputil.WriteError(w, http.StatusBadRequest, msg)
			return
		}
	}
	if req.SelectedCategory != nil {
		if msg := validate.Category(*req.SelectedCategory); msg != "" {
			httputil.WriteError(w, http.StatusBadRequest, msg)
			return
		}
	}

	if req.SearchQuery != nil {
		h.store.SetSearchQuery(*req.SearchQuery)
	}
	if req.SelectedCategory != nil {
		h.store.SetCategory(*req.SelectedCategory)
	}
	h.GetFilter(w, r)
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, nonNil(h.store.Categories()))
}

func (h *Handler) GetCurrentVideo(w http.ResponseWriter, r *http.Request) {
	v, ok := h.store.CurrentVideo()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) SetCurrentVideo(w http.ResponseWriter, r *http.Request) {
	var req setCurrentVideoRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !h.store.SetCurrentVideo(req.ID) {
		httputil.WriteError(w, http.StatusNotFound, "video not found")
		return
	}
	h.GetCurrentVideo(w, r)
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
