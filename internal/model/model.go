package model

// AllCategories is the category filter value that matches every video.
const AllCategories = "All"

// Identity is a user account. Video creators (channels) are identities too.
type Identity struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Avatar          string `json:"avatar"`
	SubscriberCount int    `json:"subscriberCount"`
	IsSubscribed    bool   `json:"isSubscribed,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

// Profile holds the fields a new account is registered with.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

type Video struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	VideoURL    string   `json:"videoUrl"`
	Duration    int      `json:"duration"`
	Views       int64    `json:"views"`
	Likes       int64    `json:"likes"`
	Dislikes    int64    `json:"dislikes"`
	UploadDate  string   `json:"uploadDate"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Creator     Identity `json:"creator"`
	IsLiked     bool     `json:"isLiked,omitempty"`
	IsDisliked  bool     `json:"isDisliked,omitempty"`
}

type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"videoId"`
	Content   string    `json:"content"`
	Author    Identity  `json:"author"`
	CreatedAt string    `json:"createdAt"`
	Likes     int64     `json:"likes"`
	Replies   []Comment `json:"replies"`
	IsLiked   bool      `json:"isLiked,omitempty"`
}

// Filter is the active search and category selection.
type Filter struct {
	SearchQuery      string `json:"searchQuery"`
	SelectedCategory string `json:"selectedCategory"`
}

func DefaultFilter() Filter {
	return Filter{SelectedCategory: AllCategories}
}

// Heading is the title a listing page shows for this filter.
func (f Filter) Heading() string {
	if f.SearchQuery != "" {
		return `Search results for "` + f.SearchQuery + `"`
	}
	if f.SelectedCategory != AllCategories && f.SelectedCategory != "" {
		return f.SelectedCategory
	}
	return "Home"
}
