// Package mockdata provides the static catalog the application starts from.
package mockdata

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/videoshare/videoshare/internal/model"
)

//go:embed catalog.json
var defaultCatalog []byte

// Catalog is a complete seed: user directory, videos with embedded
// creators, comments and the curated lists shown on the home page.
type Catalog struct {
	Users       []model.Identity `json:"users"`
	Videos      []model.Video    `json:"videos"`
	Comments    []model.Comment  `json:"comments"`
	Categories  []string         `json:"categories"`
	Trending    []string         `json:"trending"`
	Recommended []string         `json:"recommended"`
}

// Default returns a freshly decoded copy of the embedded catalog.
func Default() Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("mockdata: embedded catalog is invalid: %v", err))
	}
	return c
}

func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func (c Catalog) validate() error {
	seen := make(map[string]bool, len(c.Videos))
	for _, v := range c.Videos {
		if v.ID == "" {
			return fmt.Errorf("video %q has no id", v.Title)
		}
		if seen[v.ID] {
			return fmt.Errorf("duplicate video id %q", v.ID)
		}
		seen[v.ID] = true
		if v.Creator.ID == "" {
			return fmt.Errorf("video %q has no creator", v.ID)
		}
	}

	users := make(map[string]bool, len(c.Users))
	for _, u := range c.Users {
		if users[u.ID] {
			return fmt.Errorf("duplicate user id %q", u.ID)
		}
		users[u.ID] = true
	}
	return nil
}

// FindByEmail looks a user up by exact email.
func (c Catalog) FindByEmail(email string) (model.Identity, bool) {
	for _, u := range c.Users {
		if u.Email == email {
			return u, true
		}
	}
	return model.Identity{}, false
}
