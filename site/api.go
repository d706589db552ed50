package site

import (
	"encoding/json"
	"net/http"

	"inkwell/database"
)

type apiPost struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Date     string `json:"date"`
	ImgURL   string `json:"img_url"`
	Author   string `json:"author"`
}

// apiListPosts serves the post list as JSON for external readers. Read-only;
// no authenticated variant exists.
func (s *Site) apiListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := database.ListPosts(s.db)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	payload := make([]apiPost, 0, len(posts))
	for _, post := range posts {
		payload = append(payload, apiPost{
			ID:       post.ID,
			Title:    post.Title,
			Subtitle: post.Subtitle,
			Date:     post.Date,
			ImgURL:   post.ImgURL,
			Author:   post.Author.Username,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
