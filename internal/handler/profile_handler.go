package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Profile - посты автора, их количество и подписан ли текущий
// пользователь на этого автора
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	username := mux.Vars(r)["username"]

	author, err := h.UserRepo.GetUserByUsername(r.Context(), username)
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	total, err := h.PostRepo.CountByAuthor(r.Context(), author.UserID)
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	page := h.page(r, total)

	posts, err := h.PostRepo.ListByAuthor(r.Context(), author.UserID, page.Size, page.Offset())
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	// для анонимного запроса following всегда false
	callerID, _ := r.Context().Value("userID").(string)
	following, err := h.FollowService.IsFollowing(r.Context(), callerID, author.UserID)
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"username":   author.Username,
		"posts":      posts,
		"postsCount": total,
		"following":  following,
		"pagination": page,
	}, http.StatusOK)
}

// Follow - подписка на автора; повтор и подписка на себя - no-op
func (h *Handlers) Follow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	username := mux.Vars(r)["username"]
	userID := r.Context().Value("userID").(string)

	author, err := h.FollowService.Follow(r.Context(), userID, username)
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	http.Redirect(w, r, "/profile/"+author.Username+"/", http.StatusFound)
}

// Unfollow - отписка; отсутствующая подписка отдаёт 404
func (h *Handlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	username := mux.Vars(r)["username"]
	userID := r.Context().Value("userID").(string)

	author, err := h.FollowService.Unfollow(r.Context(), userID, username)
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	http.Redirect(w, r, "/profile/"+author.Username+"/", http.StatusFound)
}

// Feed - посты авторов, на которых подписан текущий пользователь
func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.Context().Value("userID").(string)

	total, err := h.PostRepo.CountFeed(r.Context(), userID)
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	page := h.page(r, total)

	posts, err := h.PostRepo.ListFeed(r.Context(), userID, page.Size, page.Offset())
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"title":      "Последние обновления избранных авторов",
		"posts":      posts,
		"pagination": page,
	}, http.StatusOK)
}
