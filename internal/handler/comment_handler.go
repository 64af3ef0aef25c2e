package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// CommentForm - единственное поле формы комментария
type CommentForm struct {
	Text string `json:"text" validate:"required"`
}

// AddComment создаёт комментарий и редиректит на страницу поста.
// Пустой текст молча отбрасывается - редирект тот же, комментария нет.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID := mux.Vars(r)["id"]

	// пост должен существовать даже для невалидной формы
	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
		return
	}

	form := CommentForm{Text: r.FormValue("text")}

	userID := r.Context().Value("userID").(string)

	if err := h.Validate.Struct(form); err == nil {
		if _, err := h.CommentService.AddComment(r.Context(), post.PostID, userID, form.Text); err != nil {
			WriteRepoError(w, err)
			return
		}
	}

	http.Redirect(w, r, "/posts/"+postID+"/", http.StatusFound)
}
