package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"miniblog/internal/models"
	"miniblog/internal/pagination"
	"miniblog/internal/service"
)

// PostForm - поля формы создания/редактирования поста
type PostForm struct {
	Text    string `json:"text" validate:"required"`
	GroupID string `json:"groupId"`
}

func (h *Handlers) page(r *http.Request, total int) pagination.Page {
	number, _ := strconv.Atoi(r.URL.Query().Get("page"))
	return pagination.New(number, h.Cfg.PostsPerPage, total)
}

// Index - все посты, новые сверху, постранично
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	total, err := h.PostRepo.CountAll(r.Context())
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	page := h.page(r, total)

	posts, err := h.PostRepo.ListAll(r.Context(), page.Size, page.Offset())
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	// forming the page context
	WriteJSON(w, map[string]interface{}{
		"title":      "Последние обновления на сайте",
		"posts":      posts,
		"pagination": page,
	}, http.StatusOK)
}

// GroupPosts - посты одной группы по slug
func (h *Handlers) GroupPosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	slug := mux.Vars(r)["slug"]

	group, err := h.GroupRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	total, err := h.PostRepo.CountByGroup(r.Context(), group.GroupID)
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	page := h.page(r, total)

	posts, err := h.PostRepo.ListByGroup(r.Context(), group.GroupID, page.Size, page.Offset())
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"group":      group,
		"posts":      posts,
		"pagination": page,
	}, http.StatusOK)
}

// PostDetail - пост, счётчик постов автора, комментарии и пустая форма комментария
func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID := mux.Vars(r)["id"]

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	postsCount, err := h.PostRepo.CountByAuthor(r.Context(), post.AuthorID)
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	comments, err := h.CommentRepo.ListByPost(r.Context(), post.PostID)
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"post":        post,
		"postsCount":  postsCount,
		"comments":    comments,
		"commentForm": CommentForm{},
	}, http.StatusOK)
}

// CreatePost: GET отдаёт пустую форму, POST создаёт пост и
// редиректит на профиль автора
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.writePostForm(w, r, PostForm{}, false, nil)
		return
	}

	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.Context().Value("userID").(string)
	username := r.Context().Value("username").(string)

	form, image, err := h.parsePostForm(r)
	if err != nil {
		WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(form); err != nil {
		h.writePostForm(w, r, form, false, map[string]string{"text": "Обязательное поле"})
		return
	}

	serviceReq := service.CreatePostRequest{
		AuthorID: userID,
		Text:     form.Text,
		GroupID:  groupIDOrNil(form.GroupID),
		Image:    image,
	}

	if _, err := h.PostService.CreatePost(r.Context(), serviceReq); err != nil {
		WriteRepoError(w, err)
		return
	}

	http.Redirect(w, r, "/profile/"+username+"/", http.StatusFound)
}

// EditPost: не-автор молча редиректится на страницу поста,
// created_at при редактировании не меняется
func (h *Handlers) EditPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		WriteRepoError(w, err)
		return
	}

	userID := r.Context().Value("userID").(string)

	// authorization short-circuit, not an error
	if post.AuthorID != userID {
		http.Redirect(w, r, "/posts/"+postID+"/", http.StatusFound)
		return
	}

	if r.Method == http.MethodGet {
		form := PostForm{Text: post.Text}
		if post.GroupID != nil {
			form.GroupID = *post.GroupID
		}
		h.writePostForm(w, r, form, true, nil)
		return
	}

	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	form, image, err := h.parsePostForm(r)
	if err != nil {
		WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(form); err != nil {
		h.writePostForm(w, r, form, true, map[string]string{"text": "Обязательное поле"})
		return
	}

	serviceReq := service.UpdatePostRequest{
		PostID:   post.PostID,
		AuthorID: userID,
		Text:     form.Text,
		GroupID:  groupIDOrNil(form.GroupID),
		Image:    image,
	}

	if _, err := h.PostService.UpdatePost(r.Context(), serviceReq); err != nil {
		WriteRepoError(w, err)
		return
	}

	http.Redirect(w, r, "/posts/"+postID+"/", http.StatusFound)
}

// parsePostForm читает multipart или urlencoded форму поста.
// Картинка необязательна, её отсутствие - не ошибка.
func (h *Handlers) parsePostForm(r *http.Request) (PostForm, *service.ImageUpload, error) {
	var image *service.ImageUpload

	contentType := r.Header.Get("Content-Type")
	if len(contentType) >= 19 && contentType[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
			return PostForm{}, nil, err
		}

		file, header, err := r.FormFile("image")
		if err == nil {
			image = &service.ImageUpload{
				FileName: header.Filename,
				File:     file,
				Size:     header.Size,
			}
		} else if err != http.ErrMissingFile {
			return PostForm{}, nil, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return PostForm{}, nil, err
		}
	}

	form := PostForm{
		Text:    r.FormValue("text"),
		GroupID: r.FormValue("group"),
	}

	return form, image, nil
}

func (h *Handlers) writePostForm(w http.ResponseWriter, r *http.Request, form PostForm, isEdit bool, fieldErrors map[string]string) {
	groups, err := h.GroupRepo.List(r.Context())
	if err != nil {
		groups = []models.Group{}
	}

	status := http.StatusOK
	if fieldErrors != nil {
		status = http.StatusBadRequest
	}

	WriteJSON(w, map[string]interface{}{
		"form":   form,
		"groups": groups,
		"isEdit": isEdit,
		"errors": fieldErrors,
	}, status)
}

func groupIDOrNil(groupID string) *string {
	if groupID == "" {
		return nil
	}
	return &groupID
}
