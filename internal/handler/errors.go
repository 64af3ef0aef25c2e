package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"miniblog/internal/repository"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteJSON отдаёт контекст страницы потребителю шаблонов
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteRepoError: ErrNotFound - единственная ошибка с отдельной страницей (404),
// всё остальное - ошибка текущего запроса
func WriteRepoError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}
	WriteError(w, err.Error(), http.StatusInternalServerError)
}

// NotFoundHandler - страница 404 для неизвестных путей
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, "Страница не найдена", http.StatusNotFound)
}
