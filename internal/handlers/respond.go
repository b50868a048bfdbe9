package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// writeJSON отправляет ответ в формате JSON с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Статус уже отправлен клиенту, остается только залогировать
		log.Printf("[Handlers] Ошибка кодирования JSON-ответа: %v", err)
	}
}

// writeError отправляет ошибку в едином конверте {"error": ...}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeMessage отправляет успешный ответ без полезной нагрузки.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
