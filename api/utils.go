package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/evilsocket/islazy/log"
	"github.com/go-chi/chi"
)

func pageNum(r *http.Request) (int, error) {
	pageParam := chi.URLParam(r, "p")
	if pageParam == "" {
		pageParam = "1"
	}
	return strconv.Atoi(pageParam)
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.WriteHeader(statusCode)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("error encoding response: %v", err)
		_, _ = fmt.Fprintf(w, "%s", err.Error())
	}
}

func ERROR(w http.ResponseWriter, statusCode int, err error) {
	if err != nil {
		JSON(w, statusCode, struct {
			Error string `json:"error"`
		}{
			Error: err.Error(),
		})
		return
	}
	JSON(w, http.StatusBadRequest, nil)
}
