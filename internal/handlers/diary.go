package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bensuskins/nutrition-hub/internal/middleware"
	"github.com/bensuskins/nutrition-hub/internal/services"
)

type DiaryHandler struct {
	feed *services.DiaryFeed
}

func NewDiaryHandler(feed *services.DiaryFeed) *DiaryHandler {
	return &DiaryHandler{feed: feed}
}

func (handler *DiaryHandler) Feed(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := handler.feed.Render(r.Context(), middleware.GetProfile(r.Context()), from, to)
	if err != nil {
		slog.Error("rendering meal diary", "error", err)
		http.Error(w, "Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=meal-diary.ics")
	w.Write([]byte(data))
}
