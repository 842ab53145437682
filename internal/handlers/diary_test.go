package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func TestDiaryHandler_Feed(t *testing.T) {
	router, db := newTestRouter(t)
	id := testProfile(t, db)
	doRequest(t, router, http.MethodPost, "/api/profiles/"+id+"/meals", lunchBody)

	recorder := doRequest(t, router, http.MethodGet, "/api/profiles/"+id+"/diary.ics", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}
	if contentType := recorder.Header().Get("Content-Type"); contentType != "text/calendar; charset=utf-8" {
		t.Errorf("unexpected content type %q", contentType)
	}

	body := recorder.Body.String()
	if !strings.Contains(body, "BEGIN:VEVENT") {
		t.Error("expected an event in the feed")
	}
	if !strings.Contains(body, "[Lunch] 355 kcal") {
		t.Errorf("expected the meal summary in the feed, got:\n%s", body)
	}
}

func TestDiaryHandler_FeedUnknownProfile(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodGet, "/api/profiles/missing/diary.ics", "")
	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", recorder.Code)
	}
}
