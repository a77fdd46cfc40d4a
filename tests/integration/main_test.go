//go:build integration
// +build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestHealthz(t *testing.T) {
	resp, err := http.Get(fmt.Sprintf("%s/healthz", baseURL()))
	if err != nil {
		t.Fatalf("health check request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}
}

func TestCategories(t *testing.T) {
	var out struct {
		Success    bool              `json:"success"`
		Categories map[string]string `json:"categories"`
	}
	if status := getJSON(t, "/categories", &out); status != http.StatusOK {
		t.Fatalf("unexpected status code: %d", status)
	}
	if !out.Success || len(out.Categories) == 0 {
		t.Fatalf("expected seeded categories, got %+v", out)
	}
}

func TestQuestionsPagination(t *testing.T) {
	var out struct {
		Questions []map[string]any `json:"questions"`
		Total     int              `json:"total_questions"`
	}
	if status := getJSON(t, "/questions?page=1", &out); status != http.StatusOK {
		t.Fatalf("unexpected status code: %d", status)
	}
	if len(out.Questions) == 0 || len(out.Questions) > 10 {
		t.Fatalf("expected 1-10 questions on page 1, got %d", len(out.Questions))
	}
	if out.Total < len(out.Questions) {
		t.Fatalf("total %d smaller than page %d", out.Total, len(out.Questions))
	}

	var past struct {
		Questions []map[string]any `json:"questions"`
	}
	if status := getJSON(t, "/questions?page=10000", &past); status != http.StatusOK {
		t.Fatalf("unexpected status code past last page: %d", status)
	}
	if len(past.Questions) != 0 {
		t.Fatalf("expected empty page, got %d questions", len(past.Questions))
	}
}

func TestUnknownCategoryIsNotFound(t *testing.T) {
	var out struct {
		Success bool `json:"success"`
		Error   int  `json:"error"`
	}
	if status := getJSON(t, "/categories/100000/questions", &out); status != http.StatusNotFound {
		t.Fatalf("unexpected status code: %d", status)
	}
	if out.Success || out.Error != http.StatusNotFound {
		t.Fatalf("unexpected envelope: %+v", out)
	}
}

func TestQuizMissingFieldIsBadRequest(t *testing.T) {
	status := postJSON(t, "/quizzes", map[string]any{"quizCategory": map[string]int{"id": 0}}, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("unexpected status code: %d", status)
	}
}
