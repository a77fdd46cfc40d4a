package question

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/WidadAlkibsi/TriviaProject/internal/logging"
	httperrors "github.com/WidadAlkibsi/TriviaProject/pkg/http/errors"
)

// HTTPHandler exposes the question bank and quiz endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a question HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

// Register mounts every route on mux under prefix ("" or "/api").
func (h *HTTPHandler) Register(mux *http.ServeMux, prefix string) {
	mux.HandleFunc("GET "+prefix+"/categories", h.HandleCategories)
	mux.HandleFunc("GET "+prefix+"/categories/{id}/questions", h.HandleCategoryQuestions)
	mux.HandleFunc("GET "+prefix+"/questions", h.HandleListQuestions)
	mux.HandleFunc("POST "+prefix+"/questions", h.HandleSearchOrCreate)
	mux.HandleFunc("GET "+prefix+"/questions/{id}", h.HandleGetQuestion)
	mux.HandleFunc("DELETE "+prefix+"/questions/{id}", h.HandleDeleteQuestion)
	mux.HandleFunc("POST "+prefix+"/quizzes", h.HandleNextQuizQuestion)
}

// HandleCategories handles GET /categories
func (h *HTTPHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": cats,
	})
}

// HandleListQuestions handles GET /questions?page=N
func (h *HTTPHandler) HandleListQuestions(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.ListQuestions(r.Context(), pageParam(r))
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        listing.Questions,
		"total_questions":  listing.Total,
		"categories":       listing.Categories,
		"current_category": nil,
	})
}

// HandleGetQuestion handles GET /questions/{id}
func (h *HTTPHandler) HandleGetQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	q, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": q,
	})
}

// questionRequest is the shared body of POST /questions. A present searchTerm
// selects search; otherwise the body describes a new question.
type questionRequest struct {
	SearchTerm *string `json:"searchTerm"`
	Search     *string `json:"search"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Category   flexInt `json:"category"`
	Difficulty flexInt `json:"difficulty"`
}

func (q questionRequest) term() (string, bool) {
	if q.SearchTerm != nil {
		return *q.SearchTerm, true
	}
	if q.Search != nil {
		return *q.Search, true
	}
	return "", false
}

// HandleSearchOrCreate handles POST /questions
func (h *HTTPHandler) HandleSearchOrCreate(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondUnprocessable(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	if term, ok := req.term(); ok {
		page, err := h.svc.Search(r.Context(), term, pageParam(r))
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":         true,
			"questions":       page.Questions,
			"total_questions": page.Total,
		})
		return
	}

	created, err := h.svc.Create(r.Context(), NewQuestion{
		Text:       req.Question,
		Answer:     req.Answer,
		CategoryID: int64(req.Category),
		Difficulty: int(req.Difficulty),
	})
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"created":         created.ID,
		"questions":       created.Questions,
		"total_questions": created.Total,
	})
}

// HandleCategoryQuestions handles GET /categories/{id}/questions?page=N
func (h *HTTPHandler) HandleCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	page, err := h.svc.ByCategory(r.Context(), id, pageParam(r))
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        page.Questions,
		"total_questions":  page.Total,
		"current_category": id,
	})
}

// HandleDeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandler) HandleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	deleted, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"deleted":         deleted.ID,
		"questions":       deleted.Questions,
		"total_questions": deleted.Total,
	})
}

// QuizRequest is the body of POST /quizzes. Both camelCase and snake_case keys
// are accepted.
type QuizRequest struct {
	PreviousQuestions      *[]int64      `json:"previousQuestions"`
	PreviousQuestionsSnake *[]int64      `json:"previous_questions"`
	QuizCategory           *QuizCategory `json:"quizCategory"`
	QuizCategorySnake      *QuizCategory `json:"quiz_category"`
}

// QuizCategory names the quiz scope; id 0 means every category.
type QuizCategory struct {
	ID   *flexInt `json:"id"`
	Type string   `json:"type,omitempty"`
}

// Resolve validates presence of the required fields and returns the scope and
// excluded ids. Missing fields are BadRequest.
func (q QuizRequest) Resolve() (Scope, []int64, error) {
	const op = "quiz request"
	previous := q.PreviousQuestions
	if previous == nil {
		previous = q.PreviousQuestionsSnake
	}
	category := q.QuizCategory
	if category == nil {
		category = q.QuizCategorySnake
	}

	switch {
	case previous == nil:
		return Scope{}, nil, BadRequest(op, "previousQuestions is required")
	case category == nil:
		return Scope{}, nil, BadRequest(op, "quizCategory is required")
	case category.ID == nil:
		return Scope{}, nil, BadRequest(op, "quizCategory.id is required")
	}

	if *category.ID == 0 {
		return AllCategories(), *previous, nil
	}
	return InCategory(int64(*category.ID)), *previous, nil
}

// HandleNextQuizQuestion handles POST /quizzes
func (h *HTTPHandler) HandleNextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	scope, excluded, err := req.Resolve()
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	draw, err := h.svc.NextQuizQuestion(r.Context(), scope, excluded)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	resp := map[string]interface{}{"success": true}
	if !draw.Exhausted() {
		resp["question"] = draw.Question
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "")
		return 0, false
	}
	return id, true
}

func (h *HTTPHandler) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContextOr(r.Context(), h.logger)
	status, code := StatusFor(err)
	if status >= http.StatusInternalServerError || KindOf(err) == KindUnprocessable {
		logger.Warn().Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	httperrors.RespondError(w, status, code, ClientMessage(err))
}

// StatusFor maps a typed error to its HTTP status and envelope code.
func StatusFor(err error) (int, string) {
	switch KindOf(err) {
	case KindBadRequest:
		return http.StatusBadRequest, httperrors.ErrCodeMissingField
	case KindNotFound:
		switch {
		case errors.Is(err, ErrQuestionNotFound):
			return http.StatusNotFound, httperrors.ErrCodeQuestionNotFound
		case errors.Is(err, ErrCategoryNotFound):
			return http.StatusNotFound, httperrors.ErrCodeCategoryNotFound
		}
		return http.StatusNotFound, httperrors.ErrCodeNotFound
	case KindUnprocessable:
		if ClientMessage(err) != "" {
			return http.StatusUnprocessableEntity, httperrors.ErrCodeValidationFailed
		}
		return http.StatusUnprocessableEntity, httperrors.ErrCodeUnprocessable
	default:
		return http.StatusInternalServerError, httperrors.ErrCodeInternalError
	}
}

// pageParam mirrors lenient int parsing: absent or malformed pages mean 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		return 1
	}
	return page
}

// flexInt accepts a JSON number or a numeric string, since clients send
// category ids from form selects.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*f = flexInt(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		httperrors.RespondInternalError(w, "failed to encode response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
