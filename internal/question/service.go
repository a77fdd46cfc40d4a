package question

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/WidadAlkibsi/TriviaProject/internal/metrics"
)

// Listing is a page of the full question bank plus the category mapping.
type Listing struct {
	Page
	Categories Categories
}

// Created reports a newly inserted question and the refreshed first page.
type Created struct {
	ID int64
	Page
}

// Deleted reports a removed question and the refreshed first page.
type Deleted struct {
	ID int64
	Page
}

// ServiceOptions tunes paging and quiz randomness.
type ServiceOptions struct {
	PageSize int
	// Rand replaces the process-wide generator, e.g. with NewSeededSource in tests.
	Rand RandSource
}

// Service resolves question subsets through the Store and applies the pagination,
// filter and selector engines. It keeps no state between calls.
type Service struct {
	store    Store
	selector *Selector
	pageSize int
	logger   zerolog.Logger
}

func NewService(store Store, opts ServiceOptions, logger zerolog.Logger) *Service {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		store:    store,
		selector: NewSelector(opts.Rand),
		pageSize: pageSize,
		logger:   logger.With().Str("component", "question_service").Logger(),
	}
}

// PageSize returns the configured page window.
func (s *Service) PageSize() int { return s.pageSize }

// Categories returns every category keyed by id.
func (s *Service) Categories(ctx context.Context) (Categories, error) {
	const op = "list categories"
	list, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, storeFailure(op, err)
	}
	if len(list) == 0 {
		return nil, NotFound(op, "no categories")
	}
	return IndexCategories(list), nil
}

// ListQuestions pages through the whole bank. An empty bank is NotFound; a page
// past the end is an empty page.
func (s *Service) ListQuestions(ctx context.Context, page int) (Listing, error) {
	const op = "list questions"
	all, err := s.store.ListQuestions(ctx)
	if err != nil {
		return Listing{}, storeFailure(op, err)
	}
	if len(all) == 0 {
		return Listing{}, NotFound(op, "no questions")
	}
	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return Listing{}, storeFailure(op, err)
	}
	return Listing{
		Page:       s.page(all, page),
		Categories: IndexCategories(cats),
	}, nil
}

// Get looks up a single question.
func (s *Service) Get(ctx context.Context, id int64) (Question, error) {
	q, err := s.store.GetQuestion(ctx, id)
	if err != nil {
		return Question{}, storeFailure("get question", err)
	}
	return q, nil
}

// Search returns the page of questions whose text contains term, ignoring case.
// Total counts every match, not just the page.
func (s *Service) Search(ctx context.Context, term string, page int) (Page, error) {
	all, err := s.store.ListQuestions(ctx)
	if err != nil {
		return Page{}, storeFailure("search questions", err)
	}
	return s.page(FilterByText(all, term), page), nil
}

// ByCategory pages through one category. Unknown categories and empty categories
// are both NotFound for this listing.
func (s *Service) ByCategory(ctx context.Context, categoryID int64, page int) (Page, error) {
	const op = "list category questions"
	cats, err := s.categoryIndex(ctx, op)
	if err != nil {
		return Page{}, err
	}
	if !cats.Has(categoryID) {
		return Page{}, categoryNotFound(op, categoryID)
	}

	scoped, err := s.store.ListByCategory(ctx, categoryID)
	if err != nil {
		return Page{}, storeFailure(op, err)
	}
	scoped, err = FilterByCategory(scoped, cats, categoryID)
	if err != nil {
		return Page{}, err
	}
	if len(scoped) == 0 {
		return Page{}, NotFound(op, "no questions in category %d", categoryID)
	}
	return s.page(scoped, page), nil
}

// Create validates and inserts a question, then returns the refreshed first page.
func (s *Service) Create(ctx context.Context, nq NewQuestion) (Created, error) {
	const op = "create question"
	nq.Text = strings.TrimSpace(nq.Text)
	nq.Answer = strings.TrimSpace(nq.Answer)

	switch {
	case nq.Text == "":
		return Created{}, Unprocessable(op, "question text is required")
	case nq.Answer == "":
		return Created{}, Unprocessable(op, "answer is required")
	case nq.Difficulty < MinDifficulty || nq.Difficulty > MaxDifficulty:
		return Created{}, Unprocessable(op, "difficulty must be between %d and %d", MinDifficulty, MaxDifficulty)
	}

	if nq.CategoryID != Uncategorized {
		cats, err := s.categoryIndex(ctx, op)
		if err != nil {
			return Created{}, err
		}
		if !cats.Has(nq.CategoryID) {
			return Created{}, Unprocessable(op, "unknown category %d", nq.CategoryID)
		}
	}

	q, err := s.store.InsertQuestion(ctx, nq)
	if err != nil {
		return Created{}, storeFailure(op, err)
	}
	s.logger.Info().Int64("question_id", q.ID).Int64("category_id", q.CategoryID).Msg("question created")

	all, err := s.store.ListQuestions(ctx)
	if err != nil {
		return Created{}, storeFailure(op, err)
	}
	return Created{ID: q.ID, Page: s.page(all, 1)}, nil
}

// Delete removes a question, then returns the refreshed first page.
func (s *Service) Delete(ctx context.Context, id int64) (Deleted, error) {
	const op = "delete question"
	if _, err := s.store.GetQuestion(ctx, id); err != nil {
		return Deleted{}, storeFailure(op, err)
	}
	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		return Deleted{}, storeFailure(op, err)
	}
	s.logger.Info().Int64("question_id", id).Msg("question deleted")

	all, err := s.store.ListQuestions(ctx)
	if err != nil {
		return Deleted{}, storeFailure(op, err)
	}
	return Deleted{ID: id, Page: s.page(all, 1)}, nil
}

// NextQuizQuestion draws one question in scope that is not in excluded. The scope
// is validated before the question bank is read.
func (s *Service) NextQuizQuestion(ctx context.Context, scope Scope, excluded []int64) (Draw, error) {
	const op = "next quiz question"
	cats, err := s.categoryIndex(ctx, op)
	if err != nil {
		metrics.ObserveDraw("rejected")
		return Draw{}, err
	}
	if !scope.All() && !cats.Has(scope.CategoryID()) {
		metrics.ObserveDraw("rejected")
		return Draw{}, Unprocessable(op, "unknown quiz category %d", scope.CategoryID())
	}

	var pool []Question
	if scope.All() {
		pool, err = s.store.ListQuestions(ctx)
	} else {
		pool, err = s.store.ListByCategory(ctx, scope.CategoryID())
	}
	if err != nil {
		metrics.ObserveDraw("rejected")
		return Draw{}, storeFailure(op, err)
	}
	if err := CheckReferences(pool, cats); err != nil {
		metrics.ObserveDraw("rejected")
		return Draw{}, err
	}

	draw, err := s.selector.Next(pool, cats, scope, excluded)
	if err != nil {
		metrics.ObserveDraw("rejected")
		return Draw{}, err
	}
	metrics.ObserveDraw(draw.State.String())

	evt := s.logger.Debug().Str("state", draw.State.String()).Int("excluded", len(excluded))
	if draw.Question != nil {
		evt = evt.Int64("question_id", draw.Question.ID)
	}
	evt.Msg("quiz draw")
	return draw, nil
}

func (s *Service) categoryIndex(ctx context.Context, op string) (Categories, error) {
	list, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, storeFailure(op, err)
	}
	return IndexCategories(list), nil
}

func (s *Service) page(questions []Question, page int) Page {
	if page <= 0 {
		page = 1
	}
	return Page{
		Questions: Paginate(questions, page, s.pageSize),
		Total:     len(questions),
		Number:    page,
	}
}
