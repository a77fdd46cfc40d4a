package question

import "context"

// Store is the persistence contract the service depends on. Implementations
// return ErrQuestionNotFound for unknown ids and list questions ordered by id.
type Store interface {
	ListQuestions(ctx context.Context) ([]Question, error)
	GetQuestion(ctx context.Context, id int64) (Question, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]Question, error)
	ListCategories(ctx context.Context) ([]Category, error)
	InsertQuestion(ctx context.Context, q NewQuestion) (Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
}
