package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/WidadAlkibsi/TriviaProject/internal/question"
)

// dbtx is the subset of *pgxpool.Pool (and pgx.Tx) the repository needs.
type dbtx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	listQuestionsSQL = `
		SELECT id, question, answer, category, difficulty
		FROM questions
		ORDER BY id`

	listByCategorySQL = `
		SELECT id, question, answer, category, difficulty
		FROM questions
		WHERE category = $1
		ORDER BY id`

	getQuestionSQL = `
		SELECT id, question, answer, category, difficulty
		FROM questions
		WHERE id = $1`

	insertQuestionSQL = `
		INSERT INTO questions (question, answer, category, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	deleteQuestionSQL = `DELETE FROM questions WHERE id = $1`

	listCategoriesSQL = `SELECT id, type FROM categories ORDER BY id`
)

// QuestionRepository is the Postgres-backed question.Store.
type QuestionRepository struct {
	db dbtx
}

var _ question.Store = (*QuestionRepository)(nil)

func NewQuestionRepository(db dbtx) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ListQuestions returns the whole bank ordered by id.
func (r *QuestionRepository) ListQuestions(ctx context.Context) ([]question.Question, error) {
	return r.collect(ctx, listQuestionsSQL)
}

// ListByCategory returns one category's questions ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int64) ([]question.Question, error) {
	return r.collect(ctx, listByCategorySQL, categoryID)
}

// GetQuestion fetches a question by id.
func (r *QuestionRepository) GetQuestion(ctx context.Context, id int64) (question.Question, error) {
	q, err := scanQuestion(r.db.QueryRow(ctx, getQuestionSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return question.Question{}, question.ErrQuestionNotFound
		}
		return question.Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return q, nil
}

// InsertQuestion stores a question; an uncategorized question gets a NULL category.
func (r *QuestionRepository) InsertQuestion(ctx context.Context, nq question.NewQuestion) (question.Question, error) {
	category := pgtype.Int8{Int64: nq.CategoryID, Valid: nq.CategoryID != question.Uncategorized}

	var id int64
	if err := r.db.QueryRow(ctx, insertQuestionSQL, nq.Text, nq.Answer, category, nq.Difficulty).Scan(&id); err != nil {
		return question.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return question.Question{
		ID:         id,
		Text:       nq.Text,
		Answer:     nq.Answer,
		CategoryID: nq.CategoryID,
		Difficulty: nq.Difficulty,
	}, nil
}

// DeleteQuestion removes a question by id.
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, deleteQuestionSQL, id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return question.ErrQuestionNotFound
	}
	return nil
}

// ListCategories returns every category ordered by id.
func (r *QuestionRepository) ListCategories(ctx context.Context) ([]question.Category, error) {
	rows, err := r.db.Query(ctx, listCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	cats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (question.Category, error) {
		var c question.Category
		err := row.Scan(&c.ID, &c.Name)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}
	return cats, nil
}

func (r *QuestionRepository) collect(ctx context.Context, sql string, args ...any) ([]question.Question, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	qs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (question.Question, error) {
		return scanQuestion(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan questions: %w", err)
	}
	return qs, nil
}

func scanQuestion(row pgx.Row) (question.Question, error) {
	var (
		q        question.Question
		category pgtype.Int8
	)
	if err := row.Scan(&q.ID, &q.Text, &q.Answer, &category, &q.Difficulty); err != nil {
		return question.Question{}, err
	}
	if category.Valid {
		q.CategoryID = category.Int64
	}
	return q, nil
}
