package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/WidadAlkibsi/TriviaProject/internal/question"
)

// MemoryStore is an in-process question.Store for tests and STORE_DRIVER=memory.
type MemoryStore struct {
	mu         sync.RWMutex
	nextID     int64
	questions  map[int64]question.Question
	categories map[int64]question.Category
}

var _ question.Store = (*MemoryStore)(nil)

// NewMemoryStore seeds a store. Ids of seeded questions are kept; inserts continue
// after the highest one.
func NewMemoryStore(categories []question.Category, questions []question.Question) *MemoryStore {
	s := &MemoryStore{
		nextID:     1,
		questions:  make(map[int64]question.Question, len(questions)),
		categories: make(map[int64]question.Category, len(categories)),
	}
	for _, c := range categories {
		s.categories[c.ID] = c
	}
	for _, q := range questions {
		s.questions[q.ID] = q
		if q.ID >= s.nextID {
			s.nextID = q.ID + 1
		}
	}
	return s
}

// Seed is the on-disk format read by LoadSeedFile.
type Seed struct {
	Categories []question.Category `json:"categories"`
	Questions  []question.Question `json:"questions"`
}

// LoadSeedFile builds a MemoryStore from a JSON seed file.
func LoadSeedFile(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return NewMemoryStore(seed.Categories, seed.Questions), nil
}

func (s *MemoryStore) ListQuestions(_ context.Context) ([]question.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(question.Question) bool { return true }), nil
}

func (s *MemoryStore) ListByCategory(_ context.Context, categoryID int64) ([]question.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(q question.Question) bool { return q.CategoryID == categoryID }), nil
}

func (s *MemoryStore) GetQuestion(_ context.Context, id int64) (question.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[id]
	if !ok {
		return question.Question{}, question.ErrQuestionNotFound
	}
	return q, nil
}

func (s *MemoryStore) ListCategories(_ context.Context) ([]question.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]question.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) InsertQuestion(_ context.Context, nq question.NewQuestion) (question.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := question.Question{
		ID:         s.nextID,
		Text:       nq.Text,
		Answer:     nq.Answer,
		CategoryID: nq.CategoryID,
		Difficulty: nq.Difficulty,
	}
	s.questions[q.ID] = q
	s.nextID++
	return q, nil
}

func (s *MemoryStore) DeleteQuestion(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return question.ErrQuestionNotFound
	}
	delete(s.questions, id)
	return nil
}

// sorted must be called with mu held.
func (s *MemoryStore) sorted(keep func(question.Question) bool) []question.Question {
	out := make([]question.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
