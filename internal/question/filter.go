package question

import "strings"

// FilterByText keeps questions whose text contains term, ignoring case.
// An empty term matches everything.
func FilterByText(questions []Question, term string) []Question {
	if term == "" {
		return questions
	}
	needle := strings.ToLower(term)
	out := make([]Question, 0, len(questions))
	for _, q := range questions {
		if strings.Contains(strings.ToLower(q.Text), needle) {
			out = append(out, q)
		}
	}
	return out
}

// FilterByCategory keeps questions in categoryID. An id missing from categories is
// an Unprocessable error, which callers must keep distinct from an empty result.
func FilterByCategory(questions []Question, categories Categories, categoryID int64) ([]Question, error) {
	if !categories.Has(categoryID) {
		return nil, Unprocessable("filter category", "unknown category %d", categoryID)
	}
	out := make([]Question, 0, len(questions))
	for _, q := range questions {
		if q.CategoryID == categoryID {
			out = append(out, q)
		}
	}
	return out, nil
}

// Filter composes the text and category predicates. A nil CategoryID disables the
// category predicate.
type Filter struct {
	Term       string
	CategoryID *int64
}

// Apply returns the questions matching every configured predicate.
func (f Filter) Apply(questions []Question, categories Categories) ([]Question, error) {
	out := questions
	if f.CategoryID != nil {
		var err error
		out, err = FilterByCategory(out, categories, *f.CategoryID)
		if err != nil {
			return nil, err
		}
	}
	return FilterByText(out, f.Term), nil
}

// CheckReferences reports the first question whose category does not resolve.
func CheckReferences(questions []Question, categories Categories) error {
	for _, q := range questions {
		if q.CategoryID != Uncategorized && !categories.Has(q.CategoryID) {
			return Unprocessable("check references", "question %d references unknown category %d", q.ID, q.CategoryID)
		}
	}
	return nil
}
