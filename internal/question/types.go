package question

// Difficulty bounds accepted on creation.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Uncategorized marks a question that belongs to no category.
const Uncategorized int64 = 0

// Question is a stored trivia question as delivered to clients.
type Question struct {
	ID         int64  `json:"id"`
	Text       string `json:"question"`
	Answer     string `json:"answer"`
	CategoryID int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category groups questions. Categories are read-only here.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"type"`
}

// NewQuestion carries the fields needed to insert a question.
type NewQuestion struct {
	Text       string `json:"question"`
	Answer     string `json:"answer"`
	CategoryID int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Categories indexes category names by id.
type Categories map[int64]string

// IndexCategories builds the id -> name mapping used by filters and responses.
func IndexCategories(list []Category) Categories {
	out := make(Categories, len(list))
	for _, c := range list {
		out[c.ID] = c.Name
	}
	return out
}

// Has reports whether id names a known category.
func (c Categories) Has(id int64) bool {
	_, ok := c[id]
	return ok
}

// Page is one window of an ordered question listing.
type Page struct {
	Questions []Question `json:"questions"`
	Total     int        `json:"total_questions"`
	Number    int        `json:"-"`
}
