package schema

// ReviewTable represents the 'reviews' table
type ReviewTable struct {
	Table    string
	ID       string
	TitleID  string
	AuthorID string
	Text     string
	Score    string
	PubDate  string
}

// Review is the schema definition for reviews
var Review = ReviewTable{
	Table:    "reviews",
	ID:       "id",
	TitleID:  "title_id",
	AuthorID: "author_id",
	Text:     "text",
	Score:    "score",
	PubDate:  "pub_date",
}

func (t ReviewTable) Columns() []string {
	return []string{t.ID, t.TitleID, t.AuthorID, t.Text, t.Score, t.PubDate}
}

// CommentTable represents the 'comments' table
type CommentTable struct {
	Table    string
	ID       string
	ReviewID string
	AuthorID string
	Text     string
	PubDate  string
}

// Comment is the schema definition for comments
var Comment = CommentTable{
	Table:    "comments",
	ID:       "id",
	ReviewID: "review_id",
	AuthorID: "author_id",
	Text:     "text",
	PubDate:  "pub_date",
}

func (t CommentTable) Columns() []string {
	return []string{t.ID, t.ReviewID, t.AuthorID, t.Text, t.PubDate}
}
