package schema

// Named constraints declared by data/migrations. dberr maps them to client messages.
const (
	ConstraintUniqueReview   = "unique_review"
	ConstraintReviewScore    = "reviews_score_range"
	ConstraintUsernameUnique = "users_username_key"
	ConstraintEmailUnique    = "users_email_key"
	ConstraintUsernameNotMe  = "users_username_not_me"
	ConstraintUsernameFormat = "users_username_format"
	ConstraintUserRole       = "users_role_check"
	ConstraintCategorySlug   = "categories_slug_key"
	ConstraintGenreSlug      = "genres_slug_key"
)
