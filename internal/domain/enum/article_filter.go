package enum

// ArticleFilter selects which articles a listing returns
type ArticleFilter string

const (
	ArticleFilterActive  ArticleFilter = "Active"
	ArticleFilterDeleted ArticleFilter = "Deleted"
	ArticleFilterAll     ArticleFilter = "All"
)

// ParseArticleFilter maps a query value to a filter, defaulting to Active
func ParseArticleFilter(s string) ArticleFilter {
	switch s {
	case "Deleted", "deleted":
		return ArticleFilterDeleted
	case "All", "all":
		return ArticleFilterAll
	default:
		return ArticleFilterActive
	}
}
