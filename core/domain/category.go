// ABOUTME: Category enum for articles plus the static category listing served to clients
// ABOUTME: The override categories (fails, mystery, british) are assigned by the classifier

package domain

// Category is one of the fixed article categories
type Category string

const (
	CategoryAll      Category = "all"
	CategoryAnimals  Category = "animals"
	CategoryViral    Category = "viral"
	CategorySport    Category = "sport"
	CategoryTech     Category = "tech"
	CategoryProperty Category = "property"
	CategoryFood     Category = "food"
	CategoryCrime    Category = "crime"
	CategoryWorld    Category = "world"
	CategoryFails    Category = "fails"
	CategoryMystery  Category = "mystery"
	CategoryBritish  Category = "british"
)

// CategoryInfo is the client facing description of a category
type CategoryInfo struct {
	ID    Category `json:"id"`
	Label string   `json:"label"`
	Emoji string   `json:"emoji"`
}

var categoryListing = []CategoryInfo{
	{ID: CategoryAll, Label: "All", Emoji: "📰"},
	{ID: CategoryAnimals, Label: "Animals", Emoji: "🦔"},
	{ID: CategoryViral, Label: "Viral", Emoji: "🔥"},
	{ID: CategoryFails, Label: "Fails", Emoji: "🤦"},
	{ID: CategoryMystery, Label: "Mystery", Emoji: "👽"},
	{ID: CategoryBritish, Label: "Only in Britain", Emoji: "🇬🇧"},
	{ID: CategorySport, Label: "Sport", Emoji: "⚽"},
	{ID: CategoryTech, Label: "Tech", Emoji: "🤖"},
	{ID: CategoryProperty, Label: "Property", Emoji: "🏠"},
	{ID: CategoryFood, Label: "Food", Emoji: "🍔"},
	{ID: CategoryCrime, Label: "Crime", Emoji: "🚨"},
	{ID: CategoryWorld, Label: "World", Emoji: "🌍"},
}

// Categories returns the static category listing in display order
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categoryListing))
	copy(out, categoryListing)
	return out
}

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	for _, info := range categoryListing {
		if info.ID == c {
			return true
		}
	}
	return false
}

// MatchesFilter reports whether an article in category c passes filter.
// An empty filter or "all" matches everything.
func (c Category) MatchesFilter(filter Category) bool {
	return filter == "" || filter == CategoryAll || c == filter
}
