package shopping

// StoreOffer is one store's price for a shopping list item.
type StoreOffer struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	InStock bool    `json:"in_stock"`
}

// Item is a single line on a shopping list.
type Item struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Amount   string       `json:"amount"`
	Price    float64      `json:"price"`
	Checked  bool         `json:"checked"`
	Category string       `json:"category"`
	Stores   []StoreOffer `json:"stores"`
}

// List is a shopping list grouped into categories.
type List struct {
	ID         int64             `json:"id"`
	MealPlanID int64             `json:"meal_plan_id,omitempty"`
	Categories map[string][]Item `json:"categories"`
}

// Items flattens all categories into a single slice.
func (l *List) Items() []Item {
	var items []Item
	for _, group := range l.Categories {
		items = append(items, group...)
	}
	return items
}
