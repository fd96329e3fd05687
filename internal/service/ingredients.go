package service

import "strings"

// IngredientList is the ordered, deduplicated list a user builds before
// asking for suggestions. Entries are trimmed and never empty; duplicates are
// detected by exact text.
type IngredientList struct {
	items    []string
	onChange func([]string)
}

// NewIngredientList creates a list seeded with items
func NewIngredientList(items ...string) *IngredientList {
	l := &IngredientList{}
	for _, item := range items {
		l.Add(item)
	}
	return l
}

// ParseIngredientList splits comma-separated text into a list
func ParseIngredientList(text string) *IngredientList {
	return NewIngredientList(strings.Split(text, ",")...)
}

// OnChange registers fn to receive the current items after every change
func (l *IngredientList) OnChange(fn func([]string)) {
	l.onChange = fn
}

// Add appends text unless it is blank or already present
func (l *IngredientList) Add(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || l.Contains(trimmed) {
		return false
	}
	l.items = append(l.items, trimmed)
	l.notify()
	return true
}

// Remove deletes the entry at index
func (l *IngredientList) Remove(index int) bool {
	if index < 0 || index >= len(l.items) {
		return false
	}
	l.items = append(l.items[:index:index], l.items[index+1:]...)
	l.notify()
	return true
}

// Contains reports whether text is already in the list
func (l *IngredientList) Contains(text string) bool {
	for _, item := range l.items {
		if item == text {
			return true
		}
	}
	return false
}

// Items returns a copy of the entries in order
func (l *IngredientList) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of entries
func (l *IngredientList) Len() int {
	return len(l.items)
}

// Join produces the ingredient string sent to the suggestion endpoint
func (l *IngredientList) Join() string {
	return strings.Join(l.items, ", ")
}

func (l *IngredientList) notify() {
	if l.onChange != nil {
		l.onChange(l.Items())
	}
}
