package service

import (
	"errors"
	"sort"
	"strings"

	"tableside/internal/domain"
)

var (
	ErrInvalidMenuItem  = errors.New("name, description, category and price are required")
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// Filter narrows a catalog listing. Zero value matches everything.
type Filter struct {
	Search        string
	Category      string
	AvailableOnly bool
}

func (f Filter) matches(item domain.MenuItem) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(item.Name), needle) &&
			!strings.Contains(strings.ToLower(item.Description), needle) {
			return false
		}
	}
	if f.Category != "" && f.Category != "all" && f.Category != item.Category {
		return false
	}
	if f.AvailableOnly && !item.Availability {
		return false
	}
	return true
}

type MenuService struct {
	repo MenuRepository
}

func NewMenuService(repo MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

// List recomputes the filtered view on every call; no indexing at catalog
// scale. Missing image references are replaced with the placeholder.
func (s *MenuService) List(f Filter) ([]domain.MenuItem, error) {
	items, err := s.repo.LoadMenu()
	if err != nil {
		return nil, err
	}

	matched := []domain.MenuItem{}
	for _, item := range items {
		if !f.matches(item) {
			continue
		}
		if item.ImageURL == "" {
			item.ImageURL = domain.PlaceholderImage
		}
		matched = append(matched, item)
	}
	return matched, nil
}

func (s *MenuService) Get(id string) (*domain.MenuItem, error) {
	items, err := s.repo.LoadMenu()
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == id {
			i := item
			return &i, nil
		}
	}
	return nil, ErrMenuItemNotFound
}

// Categories returns the distinct category labels in the catalog, sorted.
func (s *MenuService) Categories() ([]string, error) {
	items, err := s.repo.LoadMenu()
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var categories []string
	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func validateMenuItem(item *domain.MenuItem) error {
	if strings.TrimSpace(item.Name) == "" ||
		strings.TrimSpace(item.Description) == "" ||
		strings.TrimSpace(item.Category) == "" ||
		item.Price <= 0 {
		return ErrInvalidMenuItem
	}
	return nil
}

// Add assigns a new id and appends the item to the catalog.
func (s *MenuService) Add(item *domain.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}

	items, err := s.repo.LoadMenu()
	if err != nil {
		return err
	}

	item.ID = newID()
	if item.ImageURL == "" {
		item.ImageURL = domain.PlaceholderImage
	}
	return s.repo.SaveMenu(append(items, *item))
}

func (s *MenuService) Update(item *domain.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}

	items, err := s.repo.LoadMenu()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = *item
			return s.repo.SaveMenu(items)
		}
	}
	return ErrMenuItemNotFound
}

// Remove deletes the item from the catalog. Existing orders are untouched:
// they carry their own snapshot of the item data.
func (s *MenuService) Remove(id string) error {
	items, err := s.repo.LoadMenu()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			return s.repo.SaveMenu(append(items[:i], items[i+1:]...))
		}
	}
	return ErrMenuItemNotFound
}

func (s *MenuService) ToggleAvailability(id string) (*domain.MenuItem, error) {
	items, err := s.repo.LoadMenu()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Availability = !items[i].Availability
			if err := s.repo.SaveMenu(items); err != nil {
				return nil, err
			}
			item := items[i]
			return &item, nil
		}
	}
	return nil, ErrMenuItemNotFound
}

var _ MenuServiceInterface = (*MenuService)(nil)
