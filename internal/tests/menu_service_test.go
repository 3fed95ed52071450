package tests

import (
	"testing"

	"tableside/internal/domain"
	"tableside/internal/mocks"
	"tableside/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func catalog() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: "1", Name: "Margherita Pizza", Description: "Fresh tomatoes and mozzarella", Price: 12.99, Category: "Pizza", ImageURL: "http://img/1", Availability: true},
		{ID: "2", Name: "Pepperoni Pizza", Description: "Classic pepperoni", Price: 15.99, Category: "Pizza", ImageURL: "http://img/2", Availability: false},
		{ID: "3", Name: "Caesar Salad", Description: "Crisp romaine lettuce", Price: 8.99, Category: "Salads", ImageURL: "http://img/3", Availability: true},
	}
}

func TestMenuService_List(t *testing.T) {
	tests := []struct {
		name    string
		filter  service.Filter
		wantIDs []string
	}{
		{name: "no_filter", filter: service.Filter{}, wantIDs: []string{"1", "2", "3"}},
		{name: "category_all", filter: service.Filter{Category: "all"}, wantIDs: []string{"1", "2", "3"}},
		{name: "category_pizza", filter: service.Filter{Category: "Pizza"}, wantIDs: []string{"1", "2"}},
		{name: "search_name_case_insensitive", filter: service.Filter{Search: "pepperoni"}, wantIDs: []string{"2"}},
		{name: "search_matches_description", filter: service.Filter{Search: "romaine"}, wantIDs: []string{"3"}},
		{name: "search_no_match", filter: service.Filter{Search: "sushi"}, wantIDs: []string{}},
		{name: "available_only", filter: service.Filter{AvailableOnly: true}, wantIDs: []string{"1", "3"}},
		{name: "combined", filter: service.Filter{Search: "pizza", Category: "Pizza", AvailableOnly: true}, wantIDs: []string{"1"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewMenuRepository(t)
			repo.On("LoadMenu").Return(catalog(), nil).Once()
			svc := service.NewMenuService(repo)

			items, err := svc.List(testCase.filter)

			require.NoError(t, err)
			ids := []string{}
			for _, item := range items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, testCase.wantIDs, ids)
		})
	}
}

func TestMenuService_ListSubstitutesPlaceholderImage(t *testing.T) {
	repo := mocks.NewMenuRepository(t)
	repo.On("LoadMenu").Return([]domain.MenuItem{
		{ID: "1", Name: "Soup", Description: "Hot", Price: 4.99, Category: "Starters", Availability: true},
	}, nil).Once()
	svc := service.NewMenuService(repo)

	items, err := svc.List(service.Filter{})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.PlaceholderImage, items[0].ImageURL)
}

func TestMenuService_Add(t *testing.T) {
	tests := []struct {
		name          string
		item          domain.MenuItem
		expectedError error
	}{
		{
			name: "valid",
			item: domain.MenuItem{Name: "Tiramisu", Description: "Espresso-soaked", Price: 7.49, Category: "Desserts"},
		},
		{
			name:          "missing_name",
			item:          domain.MenuItem{Description: "Espresso-soaked", Price: 7.49, Category: "Desserts"},
			expectedError: service.ErrInvalidMenuItem,
		},
		{
			name:          "missing_description",
			item:          domain.MenuItem{Name: "Tiramisu", Price: 7.49, Category: "Desserts"},
			expectedError: service.ErrInvalidMenuItem,
		},
		{
			name:          "missing_category",
			item:          domain.MenuItem{Name: "Tiramisu", Description: "Espresso-soaked", Price: 7.49},
			expectedError: service.ErrInvalidMenuItem,
		},
		{
			name:          "zero_price",
			item:          domain.MenuItem{Name: "Tiramisu", Description: "Espresso-soaked", Category: "Desserts"},
			expectedError: service.ErrInvalidMenuItem,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := new(mocks.MenuRepository)
			if testCase.expectedError == nil {
				repo.On("LoadMenu").Return(catalog(), nil).Once()
				repo.On("SaveMenu", mock.AnythingOfType("[]domain.MenuItem")).Return(nil).Once()
			}
			svc := service.NewMenuService(repo)

			item := testCase.item
			err := svc.Add(&item)

			assert.ErrorIs(t, err, testCase.expectedError)
			if testCase.expectedError == nil {
				assert.NotEmpty(t, item.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestMenuService_UpdateNotFound(t *testing.T) {
	repo := mocks.NewMenuRepository(t)
	repo.On("LoadMenu").Return(catalog(), nil).Once()
	svc := service.NewMenuService(repo)

	err := svc.Update(&domain.MenuItem{ID: "404", Name: "Ghost", Description: "x", Price: 1, Category: "y"})

	assert.ErrorIs(t, err, service.ErrMenuItemNotFound)
}

func TestMenuService_Remove(t *testing.T) {
	repo := mocks.NewMenuRepository(t)
	repo.On("LoadMenu").Return(catalog(), nil).Once()
	repo.On("SaveMenu", mock.MatchedBy(func(items []domain.MenuItem) bool {
		for _, item := range items {
			if item.ID == "2" {
				return false
			}
		}
		return len(items) == 2
	})).Return(nil).Once()
	svc := service.NewMenuService(repo)

	assert.NoError(t, svc.Remove("2"))
}

func TestMenuService_ToggleAvailability(t *testing.T) {
	repo := mocks.NewMenuRepository(t)
	repo.On("LoadMenu").Return(catalog(), nil).Once()
	repo.On("SaveMenu", mock.AnythingOfType("[]domain.MenuItem")).Return(nil).Once()
	svc := service.NewMenuService(repo)

	item, err := svc.ToggleAvailability("2")

	require.NoError(t, err)
	assert.True(t, item.Availability)
}

func TestMenuService_Categories(t *testing.T) {
	repo := mocks.NewMenuRepository(t)
	repo.On("LoadMenu").Return(catalog(), nil).Once()
	svc := service.NewMenuService(repo)

	categories, err := svc.Categories()

	require.NoError(t, err)
	assert.Equal(t, []string{"Pizza", "Salads"}, categories)
}
