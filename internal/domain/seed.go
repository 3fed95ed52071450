package domain

import "fmt"

// SeedMenu is the catalog served when no menu has been persisted yet.
func SeedMenu() []MenuItem {
	return []MenuItem{
		{
			ID:           "1",
			Name:         "Margherita Pizza",
			Description:  "Fresh tomatoes, mozzarella cheese, basil, and olive oil",
			Price:        12.99,
			Category:     "Pizza",
			ImageURL:     "https://images.unsplash.com/photo-1604382355076-af4b0eb60143?w=400",
			Availability: true,
		},
		{
			ID:           "2",
			Name:         "Pepperoni Pizza",
			Description:  "Classic pepperoni with mozzarella cheese and tomato sauce",
			Price:        15.99,
			Category:     "Pizza",
			ImageURL:     "https://images.unsplash.com/photo-1628840042765-356cda07504e?w=400",
			Availability: true,
		},
		{
			ID:           "3",
			Name:         "Caesar Salad",
			Description:  "Crisp romaine lettuce, parmesan cheese, croutons, and Caesar dressing",
			Price:        8.99,
			Category:     "Salads",
			ImageURL:     "https://images.unsplash.com/photo-1551248429-40975aa4de74?w=400",
			Availability: true,
		},
		{
			ID:           "4",
			Name:         "Grilled Chicken Burger",
			Description:  "Juicy grilled chicken breast with lettuce, tomato, and mayo",
			Price:        11.99,
			Category:     "Burgers",
			ImageURL:     "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=400",
			Availability: true,
		},
		{
			ID:           "5",
			Name:         "Fish and Chips",
			Description:  "Beer-battered cod with golden fries and tartar sauce",
			Price:        14.99,
			Category:     "Main Course",
			ImageURL:     "https://images.unsplash.com/photo-1544982503-9f984c14501a?w=400",
			Availability: true,
		},
		{
			ID:           "6",
			Name:         "Chocolate Brownie",
			Description:  "Rich chocolate brownie served with vanilla ice cream",
			Price:        6.99,
			Category:     "Desserts",
			ImageURL:     "https://images.unsplash.com/photo-1606313564200-e75d5e30476c?w=400",
			Availability: true,
		},
		{
			ID:           "7",
			Name:         "Coca Cola",
			Description:  "Refreshing cola drink",
			Price:        2.99,
			Category:     "Beverages",
			ImageURL:     "https://images.unsplash.com/photo-1561758033-d89a9ad46330?w=400",
			Availability: true,
		},
		{
			ID:           "8",
			Name:         "Pasta Carbonara",
			Description:  "Creamy pasta with bacon, eggs, and parmesan cheese",
			Price:        13.99,
			Category:     "Pasta",
			ImageURL:     "/images/PastaCarbonara.jpg",
			Availability: true,
		},
	}
}

// SeedTables returns the restaurant's table layout. Read-mostly reference
// data; the QR target URL is recomputed against the configured base URL.
func SeedTables(baseURL string) []Table {
	seats := []int{2, 4, 6, 2, 4}
	tables := make([]Table, 0, len(seats))
	for i, n := range seats {
		number := i + 1
		tables = append(tables, Table{
			ID:        fmt.Sprintf("%d", number),
			Number:    number,
			Seats:     n,
			QRCodeURL: fmt.Sprintf("%s/menu?table=%d", baseURL, number),
		})
	}
	return tables
}
