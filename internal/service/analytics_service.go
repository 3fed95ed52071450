package service

import (
	"sort"

	"tableside/internal/domain"
)

const topItemsLimit = 5

type ItemSales struct {
	MenuItemName string `json:"menu_item_name"`
	Quantity     int    `json:"quantity"`
}

type SalesSummary struct {
	TotalRevenue float64                    `json:"total_revenue"`
	TotalOrders  int                        `json:"total_orders"`
	StatusCounts map[domain.OrderStatus]int `json:"status_counts"`
	TopItems     []ItemSales                `json:"top_items"`
}

type AnalyticsService struct {
	repo OrderRepository
}

func NewAnalyticsService(repo OrderRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// Summary aggregates revenue, order counts by status and the best-selling
// items by quantity across the whole order collection.
func (s *AnalyticsService) Summary() (*SalesSummary, error) {
	orders, err := s.repo.LoadOrders()
	if err != nil {
		return nil, err
	}

	summary := &SalesSummary{
		TotalOrders:  len(orders),
		StatusCounts: map[domain.OrderStatus]int{},
		TopItems:     []ItemSales{},
	}

	sales := map[string]int{}
	for _, order := range orders {
		summary.TotalRevenue += order.TotalAmount
		summary.StatusCounts[order.Status]++
		for _, item := range order.Items {
			sales[item.MenuItemName] += item.Quantity
		}
	}

	for name, quantity := range sales {
		summary.TopItems = append(summary.TopItems, ItemSales{MenuItemName: name, Quantity: quantity})
	}
	sort.Slice(summary.TopItems, func(i, j int) bool {
		if summary.TopItems[i].Quantity != summary.TopItems[j].Quantity {
			return summary.TopItems[i].Quantity > summary.TopItems[j].Quantity
		}
		return summary.TopItems[i].MenuItemName < summary.TopItems[j].MenuItemName
	})
	if len(summary.TopItems) > topItemsLimit {
		summary.TopItems = summary.TopItems[:topItemsLimit]
	}
	return summary, nil
}

var _ AnalyticsServiceInterface = (*AnalyticsService)(nil)
