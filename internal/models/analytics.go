package models

// MonthlySale is one bar of the admin revenue chart.
type MonthlySale struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// AnalyticsSummary backs the seller dashboard. Everything except
// ProductCount is placeholder data until order tracking lands; ProductCount
// is read live from the catalog.
type AnalyticsSummary struct {
	TotalRevenue   int64         `json:"total_revenue"`
	TotalOrders    int           `json:"total_orders"`
	TotalVisitors  int           `json:"total_visitors"`
	ConversionRate float64       `json:"conversion_rate"`
	ProductCount   int           `json:"product_count"`
	MonthlySales   []MonthlySale `json:"monthly_sales"`
}
