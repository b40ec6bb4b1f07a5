package reports

// MonthlyReportRequest запрос месячного отчета по площадке
type MonthlyReportRequest struct {
	UserID  int64 `json:"userId"`
	VenueID int64 `json:"venueId"`
	Year    int   `json:"year"`
	Month   int   `json:"month"` // 1-12
}

// DailyStat статистика одного дня месяца
type DailyStat struct {
	Day       int     `json:"day"`       // День месяца, 1-31
	Revenue   float64 `json:"revenue"`   // Выручка за день
	Completed int     `json:"completed"` // Количество завершенных бронирований
}

// MonthlyReportResponse месячный отчет по площадке
type MonthlyReportResponse struct {
	VenueID       int64          `json:"venueId"`
	Year          int            `json:"year"`
	Month         int            `json:"month"`
	TotalBookings int            `json:"totalBookings"` // Все бронирования месяца, включая отмененные
	TotalRevenue  float64        `json:"totalRevenue"`  // Выручка по активным и завершенным
	ByStatus      map[string]int `json:"byStatus"`      // Количество бронирований по статусам
	Daily         []DailyStat    `json:"daily"`         // Ряд по всем дням месяца, включая пустые
}

// ProviderReportRequest запрос сводного месячного отчета владельца по всем его площадкам
type ProviderReportRequest struct {
	ProviderID int64 `json:"providerId"`
	Year       int   `json:"year"`
	Month      int   `json:"month"` // 1-12
}

// ProviderReportResponse сводный месячный отчет по всем площадкам владельца
type ProviderReportResponse struct {
	ProviderID    int64          `json:"providerId"`
	Year          int            `json:"year"`
	Month         int            `json:"month"`
	VenueIDs      []int64        `json:"venueIds"`      // Площадки, вошедшие в отчет
	TotalBookings int            `json:"totalBookings"` // Все бронирования месяца, включая отмененные
	TotalRevenue  float64        `json:"totalRevenue"`  // Выручка по активным и завершенным
	ByStatus      map[string]int `json:"byStatus"`      // Количество бронирований по статусам
	Daily         []DailyStat    `json:"daily"`         // Ряд по всем дням месяца, включая пустые
}
