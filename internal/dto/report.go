package dto

// ── report DTOs ──

// GeneralStats totals across every attendance
type GeneralStats struct {
	Beneficiaries int64 `json:"beneficiaries"`
	Food          int64 `json:"food"`
	Medical       int64 `json:"medical"`
	Clothes       int64 `json:"clothes"`
}

// ZoneStat beneficiaries per zone
type ZoneStat struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// GroupStat deliveries per group
type GroupStat struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Food         int64  `json:"food"`
	Medical      int64  `json:"medical"`
	ClothesItems int64  `json:"clothes_items"`
}

// ReportsResponse reports page data
type ReportsResponse struct {
	General GeneralStats `json:"general"`
	Zones   []ZoneStat   `json:"zones"`
	Groups  []GroupStat  `json:"groups"`
}

// DashboardResponse landing page data
type DashboardResponse struct {
	TotalBeneficiaries int64                `json:"total_beneficiaries"`
	Groups             []GroupResponse      `json:"groups"`
	RecentAttendances  []AttendanceResponse `json:"recent_attendances"`
}
