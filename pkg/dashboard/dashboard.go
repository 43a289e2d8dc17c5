package dashboard

type StatCard struct {
	Title string `json:"title"`
	Value int    `json:"value"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type QuickStat struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

type RecentActivity struct {
	Action string `json:"action"`
	Type   string `json:"type"`
	Icon   string `json:"icon"`
	Time   string `json:"time"`
}

type Overview struct {
	Stats          []StatCard       `json:"stats"`
	QuickStats     []QuickStat      `json:"quickStats"`
	RecentActivity []RecentActivity `json:"recentActivity"`
}
