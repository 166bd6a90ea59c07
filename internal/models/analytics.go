package model

// DayCount is one calendar day's created/completed tallies. Date is the
// day's ISO date string (YYYY-MM-DD, UTC).
type DayCount struct {
	Date      string `json:"date"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

type PriorityBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// AnalyticsSnapshot aggregates one user's tasks over a lookback window.
// TasksByDay covers the last window days including today, ascending.
type AnalyticsSnapshot struct {
	Total          int               `json:"total"`
	Completed      int               `json:"completed"`
	Pending        int               `json:"pending"`
	Overdue        int               `json:"overdue"`
	CompletionRate float64           `json:"completion_rate"`
	ByPriority     PriorityBreakdown `json:"by_priority"`
	TasksByDay     []DayCount        `json:"tasks_by_day"`
}
