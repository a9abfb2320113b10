package domain

// Pagination carries paging params and totals.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// Viewer carries authenticated user info for the current request.
type Viewer struct {
	UserID int64    `json:"user_id"`
	Roles  []string `json:"roles"`
}
