package activity

type EntryResponse struct {
	ID         string         `json:"id"`
	EmployeeID *string        `json:"employee_id,omitempty"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   *string        `json:"entity_id,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	IPAddress  *string        `json:"ip_address,omitempty"`
	UserAgent  *string        `json:"user_agent,omitempty"`
	CreatedAt  string         `json:"created_at"`
}

type ListResponse struct {
	Data       []EntryResponse `json:"data"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}
