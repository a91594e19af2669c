package memberservice

// Member модель участника клуба из MemberService
type Member struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Status   string `json:"status"` // active | suspended | left
}

// IsActive возвращает true для действующего участника
func (m *Member) IsActive() bool {
	return m.Status == "active"
}

// ErrorResponse модель ошибки от MemberService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
