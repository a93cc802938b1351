package identityservice

// Principal проверенный субъект запроса из IdentityService
type Principal struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"` // "admin" или "user"
}

// ErrorResponse модель ошибки от IdentityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
