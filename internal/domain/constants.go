package domain

// User roles supplied by the identity collaborator
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Business validation constants
const (
	MaxFullNameLength    = 200
	MaxPlateNumberLength = 20
	MinTotalSlots        = 0
	MinFeePerHour        = 0.0
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Principal проверенный субъект запроса, полученный от identity-коллаборатора.
// Создается один раз в middleware и явно передается в операции ядра;
// ядро никогда не разбирает учетные данные самостоятельно.
type Principal struct {
	UserID int64
	Role   string
}

// IsAdmin returns true if the principal has the administrator role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
