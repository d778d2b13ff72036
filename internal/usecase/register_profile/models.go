package register_profile

// Request запрос на регистрацию профиля
type Request struct {
	UserID   int64   `json:"-"`
	Email    string  `json:"email"`
	FullName string  `json:"fullName"`
	Phone    *string `json:"phone,omitempty"`
}

// Response результат регистрации
type Response struct {
	ProfileID      int64  `json:"profileId"`
	UserID         int64  `json:"userId"`
	Email          string `json:"email"`
	FullName       string `json:"fullName"`
	Role           string `json:"role"`
	WelcomeCredits int    `json:"welcomeCredits"`
	CreditBalance  int    `json:"creditBalance"`
}
