package event

const UserLoginDestination string = "user_login"

type UserLoginMessage struct {
	UserID     int64  `json:"user_id"`
	Identifier string `json:"identifier"`
	Method     string `json:"method"`
	LoginAt    int64  `json:"login_at"`
}
