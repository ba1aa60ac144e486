package inbound

type AuthorizeResponse struct {
	URL string `json:"url"`
}

func (AuthorizeResponse) Message() string {
	return "Redirect the user to the authorization URL"
}

type CallbackResponse struct {
	AccessToken string `json:"access_token"`
	UserID      int64  `json:"user_id,string"`
}

func (CallbackResponse) Message() string {
	return "Login successful"
}
