package inbound

type SendCodeRequest struct {
	Identifier string `json:"identifier"`
}

type SendCodeResponse struct {
	Channel string `json:"channel"`
}

func (SendCodeResponse) Message() string {
	return "A verification code has been sent."
}

type VerifyCodeRequest struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
}

type VerifyCodeResponse struct {
	AccessToken string `json:"access_token"`
	UserID      int64  `json:"user_id,string"`
}

type GatewayField struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Secret bool   `json:"secret"`
}

type GatewayDescriptor struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Fields []GatewayField `json:"fields"`
}

type GatewaysResponse struct {
	Gateways []GatewayDescriptor `json:"gateways"`
	Primary  string              `json:"primary,omitempty"`
	Backup   string              `json:"backup,omitempty"`
}

type TOTPSetupResponse struct {
	Secret string `json:"secret"`
	URI    string `json:"uri"`
}

func (TOTPSetupResponse) Message() string {
	return "Scan the URI with an authenticator app, then confirm with a code."
}

type TOTPConfirmRequest struct {
	Code string `json:"code"`
}

type TOTPConfirmResponse struct{}

func (TOTPConfirmResponse) Message() string {
	return "Authenticator app enabled."
}
