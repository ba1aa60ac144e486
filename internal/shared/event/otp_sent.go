package event

const OTPSentDestination string = "otp_sent"

type OTPSentMessage struct {
	Identifier string `json:"identifier"`
	Channel    string `json:"channel"`
	Gateway    string `json:"gateway,omitempty"`
	SentAt     int64  `json:"sent_at"`
}
