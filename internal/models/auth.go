package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

type AdminLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type OTPRequest struct {
	Email string `json:"email"`
}

type OTPVerify struct {
	Email string  `json:"email"`
	OTP   OTPCode `json:"otp"`
}

// OTPCode accepts the code as either a JSON string or a JSON number, since
// numeric inputs on the client tend to submit it unquoted.
type OTPCode string

func (c *OTPCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = OTPCode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("otp must be a string or number")
	}
	*c = OTPCode(n.String())
	return nil
}

type TokenResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
