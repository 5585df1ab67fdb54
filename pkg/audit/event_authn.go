package audit

import "fmt"

// AuthenticateEvent records a bearer token being accepted or rejected
type AuthenticateEvent struct {
	Principal    string
	ClientIP     string
	Issuer       string
	Success      bool
	ErrorMessage string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	who := e.Principal
	if who == "" {
		who = "unknown principal"
	}
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated with a bearer token", who)
	}
	msg := fmt.Sprintf("%s failed to authenticate with a bearer token", who)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AuthenticateEvent) Severity() Severity {
	return severity(e.Success)
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"authenticator": "jwt",
			"user":          e.Principal,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "authenticate",
			"result":    result(e.Success),
		},
	}
	if e.Issuer != "" {
		sd[SDIDAuth]["issuer"] = e.Issuer
	}
	return sd
}
