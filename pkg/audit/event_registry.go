package audit

import "fmt"

// RegistryEvent records a change to the reporter registry
type RegistryEvent struct {
	Actor        string
	ClientIP     string
	Operation    string // "create_user", "create_admin", "create_senior", "edit_reporter", "delete_reporter"
	Subject      string
	Role         string
	Success      bool
	ErrorMessage string
}

func (e RegistryEvent) MessageID() string {
	return "registry"
}

func (e RegistryEvent) Message() string {
	if e.Success {
		if e.Subject == "" {
			return fmt.Sprintf("%s performed %s", e.Actor, e.Operation)
		}
		return fmt.Sprintf("%s performed %s on %s", e.Actor, e.Operation, e.Subject)
	}
	msg := fmt.Sprintf("%s tried to %s", e.Actor, e.Operation)
	if e.Subject != "" {
		msg += " on " + e.Subject
	}
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RegistryEvent) Severity() Severity {
	return severity(e.Success)
}

func (e RegistryEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RegistryEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Actor,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
	if e.Subject != "" {
		sd[SDIDSubject] = map[string]string{"reporter": e.Subject}
		if e.Role != "" {
			sd[SDIDSubject]["role"] = e.Role
		}
	}
	return sd
}
