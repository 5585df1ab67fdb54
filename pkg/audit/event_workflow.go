package audit

import "fmt"

// WorkflowEvent records a transition of a news item or campaign
type WorkflowEvent struct {
	Actor        string
	ClientIP     string
	Entity       string // "news" or "campaign"
	Operation    string
	ItemID       uint64
	Owner        string
	State        string
	Success      bool
	ErrorMessage string
}

func (e WorkflowEvent) MessageID() string {
	return e.Entity
}

func (e WorkflowEvent) Message() string {
	target := fmt.Sprintf("%s %d of %s", e.Entity, e.ItemID, e.Owner)
	if e.Success {
		if e.State != "" {
			return fmt.Sprintf("%s performed %s on %s, now %s", e.Actor, e.Operation, target, e.State)
		}
		return fmt.Sprintf("%s performed %s on %s", e.Actor, e.Operation, target)
	}
	msg := fmt.Sprintf("%s tried to %s on %s", e.Actor, e.Operation, target)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e WorkflowEvent) Severity() Severity {
	return severity(e.Success)
}

func (e WorkflowEvent) Facility() int {
	return FacilityLocal0
}

func (e WorkflowEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Actor,
		},
		SDIDSubject: {
			e.Entity: fmt.Sprintf("%d", e.ItemID),
			"owner":  e.Owner,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
	if e.State != "" {
		sd[SDIDSubject]["state"] = e.State
	}
	return sd
}
