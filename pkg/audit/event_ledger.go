package audit

import "fmt"

// LedgerEvent records value moving between accounts, the pool and vaults
type LedgerEvent struct {
	Actor        string
	ClientIP     string
	Operation    string
	From         string
	To           string
	Amount       uint64
	Success      bool
	ErrorMessage string
}

func (e LedgerEvent) MessageID() string {
	return "ledger"
}

func (e LedgerEvent) Message() string {
	route := ""
	if e.From != "" {
		route += " from " + e.From
	}
	if e.To != "" {
		route += " to " + e.To
	}
	if e.Success {
		return fmt.Sprintf("%s performed %s of %d%s", e.Actor, e.Operation, e.Amount, route)
	}
	msg := fmt.Sprintf("%s tried %s of %d%s", e.Actor, e.Operation, e.Amount, route)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e LedgerEvent) Severity() Severity {
	return severity(e.Success)
}

func (e LedgerEvent) Facility() int {
	return FacilityAuthPriv
}

func (e LedgerEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Actor,
		},
		SDIDLedger: {
			"amount": fmt.Sprintf("%d", e.Amount),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
	if e.From != "" {
		sd[SDIDLedger]["from"] = e.From
	}
	if e.To != "" {
		sd[SDIDLedger]["to"] = e.To
	}
	return sd
}
