package engine

import (
	"context"
	"time"

	"github.com/doodlesbykumbi/newsdesk/pkg/audit"
	"github.com/doodlesbykumbi/newsdesk/pkg/campaign"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/ledger"
	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store"
)

var campaignGrants = []grant{write(classCampaigns), write(classVaults), write(classAccounts)}

func (e *Engine) auditCampaign(ctx context.Context, caller identity.Principal, op string, id uint64, advertiser identity.Principal, c *campaign.Campaign, err error) {
	ev := audit.WorkflowEvent{
		Actor:        caller.String(),
		ClientIP:     clientIP(ctx),
		Entity:       "campaign",
		Operation:    op,
		ItemID:       id,
		Owner:        advertiser.String(),
		Success:      err == nil,
		ErrorMessage: errMessage(err),
	}
	if err == nil && c != nil {
		ev.ItemID = c.ID
		ev.State = c.State.String()
	}
	e.audit.Log(ev)
}

// CreateCampaign opens a campaign for the caller and escrows the fixed fee
// from the caller's account into a new campaign vault.
func (e *Engine) CreateCampaign(ctx context.Context, caller identity.Principal, id uint64) (*campaign.Campaign, error) {
	const op = "create_campaign"
	var c *campaign.Campaign
	err := e.run(ctx, op, caller, campaignGrants, func(tx store.Tx, now time.Time) error {
		created := campaign.New(id, caller, now)
		if err := tx.CreateCampaign(created); err != nil {
			return err
		}
		vault := &ledger.Vault{Owner: caller}
		if err := vault.Credit(e.fee); err != nil {
			return err
		}
		if err := tx.CreateVault(store.CampaignVaultKey(id, caller), vault); err != nil {
			return err
		}
		if err := tx.Transfer(ledger.ExternalAccount(caller), ledger.CampaignVaultAccount(id, caller), e.fee); err != nil {
			return err
		}
		c = created
		return nil
	})
	e.auditCampaign(ctx, caller, op, id, caller, c, err)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// EditCampaign re-keys one of the caller's unsettled campaigns to newID and
// marks it Edited. The escrow vault follows the campaign.
func (e *Engine) EditCampaign(ctx context.Context, caller identity.Principal, id, newID uint64) (*campaign.Campaign, error) {
	const op = "edit_campaign"
	var c *campaign.Campaign
	err := e.run(ctx, op, caller, campaignGrants, func(tx store.Tx, now time.Time) error {
		cur, err := tx.Campaign(id, caller)
		if err != nil {
			return err
		}
		if err := cur.Edit(newID, now); err != nil {
			return err
		}
		if err := tx.PutCampaign(id, cur); err != nil {
			return err
		}
		if newID != id {
			if err := moveCampaignVault(tx, caller, id, newID); err != nil {
				return err
			}
		}
		c = cur
		return nil
	})
	e.auditCampaign(ctx, caller, op, id, caller, c, err)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func moveCampaignVault(tx store.Tx, advertiser identity.Principal, id, newID uint64) error {
	oldKey, newKey := store.CampaignVaultKey(id, advertiser), store.CampaignVaultKey(newID, advertiser)
	vault, err := tx.Vault(oldKey)
	if err != nil {
		return err
	}
	if err := tx.DeleteVault(oldKey); err != nil {
		return err
	}
	if err := tx.CreateVault(newKey, vault); err != nil {
		return err
	}
	from, to := ledger.CampaignVaultAccount(id, advertiser), ledger.CampaignVaultAccount(newID, advertiser)
	held, err := tx.Balance(from)
	if err != nil || held == 0 {
		return err
	}
	return tx.Transfer(from, to, held)
}

// DeleteCampaign removes one of the caller's campaigns, refunding whatever
// its vault still escrows. It returns the refunded amount.
func (e *Engine) DeleteCampaign(ctx context.Context, caller identity.Principal, id uint64) (uint64, error) {
	const op = "delete_campaign"
	var refund uint64
	err := e.run(ctx, op, caller, campaignGrants, func(tx store.Tx, _ time.Time) error {
		if _, err := tx.Campaign(id, caller); err != nil {
			return err
		}
		key := store.CampaignVaultKey(id, caller)
		vault, err := tx.Vault(key)
		if err != nil {
			return err
		}
		if vault.Balance > 0 {
			if err := tx.Transfer(ledger.CampaignVaultAccount(id, caller), ledger.ExternalAccount(caller), vault.Balance); err != nil {
				return err
			}
		}
		if err := tx.DeleteVault(key); err != nil {
			return err
		}
		refund = vault.Balance
		return tx.DeleteCampaign(id, caller)
	})
	e.auditCampaign(ctx, caller, op, id, caller, nil, err)
	if err != nil {
		return 0, err
	}
	return refund, nil
}

// settleCampaign records an admin's decision and pays the escrowed vault
// balance to the principal payee picks.
func (e *Engine) settleCampaign(ctx context.Context, op string, caller, advertiser identity.Principal, id uint64, decide func(*campaign.Campaign) error, payee identity.Principal) (*campaign.Campaign, error) {
	var c *campaign.Campaign
	grants := append([]grant{read(classRegistry)}, campaignGrants...)
	err := e.run(ctx, op, caller, grants, func(tx store.Tx, _ time.Time) error {
		reg, err := e.gateRegistry(tx)
		if err != nil {
			return err
		}
		if err := e.gate.RequireRole(reg, caller, registry.RoleAdmin); err != nil {
			return err
		}
		cur, err := tx.Campaign(id, advertiser)
		if err != nil {
			return err
		}
		if err := decide(cur); err != nil {
			return err
		}
		key := store.CampaignVaultKey(id, advertiser)
		vault, err := tx.Vault(key)
		if err != nil {
			return err
		}
		amount, err := vault.Drain()
		if err != nil {
			return err
		}
		if err := tx.Transfer(ledger.CampaignVaultAccount(id, advertiser), ledger.ExternalAccount(payee), amount); err != nil {
			return err
		}
		if err := tx.PutVault(key, vault); err != nil {
			return err
		}
		c = cur
		return tx.PutCampaign(id, cur)
	})
	e.auditCampaign(ctx, caller, op, id, advertiser, c, err)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ApproveCampaign approves a campaign and pays its escrow to the approving
// admin.
func (e *Engine) ApproveCampaign(ctx context.Context, caller, advertiser identity.Principal, id uint64) (*campaign.Campaign, error) {
	return e.settleCampaign(ctx, "approve_campaign", caller, advertiser, id, (*campaign.Campaign).Approve, caller)
}

// DenyCampaign denies a campaign and refunds its escrow to the advertiser.
func (e *Engine) DenyCampaign(ctx context.Context, caller, advertiser identity.Principal, id uint64) (*campaign.Campaign, error) {
	return e.settleCampaign(ctx, "deny_campaign", caller, advertiser, id, (*campaign.Campaign).Deny, advertiser)
}
