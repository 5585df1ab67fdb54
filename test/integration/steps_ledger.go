package integration

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cucumber/godog"

	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
)

type balanceBody struct {
	Balance uint64 `json:"balance"`
}

func (s *StepsContext) registerLedgerSteps(sc *godog.ScenarioContext) {
	sc.Step(`^"([^"]*)" has a vault$`, s.hasAVault)
	sc.Step(`^"([^"]*)" has published news (\d+)$`, s.hasPublishedNews)
	sc.Step(`^the external balance of "([^"]*)" should be (\d+)$`, s.theExternalBalanceShouldBe)
	sc.Step(`^the pool balance should be (\d+)$`, s.thePoolBalanceShouldBe)
	sc.Step(`^the vault of "([^"]*)" should hold (\d+)$`, s.theVaultShouldHold)
	sc.Step(`^the escrow of campaign (\d+) by "([^"]*)" should hold (\d+)$`, s.theEscrowShouldHold)
	sc.Step(`^campaign (\d+) by "([^"]*)" should have no escrow$`, s.campaignShouldHaveNoEscrow)
	sc.Step(`^the balances of "([^"]*)" and the pool should total (\d+)$`, s.theBalancesAndPoolShouldTotal)
	sc.Step(`^the balances of "([^"]*)" should total (\d+)$`, s.theBalancesShouldTotal)
}

func (s *StepsContext) hasAVault(principal string) error {
	return s.expect(http.StatusCreated, identity.Principal(principal), "POST", "/vaults", "")
}

func (s *StepsContext) hasPublishedNews(reporter string, id uint64) error {
	p := identity.Principal(reporter)
	if err := s.expect(http.StatusCreated, p, "POST", "/news", fmt.Sprintf(`{"id":%d}`, id)); err != nil {
		return err
	}
	path := fmt.Sprintf("/news/%s/%d", escape(reporter), id)
	if err := s.expect(http.StatusOK, s.senior, "POST", path+"/approve", ""); err != nil {
		return err
	}
	return s.expect(http.StatusOK, s.admin, "POST", path+"/publish", "")
}

func (s *StepsContext) externalBalance(principal string) (uint64, error) {
	var body balanceBody
	if err := s.getJSON("/accounts/"+escape(principal), &body); err != nil {
		return 0, err
	}
	return body.Balance, nil
}

func (s *StepsContext) poolBalance() (uint64, error) {
	var body balanceBody
	if err := s.getJSON("/pool", &body); err != nil {
		return 0, err
	}
	return body.Balance, nil
}

func (s *StepsContext) theExternalBalanceShouldBe(principal string, want uint64) error {
	got, err := s.externalBalance(principal)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected %s to hold %d, got %d", principal, want, got)
	}
	return nil
}

func (s *StepsContext) thePoolBalanceShouldBe(want uint64) error {
	got, err := s.poolBalance()
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected the pool to hold %d, got %d", want, got)
	}
	return nil
}

func (s *StepsContext) theVaultShouldHold(reporter string, want uint64) error {
	var body balanceBody
	if err := s.getJSON("/vaults/"+escape(reporter), &body); err != nil {
		return err
	}
	if body.Balance != want {
		return fmt.Errorf("expected the vault of %s to hold %d, got %d", reporter, want, body.Balance)
	}
	return nil
}

func (s *StepsContext) theEscrowShouldHold(id uint64, advertiser string, want uint64) error {
	var body balanceBody
	if err := s.getJSON(fmt.Sprintf("/campaigns/%s/%d/vault", escape(advertiser), id), &body); err != nil {
		return err
	}
	if body.Balance != want {
		return fmt.Errorf("expected campaign %d escrow to hold %d, got %d", id, want, body.Balance)
	}
	return nil
}

func (s *StepsContext) campaignShouldHaveNoEscrow(id uint64, advertiser string) error {
	if err := s.do(Owner, "GET", fmt.Sprintf("/campaigns/%s/%d/vault", escape(advertiser), id), ""); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusNotFound {
		return fmt.Errorf("expected no escrow for campaign %d, got status %d", id, s.response.StatusCode)
	}
	return nil
}

// theBalancesAndPoolShouldTotal checks value conservation over a comma
// separated list of principals plus the pool.
func (s *StepsContext) theBalancesAndPoolShouldTotal(principals string, want uint64) error {
	pool, err := s.poolBalance()
	if err != nil {
		return err
	}
	return s.checkTotal(principals, pool, want)
}

func (s *StepsContext) theBalancesShouldTotal(principals string, want uint64) error {
	return s.checkTotal(principals, 0, want)
}

func (s *StepsContext) checkTotal(principals string, total, want uint64) error {
	for _, p := range strings.Split(principals, ",") {
		b, err := s.externalBalance(strings.TrimSpace(p))
		if err != nil {
			return err
		}
		total += b
	}
	if total != want {
		return fmt.Errorf("expected a total of %d, got %d", want, total)
	}
	return nil
}
