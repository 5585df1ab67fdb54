package integration

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"

	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
)

type registryBody struct {
	Count     int `json:"count"`
	Reporters []struct {
		Principal string `json:"principal"`
		Role      string `json:"role"`
	} `json:"reporters"`
}

func (s *StepsContext) registerRegistrySteps(sc *godog.ScenarioContext) {
	sc.Step(`^the registry is filled to capacity with seniors$`, s.theRegistryIsFilledToCapacity)
	sc.Step(`^the registry should hold (\d+) reporters$`, s.theRegistryShouldHold)
	sc.Step(`^"([^"]*)" should be registered as "([^"]*)"$`, s.shouldBeRegisteredAs)
	sc.Step(`^"([^"]*)" should not be registered$`, s.shouldNotBeRegistered)
}

func (s *StepsContext) registry() (*registryBody, error) {
	var body registryBody
	if err := s.getJSON("/registry", &body); err != nil {
		return nil, err
	}
	return &body, nil
}

func (s *StepsContext) theRegistryIsFilledToCapacity() error {
	reg, err := s.registry()
	if err != nil {
		return err
	}
	for i := reg.Count; i < registry.MaxReporterCount; i++ {
		body := fmt.Sprintf(`{"principal":"filler-%03d"}`, i)
		if err := s.expect(http.StatusCreated, s.admin, "POST", "/registry/seniors", body); err != nil {
			return err
		}
	}
	var count struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(s.responseBody, &count); err != nil {
		return err
	}
	if count.Count != registry.MaxReporterCount {
		return fmt.Errorf("expected a full registry, got %d entries", count.Count)
	}
	return nil
}

func (s *StepsContext) theRegistryShouldHold(n int) error {
	reg, err := s.registry()
	if err != nil {
		return err
	}
	if reg.Count != n || len(reg.Reporters) != n {
		return fmt.Errorf("expected %d reporters, got %d", n, reg.Count)
	}
	return nil
}

func (s *StepsContext) shouldBeRegisteredAs(principal, role string) error {
	reg, err := s.registry()
	if err != nil {
		return err
	}
	for _, r := range reg.Reporters {
		if r.Principal == principal {
			if r.Role != role {
				return fmt.Errorf("%s is registered as %s, expected %s", principal, r.Role, role)
			}
			return nil
		}
	}
	return fmt.Errorf("%s is not registered", principal)
}

func (s *StepsContext) shouldNotBeRegistered(principal string) error {
	reg, err := s.registry()
	if err != nil {
		return err
	}
	for _, r := range reg.Reporters {
		if r.Principal == principal {
			return fmt.Errorf("%s is registered as %s", principal, r.Role)
		}
	}
	return nil
}
