package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cucumber/godog"

	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	instance     *ServerInstance
	response     *http.Response
	responseBody []byte
	admin        identity.Principal
	senior       identity.Principal
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		if err := s.tc.Reset(); err != nil {
			return ctx, fmt.Errorf("failed to reset database: %w", err)
		}
		instance, err := StartServer(s.tc)
		if err != nil {
			return ctx, err
		}
		s.instance = instance
		return ctx, nil
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		if s.instance != nil {
			s.instance.Stop()
		}
		return ctx, nil
	})

	// Background steps
	sc.Step(`^a newsdesk server is running$`, s.aNewsdeskServerIsRunning)
	sc.Step(`^the registry exists with admin "([^"]*)" and senior "([^"]*)"$`, s.theRegistryExistsWith)
	sc.Step(`^the pool exists$`, s.thePoolExists)
	sc.Step(`^"([^"]*)" is funded with (\d+)$`, s.isFundedWith)

	// Request steps
	sc.Step(`^"([^"]*)" sends (GET|POST|PUT|DELETE) "([^"]*)"$`, s.sendsRequest)
	sc.Step(`^"([^"]*)" sends (GET|POST|PUT|DELETE) "([^"]*)" with:$`, s.sendsRequestWith)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the error kind should be "([^"]*)"$`, s.theErrorKindShouldBe)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, s.theResponseFieldShouldBe)

	s.registerRegistrySteps(sc)
	s.registerLedgerSteps(sc)
	s.registerJWTSteps(sc)
}

// Background steps

func (s *StepsContext) aNewsdeskServerIsRunning() error {
	// Started by the Before hook
	if s.instance == nil {
		return fmt.Errorf("no server instance")
	}
	return nil
}

func (s *StepsContext) theRegistryExistsWith(admin, senior string) error {
	s.admin = identity.Principal(admin)
	s.senior = identity.Principal(senior)

	if err := s.expect(http.StatusCreated, Owner, "POST", "/registry", ""); err != nil {
		return err
	}
	if err := s.expect(http.StatusCreated, Owner, "POST", "/registry/admins", fmt.Sprintf(`{"principal":%q}`, admin)); err != nil {
		return err
	}
	return s.expect(http.StatusCreated, s.admin, "POST", "/registry/seniors", fmt.Sprintf(`{"principal":%q}`, senior))
}

func (s *StepsContext) thePoolExists() error {
	return s.expect(http.StatusCreated, Owner, "POST", "/pool", "")
}

func (s *StepsContext) isFundedWith(principal string, amount uint64) error {
	return s.instance.Fund(context.Background(), identity.Principal(principal), amount)
}

// Request steps

func (s *StepsContext) sendsRequest(principal, method, path string) error {
	return s.do(identity.Principal(principal), method, path, "")
}

func (s *StepsContext) sendsRequestWith(principal, method, path string, body *godog.DocString) error {
	return s.do(identity.Principal(principal), method, path, body.Content)
}

// do sends body on behalf of as with a freshly issued bearer token and
// records the response.
func (s *StepsContext) do(as identity.Principal, method, path, body string) error {
	token, err := s.instance.Authn.Issue(as)
	if err != nil {
		return err
	}
	return s.doWithHeader(method, path, body, "Bearer "+token)
}

func (s *StepsContext) doWithHeader(method, path, body, authorization string) error {
	req, err := http.NewRequest(method, s.instance.ServerURL+path, bytes.NewBufferString(body))
	if err != nil {
		return err
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

// expect sends a request and fails unless it answers with status.
func (s *StepsContext) expect(status int, as identity.Principal, method, path, body string) error {
	if err := s.do(as, method, path, body); err != nil {
		return err
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("%s %s: expected status %d, got %d: %s", method, path, status, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

// getJSON fetches path as the owner into out.
func (s *StepsContext) getJSON(path string, out interface{}) error {
	if err := s.expect(http.StatusOK, Owner, "GET", path, ""); err != nil {
		return err
	}
	return json.Unmarshal(s.responseBody, out)
}

func escape(p string) string {
	return url.PathEscape(p)
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response received")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theErrorKindShouldBe(kind string) error {
	var resp struct {
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(s.responseBody, &resp); err != nil {
		return fmt.Errorf("response is not an error body: %s", string(s.responseBody))
	}
	if resp.Error.Kind != kind {
		return fmt.Errorf("expected error kind %q, got %q (%s)", kind, resp.Error.Kind, resp.Error.Message)
	}
	return nil
}

func (s *StepsContext) theResponseFieldShouldBe(field, expected string) error {
	dec := json.NewDecoder(bytes.NewReader(s.responseBody))
	dec.UseNumber()
	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return fmt.Errorf("response is not a JSON object: %s", string(s.responseBody))
	}
	var cur interface{} = fields
	for _, part := range strings.Split(field, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return fmt.Errorf("field %q not found in %s", field, string(s.responseBody))
		}
		cur, ok = m[part]
		if !ok {
			return fmt.Errorf("field %q not found in %s", field, string(s.responseBody))
		}
	}
	if got := fmt.Sprint(cur); got != expected {
		return fmt.Errorf("expected %s to be %q, got %q", field, expected, got)
	}
	return nil
}

func identityOf(p string) identity.Principal {
	return identity.Principal(p)
}
