package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/newsdesk/pkg/audit"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/ledger"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store/memory"
)

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Log(event audit.Event) {
	m.Called(event)
}

func TestAuditEvents(t *testing.T) {
	sink := &mockSink{}
	sink.On("Log", mock.Anything).Return()

	s := memory.New()
	e := New(s, owner, WithAudit(sink))
	ctx := identity.Set(context.Background(), identity.New(owner))

	require.NoError(t, e.Fund(ctx, owner, 10))
	_, err := e.CreatePool(ctx, owner)
	require.NoError(t, err)
	_, err = e.Deposit(ctx, owner, 10)
	require.NoError(t, err)
	_, err = e.Deposit(ctx, owner, 10)
	require.Error(t, err)
	_, err = e.CreateNews(ctx, junior, 4)
	require.NoError(t, err)

	sink.AssertCalled(t, "Log", audit.LedgerEvent{
		Actor:     owner.String(),
		ClientIP:  "-",
		Operation: "deposit",
		From:      string(ledger.ExternalAccount(owner)),
		To:        string(ledger.PoolAccount(owner)),
		Amount:    10,
		Success:   true,
	})
	sink.AssertCalled(t, "Log", mock.MatchedBy(func(ev audit.LedgerEvent) bool {
		return ev.Operation == "deposit" && !ev.Success && ev.ErrorMessage != ""
	}))
	sink.AssertCalled(t, "Log", audit.WorkflowEvent{
		Actor:     junior.String(),
		ClientIP:  "-",
		Entity:    "news",
		Operation: "create_news",
		ItemID:    4,
		Owner:     junior.String(),
		State:     "created",
		Success:   true,
	})
	assert.Len(t, sink.Calls, 4, "fund is not an audited operation")
}
