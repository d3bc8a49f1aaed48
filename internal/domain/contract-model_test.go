package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContractStatusLenient(t *testing.T) {
	require.NotNil(t, ParseContractStatus("running"))
	assert.Equal(t, StatusRunning, *ParseContractStatus(" RUNNING "))
	assert.Equal(t, StatusDraft, *ParseContractStatus("draft"))

	assert.Nil(t, ParseContractStatus(""))
	assert.Nil(t, ParseContractStatus("ALL"))
	assert.Nil(t, ParseContractStatus("bogus"))
}

func TestParsePartyLenient(t *testing.T) {
	require.NotNil(t, ParseParty("vendor"))
	assert.Equal(t, PartyVendor, *ParseParty("vendor"))
	assert.Nil(t, ParseParty(""))
	assert.Nil(t, ParseParty("SOMEONE"))
}

func TestContractFilterEmpty(t *testing.T) {
	assert.True(t, ContractFilter{}.Empty())
	assert.True(t, ContractFilter{Keyword: "   "}.Empty())

	status := StatusDraft
	assert.False(t, ContractFilter{Status: &status}.Empty())
	assert.False(t, ContractFilter{Keyword: "lease"}.Empty())

	now := time.Now()
	assert.False(t, ContractFilter{ToDate: &now}.Empty())
}

func TestScopeFor(t *testing.T) {
	admin := &User{ID: 1, Role: RoleAdmin}
	user := &User{ID: 2, Role: RoleUser}

	assert.True(t, ScopeFor(admin).All)
	assert.False(t, ScopeFor(user).All)
	assert.Equal(t, uint(2), ScopeFor(user).UserID)
}

func TestParseRole(t *testing.T) {
	require.NotNil(t, ParseRole("admin"))
	assert.Equal(t, RoleAdmin, *ParseRole("ADMIN"))
	assert.Nil(t, ParseRole(""))
	assert.Nil(t, ParseRole("SUPERUSER"))
}
