// model/profile_test.go
package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetgate/gatekeeper/model"
)

func TestStringSet_DeterministicJSON(t *testing.T) {
	a := model.NewStringSet("tanker", "hazmat", "doubles")
	b := model.NewStringSet("doubles", "tanker", "hazmat")

	aJSON, err := json.Marshal(a)
	require.NoError(t, err)
	bJSON, err := json.Marshal(b)
	require.NoError(t, err)

	assert.Equal(t, `["doubles","hazmat","tanker"]`, string(aJSON))
	assert.Equal(t, aJSON, bJSON)

	var decoded model.StringSet
	require.NoError(t, json.Unmarshal(aJSON, &decoded))
	assert.True(t, decoded.Contains("hazmat"))
	assert.False(t, decoded.Contains("flatbed"))
}

func TestPermissionOverride_ActiveAt(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		override model.PermissionOverride
		active   bool
	}{
		{"permanent", model.PermissionOverride{Temporary: false}, true},
		{"permanent ignores expiry", model.PermissionOverride{Temporary: false, ExpiresAt: &past}, true},
		{"temporary without expiry", model.PermissionOverride{Temporary: true}, true},
		{"temporary not yet expired", model.PermissionOverride{Temporary: true, ExpiresAt: &future}, true},
		{"temporary expired", model.PermissionOverride{Temporary: true, ExpiresAt: &past}, false},
		{"temporary expiring this instant", model.PermissionOverride{Temporary: true, ExpiresAt: &now}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, tt.override.ActiveAt(now))
		})
	}
}

func TestSectionPermission_Matches(t *testing.T) {
	exact := model.SectionPermission{Page: "dispatch", Section: "load-board"}
	assert.True(t, exact.Matches("dispatch", "load-board"))
	assert.False(t, exact.Matches("dispatch", "assign-drivers"))
	assert.False(t, exact.Matches("broker", "load-board"))

	pageWide := model.SectionPermission{Page: "driver-portal", Section: model.Wildcard}
	assert.True(t, pageWide.Matches("driver-portal", "documents"))
	assert.False(t, pageWide.Matches("dispatch", "documents"))

	appWide := model.SectionPermission{Page: model.Wildcard, Section: model.Wildcard}
	assert.True(t, appWide.Matches("anything", "at-all"))
}

func TestSectionPermission_AllowsRole(t *testing.T) {
	open := model.SectionPermission{}
	assert.True(t, open.AllowsRole(model.RoleDriver))

	restricted := model.SectionPermission{RequiredRoles: []model.Role{model.RoleDispatcher, model.RoleAdmin}}
	assert.True(t, restricted.AllowsRole(model.RoleAdmin))
	assert.False(t, restricted.AllowsRole(model.RoleDriver))
}
