package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		p        Principal
		required Role
		want     bool
	}{
		{"anonymous never passes", Principal{}, RoleNone, false},
		{"any user passes login-only", Principal{UserID: 1}, RoleNone, true},
		{"manager passes manager", Principal{UserID: 1, Role: RoleManager}, RoleManager, true},
		{"normal user fails manager", Principal{UserID: 1, Role: RoleNormalUser}, RoleManager, false},
		{"admin is not implicitly manager", Principal{UserID: 1, Role: RoleAdmin}, RoleManager, false},
		{"superuser passes admin", Principal{UserID: 1, Superuser: true}, RoleAdmin, true},
		{"admin role passes admin", Principal{UserID: 1, Role: RoleAdmin}, RoleAdmin, true},
		{"manager fails admin", Principal{UserID: 1, Role: RoleManager}, RoleAdmin, false},
		{"normal user passes normal user", Principal{UserID: 2, Role: RoleNormalUser}, RoleNormalUser, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.p, tt.required))
		})
	}
}

func TestPredicates(t *testing.T) {
	manager := Principal{UserID: 3, Role: RoleManager}

	assert.True(t, IsManager(manager))
	assert.False(t, IsNormalUser(manager))
	assert.False(t, IsAdmin(manager))
	assert.True(t, IsAdmin(Principal{UserID: 4, Superuser: true}))
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" Manager ")
	assert.True(t, ok)
	assert.Equal(t, RoleManager, r)

	r, ok = ParseRole("AdminGroup")
	assert.False(t, ok)
	assert.Equal(t, RoleNone, r)

	assert.True(t, RoleNormalUser.SelfAssignable())
	assert.False(t, RoleAdmin.SelfAssignable())
}
