package access

import (
	"testing"

	"trolley/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func identity(role string) *entity.Identity {
	return &entity.Identity{UserID: uuid.New(), Role: role}
}

func TestEvaluate_ResolvingWhileSessionLoads(t *testing.T) {
	t.Parallel()

	decision := Evaluate(Session{Loading: true}, entity.Roles{entity.RoleAdmin}, "/admin")

	assert.Equal(t, OutcomeResolving, decision.Outcome)
	assert.False(t, decision.Granted())
	assert.Empty(t, decision.RedirectTo)
}

func TestEvaluate_AnonymousRedirectsToLogin(t *testing.T) {
	t.Parallel()

	decision := Evaluate(Session{}, nil, "/cart?promo=WELCOME10")

	assert.Equal(t, OutcomeDeniedUnauthenticated, decision.Outcome)
	assert.Equal(t, LoginPath, decision.RedirectTo)
	assert.Equal(t, "/cart?promo=WELCOME10", decision.ReturnTo)
}

func TestEvaluate_EmptyRequirementAdmitsAnyIdentity(t *testing.T) {
	t.Parallel()

	decision := Evaluate(Session{Identity: identity("client")}, nil, "/cart")

	assert.Equal(t, OutcomeGranted, decision.Outcome)
	assert.True(t, decision.Granted())
}

func TestEvaluate_RoleMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		role     string
		required entity.Roles
		want     Outcome
	}{
		{name: "exact match", role: "admin", required: entity.Roles{entity.RoleAdmin}, want: OutcomeGranted},
		{name: "case-insensitive match", role: "ADMIN", required: entity.Roles{entity.RoleAdmin}, want: OutcomeGranted},
		{name: "any of several", role: "kitchen", required: entity.Roles{entity.RoleAdmin, entity.RoleKitchen}, want: OutcomeGranted},
		{name: "wrong role", role: "client", required: entity.Roles{entity.RoleAdmin}, want: OutcomeDeniedForbidden},
		{name: "unknown role fails closed", role: "superuser", required: entity.Roles{entity.RoleAdmin}, want: OutcomeDeniedForbidden},
		{name: "empty role fails closed", role: "", required: entity.Roles{entity.RoleAdmin}, want: OutcomeDeniedForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decision := Evaluate(Session{Identity: identity(tt.role)}, tt.required, "/admin")
			assert.Equal(t, tt.want, decision.Outcome)
		})
	}
}

func TestEvaluate_ForbiddenCarriesRoleAndRequirement(t *testing.T) {
	t.Parallel()

	required := entity.Roles{entity.RoleAdmin, entity.RoleKitchen}
	decision := Evaluate(Session{Identity: identity("client")}, required, "/admin")

	assert.Equal(t, OutcomeDeniedForbidden, decision.Outcome)
	assert.Equal(t, "client", decision.Role)
	assert.Equal(t, required, decision.Required)
	assert.Empty(t, decision.RedirectTo, "forbidden denials never redirect")
}
