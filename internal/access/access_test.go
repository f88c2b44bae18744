package access

import (
	"testing"

	"github.com/Wintario/sin-city-sentinels/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin   = Principal{ID: 1, Role: RoleAdmin}
	authorA = Principal{ID: 2, Role: RoleAuthor}
	authorB = Principal{ID: 3, Role: RoleAuthor}
)

func TestAuthorize(t *testing.T) {
	ownedByA := Resource{Kind: KindNews, OwnerID: authorA.ID}
	draftByA := Resource{Kind: KindNews, OwnerID: authorA.ID, Public: false}
	published := Resource{Kind: KindNews, OwnerID: authorA.ID, Public: true}
	member := Resource{Kind: KindMember}
	card := Resource{Kind: KindAboutCard}
	setting := Resource{Kind: KindSetting}
	user := Resource{Kind: KindUser}

	cases := []struct {
		name      string
		principal Principal
		action    Action
		resource  Resource
		allow     bool
		reason    Reason
	}{
		{name: "admin publishes others news", principal: admin, action: ActionPublish, resource: ownedByA, allow: true, reason: ReasonAdmin},
		{name: "admin restores", principal: admin, action: ActionRestore, resource: ownedByA, allow: true, reason: ReasonAdmin},
		{name: "admin sets leader", principal: admin, action: ActionSetLeader, resource: member, allow: true, reason: ReasonAdmin},
		{name: "author creates news", principal: authorB, action: ActionCreate, resource: Resource{Kind: KindNews}, allow: true, reason: ReasonOwner},
		{name: "author updates own", principal: authorA, action: ActionUpdate, resource: ownedByA, allow: true, reason: ReasonOwner},
		{name: "author publishes own", principal: authorA, action: ActionPublish, resource: ownedByA, allow: true, reason: ReasonOwner},
		{name: "author archives own", principal: authorA, action: ActionArchive, resource: ownedByA, allow: true, reason: ReasonOwner},
		{name: "author deletes own", principal: authorA, action: ActionDelete, resource: ownedByA, allow: true, reason: ReasonOwner},
		{name: "author updates others", principal: authorB, action: ActionUpdate, resource: ownedByA, allow: false, reason: ReasonNotOwner},
		{name: "author deletes others", principal: authorB, action: ActionDelete, resource: ownedByA, allow: false, reason: ReasonNotOwner},
		{name: "author restores own", principal: authorA, action: ActionRestore, resource: ownedByA, allow: false, reason: ReasonAdminOnly},
		{name: "author reorders", principal: authorA, action: ActionReorder, resource: Resource{Kind: KindNews}, allow: false, reason: ReasonAdminOnly},
		{name: "author reads others draft", principal: authorB, action: ActionRead, resource: draftByA, allow: true, reason: ReasonStaffRead},
		{name: "author creates member", principal: authorA, action: ActionCreate, resource: member, allow: true, reason: ReasonEditorial},
		{name: "author updates card", principal: authorA, action: ActionUpdate, resource: card, allow: true, reason: ReasonEditorial},
		{name: "author deletes member", principal: authorA, action: ActionDelete, resource: member, allow: false, reason: ReasonAdminOnly},
		{name: "author moves card", principal: authorA, action: ActionReorder, resource: card, allow: false, reason: ReasonAdminOnly},
		{name: "author sets leader", principal: authorA, action: ActionSetLeader, resource: member, allow: false, reason: ReasonAdminOnly},
		{name: "author updates settings", principal: authorA, action: ActionUpdate, resource: setting, allow: false, reason: ReasonAdminOnly},
		{name: "admin lists users", principal: admin, action: ActionRead, resource: user, allow: true, reason: ReasonAdmin},
		{name: "admin manages users", principal: admin, action: ActionManage, resource: user, allow: true, reason: ReasonAdmin},
		{name: "author lists users", principal: authorA, action: ActionRead, resource: user, allow: false, reason: ReasonAdminOnly},
		{name: "author creates user", principal: authorA, action: ActionCreate, resource: user, allow: false, reason: ReasonAdminOnly},
		{name: "anonymous lists users", principal: Anonymous, action: ActionRead, resource: user, allow: false, reason: ReasonNotAuthenticated},
		{name: "anonymous reads published", principal: Anonymous, action: ActionRead, resource: published, allow: true, reason: ReasonPublicRead},
		{name: "anonymous reads draft", principal: Anonymous, action: ActionRead, resource: draftByA, allow: false, reason: ReasonNotPublic},
		{name: "anonymous creates news", principal: Anonymous, action: ActionCreate, resource: Resource{Kind: KindNews}, allow: false, reason: ReasonNotAuthenticated},
		{name: "anonymous with owner id", principal: Principal{ID: 2, Role: RoleAnonymous}, action: ActionUpdate, resource: ownedByA, allow: false, reason: ReasonNotAuthenticated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Authorize(tc.principal, tc.action, tc.resource)
			assert.Equal(t, tc.allow, got.Allowed)
			assert.Equal(t, tc.reason, got.Reason)
			if !tc.allow {
				assert.NotEmpty(t, got.Required)
			}
		})
	}
}

func TestCheck_PermissionDeniedCarriesRequiredAndActual(t *testing.T) {
	err := Check(authorB, ActionUpdate, Resource{Kind: KindNews, OwnerID: authorA.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	var pd *domain.PermissionDeniedError
	require.ErrorAs(t, err, &pd)
	assert.Equal(t, "news.update", pd.Action)
	assert.Equal(t, RequireAdminOrOwner, pd.Required)
	assert.Equal(t, authorB.ID, pd.PrincipalID)
	assert.Equal(t, "author", pd.PrincipalRole)

	assert.NoError(t, Check(admin, ActionUpdate, Resource{Kind: KindNews, OwnerID: authorA.ID}))
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, NormalizeRole("admin"))
	assert.Equal(t, RoleAuthor, NormalizeRole("author"))
	assert.Equal(t, RoleAnonymous, NormalizeRole("superuser"))
	assert.Equal(t, RoleAnonymous, NormalizeRole(""))
}
