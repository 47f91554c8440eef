package policy_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/safetydocs/pkg/domain/model/auth"
	"github.com/secmon-lab/safetydocs/pkg/domain/policy"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

func actor(id string, role types.Role) *auth.Actor {
	return &auth.Actor{UserID: types.UserID(id), Role: role}
}

func TestEvaluateProject(t *testing.T) {
	project := policy.Resource{Kind: policy.KindProject, CreatedBy: "creator"}

	tests := []struct {
		name   string
		actor  *auth.Actor
		action policy.Action
		res    policy.Resource
		want   bool
	}{
		{"admin creates", actor("a", types.RoleAdmin), policy.ActionCreate, project, true},
		{"projektleiter creates", actor("p", types.RoleProjektleiter), policy.ActionCreate, project, true},
		{"technischer leiter creates", actor("t", types.RoleTechnischerLeiter), policy.ActionCreate, project, true},
		{"bereichsleiter cannot create", actor("b", types.RoleBereichsleiter), policy.ActionCreate, project, false},
		{"user cannot create", actor("u", types.RoleUser), policy.ActionCreate, project, false},

		{"admin reads any", actor("a", types.RoleAdmin), policy.ActionRead, project, true},
		{"creator reads", actor("creator", types.RoleUser), policy.ActionRead, project, true},
		{"member reads", actor("m", types.RoleUser), policy.ActionRead, policy.Resource{Kind: policy.KindProject, CreatedBy: "creator", IsMember: true}, true},
		{"stranger cannot read", actor("s", types.RoleProjektleiter), policy.ActionRead, project, false},

		{"creator updates own", actor("creator", types.RoleUser), policy.ActionUpdate, project, true},
		{"projektleiter updates any", actor("p", types.RoleProjektleiter), policy.ActionUpdate, project, true},
		{"member cannot update", actor("m", types.RoleUser), policy.ActionUpdate, policy.Resource{Kind: policy.KindProject, CreatedBy: "creator", IsMember: true}, false},

		{"admin deletes", actor("a", types.RoleAdmin), policy.ActionDelete, project, true},
		{"creator cannot delete", actor("creator", types.RoleProjektleiter), policy.ActionDelete, project, false},

		{"technischer leiter manages members", actor("t", types.RoleTechnischerLeiter), policy.ActionManageMembers, project, true},
		{"creator without role cannot manage members", actor("creator", types.RoleUser), policy.ActionManageMembers, project, false},
		{"projektleiter assigns areas", actor("p", types.RoleProjektleiter), policy.ActionAssignAreas, project, true},
		{"bereichsleiter cannot assign areas", actor("b", types.RoleBereichsleiter), policy.ActionAssignAreas, project, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := policy.Evaluate(tt.actor, tt.action, tt.res)
			gt.Value(t, d.Allowed).Equal(tt.want)
			if !tt.want {
				gt.String(t, d.Reason).NotEqual("")
			}
		})
	}
}

func TestEvaluateUser(t *testing.T) {
	admin := actor("a", types.RoleAdmin)
	user := actor("u", types.RoleUser)

	gt.Bool(t, policy.Evaluate(admin, policy.ActionCreate, policy.Resource{Kind: policy.KindUser}).Allowed).True()
	gt.Bool(t, policy.Evaluate(user, policy.ActionCreate, policy.Resource{Kind: policy.KindUser}).Allowed).False()
	gt.Bool(t, policy.Evaluate(user, policy.ActionRead, policy.Resource{Kind: policy.KindUser, Subject: "u"}).Allowed).True()
	gt.Bool(t, policy.Evaluate(user, policy.ActionRead, policy.Resource{Kind: policy.KindUser, Subject: "x"}).Allowed).False()
	gt.Bool(t, policy.Evaluate(admin, policy.ActionDelete, policy.Resource{Kind: policy.KindUser, Subject: "x"}).Allowed).True()
	gt.Bool(t, policy.Evaluate(admin, policy.ActionDelete, policy.Resource{Kind: policy.KindUser, Subject: "a"}).Allowed).False()
}

func TestEvaluateCatalogues(t *testing.T) {
	user := actor("u", types.RoleUser)
	pl := actor("p", types.RoleProjektleiter)
	admin := actor("a", types.RoleAdmin)

	gt.Bool(t, policy.Evaluate(user, policy.ActionRead, policy.Resource{Kind: policy.KindTemplate}).Allowed).True()
	gt.Bool(t, policy.Evaluate(user, policy.ActionCreate, policy.Resource{Kind: policy.KindTemplate}).Allowed).False()
	gt.Bool(t, policy.Evaluate(pl, policy.ActionUpdate, policy.Resource{Kind: policy.KindTemplate}).Allowed).True()

	gt.Bool(t, policy.Evaluate(user, policy.ActionRead, policy.Resource{Kind: policy.KindArea}).Allowed).True()
	gt.Bool(t, policy.Evaluate(pl, policy.ActionCreate, policy.Resource{Kind: policy.KindArea}).Allowed).False()
	gt.Bool(t, policy.Evaluate(admin, policy.ActionCreate, policy.Resource{Kind: policy.KindArea}).Allowed).True()

	gt.Bool(t, policy.Evaluate(pl, policy.ActionRead, policy.Resource{Kind: policy.KindAudit}).Allowed).False()
	gt.Bool(t, policy.Evaluate(admin, policy.ActionRead, policy.Resource{Kind: policy.KindAudit}).Allowed).True()
}

func TestEvaluateContent(t *testing.T) {
	member := actor("m", types.RoleUser)
	res := policy.Resource{Kind: policy.KindContent, CreatedBy: "c", IsMember: true}
	gt.Bool(t, policy.Evaluate(member, policy.ActionUpdate, res).Allowed).True()

	res.IsMember = false
	gt.Bool(t, policy.Evaluate(member, policy.ActionRead, res).Allowed).False()
}

func TestEvaluateWithoutActor(t *testing.T) {
	d := policy.Evaluate(nil, policy.ActionRead, policy.Resource{Kind: policy.KindTemplate})
	gt.Bool(t, d.Allowed).False()
}
