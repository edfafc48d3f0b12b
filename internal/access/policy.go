package access

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Casbin model for the role/resource/action grid. Policies are loaded
// programmatically so the grid ships inside the binary instead of a
// config file that can drift from the code that depends on it.
const policyModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

type rule struct {
	resource string
	action   string
	roles    []Role
}

var admin = []Role{RoleAdmin}
var adminManager = []Role{RoleAdmin, RoleManager}
var everyone = []Role{RoleAdmin, RoleManager, RoleEmployee}

// grid is the full permission surface. Employee grants are further
// narrowed to the caller's own rows by the evaluator.
var grid = []rule{
	{ResourceUser, ActionCreate, admin},
	{ResourceUser, ActionRead, everyone},
	{ResourceUser, ActionUpdate, admin},

	{ResourceTask, ActionCreate, adminManager},
	{ResourceTask, ActionRead, everyone},
	{ResourceTask, ActionUpdate, everyone},
	{ResourceTask, ActionComment, everyone},

	{ResourceLeave, ActionCreate, []Role{RoleAdmin, RoleEmployee}},
	{ResourceLeave, ActionRead, everyone},
	{ResourceLeave, ActionDecide, adminManager},

	{ResourceAttendance, ActionCreate, adminManager},
	{ResourceAttendance, ActionRead, everyone},
	{ResourceAttendance, ActionUpdate, adminManager},

	{ResourceFinancial, ActionCreate, admin},
	{ResourceFinancial, ActionRead, everyone},
	{ResourceFinancial, ActionUpdate, admin},
	{ResourceFinancial, ActionSummarize, adminManager},

	{ResourceReport, ActionCreate, adminManager},
	{ResourceReport, ActionRead, adminManager},

	{ResourceInsight, ActionGenerate, adminManager},
	{ResourceInsight, ActionChat, adminManager},
}

// NewEnforcer builds the casbin enforcer preloaded with the grid.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("access: build model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("access: build enforcer: %w", err)
	}

	for _, r := range grid {
		for _, role := range r.roles {
			if _, err := enforcer.AddPolicy(string(role), r.resource, r.action); err != nil {
				return nil, fmt.Errorf("access: load policy %s/%s/%s: %w", role, r.resource, r.action, err)
			}
		}
	}

	return enforcer, nil
}
