package middleware

import "github.com/lshigami/dailydose/internal/model"

// Rule states who may call a route. Public routes skip authentication.
type Rule struct {
	Public bool
	Roles  []model.Role
}

func (r Rule) Allows(role model.Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

var (
	public      = Rule{Public: true}
	anyRole     = Rule{Roles: []model.Role{model.RoleSuperAdmin, model.RoleQAuthor, model.RoleStudent}}
	superAdmin  = Rule{Roles: []model.Role{model.RoleSuperAdmin}}
	author      = Rule{Roles: []model.Role{model.RoleQAuthor}}
	authorAdmin = Rule{Roles: []model.Role{model.RoleQAuthor, model.RoleSuperAdmin}}
	student     = Rule{Roles: []model.Role{model.RoleStudent}}
)

// Permissions maps "METHOD route-pattern" to its access rule. Authenticated
// routes missing from the table are denied.
var Permissions = map[string]Rule{
	"POST /api/v1/auth/register": public,
	"POST /api/v1/auth/login":    public,
	"POST /api/v1/auth/logout":   anyRole,
	"GET /api/v1/auth/me":        anyRole,

	"GET /api/v1/questions":                        authorAdmin,
	"POST /api/v1/questions":                       author,
	"GET /api/v1/questions/:id":                    authorAdmin,
	"PUT /api/v1/questions/:id":                    author,
	"DELETE /api/v1/questions/:id":                 author,
	"POST /api/v1/questions/:id/explanation-draft": author,

	"GET /api/v1/subjects":        anyRole,
	"POST /api/v1/subjects":       superAdmin,
	"PUT /api/v1/subjects/:id":    superAdmin,
	"DELETE /api/v1/subjects/:id": superAdmin,

	"GET /api/v1/users": superAdmin,

	"GET /api/v1/student/subjects":       student,
	"POST /api/v1/student/subjects":      student,
	"POST /api/v1/student/submit-answer": student,
	"POST /api/v1/student/end-session":   student,
	"GET /api/v1/student/analytics":      student,

	"GET /api/v1/daily-questions":  student,
	"POST /api/v1/daily-questions": student,
}
