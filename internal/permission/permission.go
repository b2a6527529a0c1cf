// Package permission decides whether an actor may perform an action on a
// resource. Decisions come from a single table keyed by (resource, action);
// evaluation is a pure function with no caching and no stored state.
package permission

// Actor is the identity attached to a request. A nil *Actor means the
// request is anonymous.
type Actor struct {
	ID   string
	Role Role
}

// Action is an operation on a resource.
type Action int

const (
	ActionList Action = iota
	ActionRetrieve
	ActionCreate
	ActionUpdate
	ActionDelete
)

// Resource is an entity family exposed by the API.
type Resource int

const (
	ResourceCategory Resource = iota
	ResourceGenre
	ResourceTitle
	ResourceUser
	ResourceProfile
	ResourceReview
	ResourceComment
)

// requirement is the minimum condition an actor must satisfy.
type requirement int

const (
	// anyone: no identity needed, anonymous included.
	anyone requirement = iota
	// authenticated: any signed-in actor, role irrelevant.
	authenticated
	// owner: the actor must be the resource's author. Strict: an admin
	// without authorship is denied by this rule.
	owner
	// moderator: moderator or admin, authorship irrelevant.
	moderator
	// admin: admin only.
	admin
)

// table is the full decision table. A missing entry denies.
var table = map[Resource]map[Action]requirement{
	ResourceCategory: catalogRules(),
	ResourceGenre:    catalogRules(),
	ResourceTitle:    catalogRules(),
	ResourceUser: {
		ActionList:     admin,
		ActionRetrieve: admin,
		ActionCreate:   admin,
		ActionUpdate:   admin,
		ActionDelete:   admin,
	},
	// The self-service "me" path: any authenticated actor reads and
	// updates their own profile regardless of role.
	ResourceProfile: {
		ActionRetrieve: authenticated,
		ActionUpdate:   authenticated,
	},
	ResourceReview:  contributionRules(),
	ResourceComment: contributionRules(),
}

// catalogRules: reads are public, writes are administrative.
func catalogRules() map[Action]requirement {
	return map[Action]requirement{
		ActionList:     anyone,
		ActionRetrieve: anyone,
		ActionCreate:   admin,
		ActionUpdate:   admin,
		ActionDelete:   admin,
	}
}

// contributionRules cover reviews and comments. Edits are personal,
// deletions are a moderation action.
func contributionRules() map[Action]requirement {
	return map[Action]requirement{
		ActionList:     anyone,
		ActionRetrieve: anyone,
		ActionCreate:   authenticated,
		ActionUpdate:   owner,
		ActionDelete:   moderator,
	}
}

// Allowed reports whether actor may perform action on the given resource.
// ownerID is the author of the specific record, or "" when the rule does
// not depend on ownership.
func Allowed(actor *Actor, action Action, resource Resource, ownerID string) bool {
	actions, ok := table[resource]
	if !ok {
		return false
	}
	req, ok := actions[action]
	if !ok {
		return false
	}

	switch req {
	case anyone:
		return true
	case authenticated:
		return actor != nil
	case owner:
		return actor != nil && ownerID != "" && actor.ID == ownerID
	case moderator:
		return actor != nil && actor.Role.AtLeast(RoleModerator)
	case admin:
		return actor != nil && actor.Role.AtLeast(RoleAdmin)
	}
	return false
}
