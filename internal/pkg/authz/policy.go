// Package authz decides ledger operations purely from group membership.
package authz

import "github.com/drinktab/drinktab/internal/domain/model"

// Operation is a class of gated ledger activity.
type Operation string

const (
	OpRecordDrink     Operation = "record_drink"
	OpViewCatalog     Operation = "view_catalog"
	OpViewOwnPrepaid  Operation = "view_own_prepaid"
	OpAddPrepaid      Operation = "add_prepaid"
	OpTopUpPrepaid    Operation = "top_up_prepaid"
	OpViewLedgers     Operation = "view_ledgers"
	OpToggleActivated Operation = "toggle_activated"
	OpSetMoney        Operation = "set_money"
	OpPayUp           Operation = "pay_up"
	OpDeletePrepaid   Operation = "delete_prepaid"
	OpManageCatalog   Operation = "manage_catalog"
)

// Level is the membership required for an operation class.
type Level int

const (
	LevelAuthenticated Level = iota
	LevelMember
	LevelAdmin
)

var levels = map[Operation]Level{
	OpRecordDrink:     LevelAuthenticated,
	OpViewCatalog:     LevelAuthenticated,
	OpViewOwnPrepaid:  LevelMember,
	OpAddPrepaid:      LevelMember,
	OpTopUpPrepaid:    LevelMember,
	OpViewLedgers:     LevelAdmin,
	OpToggleActivated: LevelAdmin,
	OpSetMoney:        LevelAdmin,
	OpPayUp:           LevelAdmin,
	OpDeletePrepaid:   LevelAdmin,
	OpManageCatalog:   LevelAdmin,
}

// Policy maps (principal groups, operation) to an allow/deny decision.
// The admin group implies member privileges.
type Policy struct {
	MemberGroup string
	AdminGroup  string
}

// New builds a Policy around the two configured group names.
func New(memberGroup, adminGroup string) Policy {
	return Policy{MemberGroup: memberGroup, AdminGroup: adminGroup}
}

// Allows reports whether the principal may perform the operation class.
// A nil principal and an unknown operation are both denied.
func (p Policy) Allows(principal *model.Principal, op Operation) bool {
	if principal == nil {
		return false
	}
	level, ok := levels[op]
	if !ok {
		return false
	}
	switch level {
	case LevelAdmin:
		return p.IsAdmin(principal)
	case LevelMember:
		return p.IsMember(principal)
	default:
		return true
	}
}

// IsMember reports general membership; admins count as members.
func (p Policy) IsMember(principal *model.Principal) bool {
	return principal.InGroup(p.MemberGroup) || p.IsAdmin(principal)
}

// IsAdmin reports administrative membership.
func (p Policy) IsAdmin(principal *model.Principal) bool {
	return principal.InGroup(p.AdminGroup)
}
