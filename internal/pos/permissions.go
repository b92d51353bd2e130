package pos

import (
	"github.com/shopspring/decimal"

	"sellx/internal/model"
)

// OperatorPermissions is the capability set computed once per session from
// the operator's role, then passed down. Decision points check capabilities,
// never role strings.
type OperatorPermissions struct {
	CanGiveDiscount    bool
	MaxDiscountPercent decimal.Decimal // 0–100
	CanOverrideStock   bool
	CanChangePrice     bool
}

var hundred = decimal.NewFromInt(100)

// PermissionsFor derives the capability set for an operator.
// Admin, manager and owner roles may override stock shortages and change
// prices; cashiers are bounded by their configured discount cap.
func PermissionsFor(u *model.User) OperatorPermissions {
	switch u.Role {
	case model.RoleAdmin, model.RoleManager, model.RoleOwner:
		max := u.MaxDiscountPercent
		if max.IsZero() {
			max = hundred
		}
		return OperatorPermissions{
			CanGiveDiscount:    true,
			MaxDiscountPercent: max,
			CanOverrideStock:   true,
			CanChangePrice:     true,
		}
	default:
		return OperatorPermissions{
			CanGiveDiscount:    u.MaxDiscountPercent.IsPositive(),
			MaxDiscountPercent: u.MaxDiscountPercent,
		}
	}
}
