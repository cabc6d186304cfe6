// Package domain holds the identity types shared across the portal.
package domain

// PrincipalKind distinguishes the three authenticated actor types.
type PrincipalKind string

const (
	KindTaxpayer PrincipalKind = "taxpayer"
	KindBusiness PrincipalKind = "business"
	KindAdmin    PrincipalKind = "admin"
)

// Principal is the authenticated actor for a request. ID is the row id of the
// backing profile (individual_id, business_id or tax_admins.id); TPIN is set
// for taxpayer and business principals and empty for admins.
type Principal struct {
	Kind  PrincipalKind
	ID    int64
	TPIN  string
	Name  string
	Email string
}

// IsZero reports whether no principal has been resolved.
func (p Principal) IsZero() bool { return p.Kind == "" }
