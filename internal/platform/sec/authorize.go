// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package sec

// # Authorization Policy

// capabilityKind enumerates the requirement levels a protected operation can demand.
type capabilityKind int

const (
	capAnyAuthenticated capabilityKind = iota
	capModeratorOrAdmin
	capAdmin
	capOwnerOrModeratorOrAdmin
)

// Capability is an authorization requirement checked against decoded claims.
//
// Construct values via [AnyAuthenticated], [ModeratorOrAdmin], [Admin], or
// [OwnerOrModeratorOrAdmin]; the zero value is AnyAuthenticated.
type Capability struct {
	kind    capabilityKind
	ownerID int64
}

// AnyAuthenticated requires only a valid, unexpired token.
func AnyAuthenticated() Capability {
	return Capability{kind: capAnyAuthenticated}
}

// ModeratorOrAdmin requires an elevated role.
func ModeratorOrAdmin() Capability {
	return Capability{kind: capModeratorOrAdmin}
}

// Admin requires the admin role.
func Admin() Capability {
	return Capability{kind: capAdmin}
}

// OwnerOrModeratorOrAdmin requires the acting user to own the resource, or to
// hold an elevated role. Elevated roles always override ownership.
func OwnerOrModeratorOrAdmin(ownerID int64) Capability {
	return Capability{kind: capOwnerOrModeratorOrAdmin, ownerID: ownerID}
}

// Authorize reports whether the given claims satisfy the required capability.
//
// # Purity
//
// This function performs no I/O. It is evaluated against already-decoded
// claims (nil means the request is anonymous — decode failed or no token was
// supplied) and a caller-supplied resource-owner id. Any matching clause
// grants access; there is no deny-overrides case.
func Authorize(claims *AuthClaims, required Capability) bool {
	if claims == nil {
		return false
	}

	switch required.kind {
	case capAnyAuthenticated:
		return true
	case capModeratorOrAdmin:
		return claims.IsModerator || claims.IsAdmin
	case capAdmin:
		return claims.IsAdmin
	case capOwnerOrModeratorOrAdmin:
		return claims.UserID == required.ownerID || claims.IsModerator || claims.IsAdmin
	default:
		return false
	}
}
