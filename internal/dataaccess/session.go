package dataaccess

import (
	"entrena/gym-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is the resolved authenticated identity for one request. Data-access
// functions only ever read it. A nil *Session means no authenticated identity.
type Session struct {
	ID                  primitive.ObjectID
	Role                domain.Role
	OnboardingCompleted bool
	AuthProvider        string
}

// requireRole is the single authorization gate shared by every data-access
// function. It reports whether the session exists and carries one of the
// allowed roles; with no allowed roles it only requires authentication.
func requireRole(sess *Session, allowed ...domain.Role) bool {
	if sess == nil || sess.ID == primitive.NilObjectID {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, role := range allowed {
		if sess.Role == role {
			return true
		}
	}
	return false
}
