package domain

import "time"

// DefaultAdminImage is the profile image assigned to newly registered admins.
const DefaultAdminImage = "https://www.transparentpng.com/download/user/gray-user-profile-icon-png-fP8Q1P.png"

// Admin models an administrator account as persisted by the credential store.
type Admin struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Image        string    `json:"image"`
	IsActive     bool      `json:"isActive"`
	IsDeleted    bool      `json:"-"`
	Token        string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CanAuthenticate reports whether the account may log in or be resolved by a token.
func (a *Admin) CanAuthenticate() bool {
	return a.IsActive && !a.IsDeleted
}

// Profile is the outward view of an admin. It never carries the password
// hash, the stored token or the deleted flag.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     string    `json:"image"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileOf projects an admin onto its public profile.
func ProfileOf(a *Admin) *Profile {
	return &Profile{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Image:     a.Image,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
