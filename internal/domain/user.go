package domain

type User struct {
	ID           int32  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"-"`
	IsGuest      bool   `json:"is_guest"`
	CreatedOn    string `json:"created_on"`
}

// UserProfile holds the rental paperwork fields collected by the onboarding
// tool. At most one profile exists per user; it is created lazily on first
// onboarding and only ever updated, never deleted.
type UserProfile struct {
	ID        int32  `json:"id"`
	UserID    int32  `json:"user_id"`
	FullName  string `json:"full_name"`
	Nickname  string `json:"nickname"`
	LicenseID string `json:"license_id"`
	Phone     string `json:"phone"`
}
