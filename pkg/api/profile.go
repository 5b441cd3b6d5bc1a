package api

type Spouse struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type Profile struct {
	DisplayName string  `json:"displayName"`
	Email       string  `json:"email"`
	Currency    string  `json:"currency"`
	Spouse      *Spouse `json:"spouse,omitempty"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedAt   int64   `json:"updatedAt"`
}

type GetProfileRequest struct{}

type GetProfileResponse struct {
	Profile *Profile `json:"profile"`
}

// UpdateProfileRequest merges the set fields into the profile.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	Currency    *string `json:"currency,omitempty"`
	Spouse      *Spouse `json:"spouse,omitempty"`
	ClearSpouse bool    `json:"clearSpouse,omitempty"`
}

type UpdateProfileResponse struct {
	Profile *Profile `json:"profile"`
}

type ReconcileAccountRequest struct {
	UserID    string `json:"userId"`
	AccountID string `json:"accountId"`
	Repair    bool   `json:"repair,omitempty"`
}

type ReconcileAccountResponse struct {
	StoredBalance   string `json:"storedBalance"`
	ComputedBalance string `json:"computedBalance"`
	Drift           string `json:"drift"`
	Transactions    int32  `json:"transactions"`
	Repaired        bool   `json:"repaired"`
}
