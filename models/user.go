package models

// User is a signed-up account. Email is the unique identifier across every
// collection; records are only ever mutated by their owner via profile edit.
type User struct {
	Email       string `json:"email"`
	FullName    Name   `json:"fullName"`
	Avatar      string `json:"avatar,omitempty"`
	YouAre      string `json:"youAre,omitempty"`
	Level       string `json:"level,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	Location    string `json:"location,omitempty"`
	Birthday    string `json:"birthday,omitempty"`

	// Role / LeaderEmail drive whose calendar events an assignee sees.
	Role        string `json:"role,omitempty"`
	LeaderEmail string `json:"leaderEmail,omitempty"`

	// Per-user vacation allowance override; 0 means "use the default".
	VacationDaysLeft int `json:"vacationDaysLeft,omitempty"`

	extra Extra
}

type userAlias User

func (u *User) UnmarshalJSON(data []byte) error {
	var a userAlias
	extra, err := splitExtra(data, &a)
	if err != nil {
		return err
	}
	*u = User(a)
	u.extra = extra
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	return mergeExtra(userAlias(u), u.extra)
}

// DisplayName is what the UI shows for a user; falls back to the email when
// the profile has no usable name.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName.String()
	}
	return u.Email
}

// Member is one entry of a user's team list (the members_<email> blob).
// The dashboard enriches these against the users collection.
type Member struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Position string `json:"position,omitempty"`
	Level    string `json:"level,omitempty"`
}
