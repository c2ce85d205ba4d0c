package model

import "encoding/json"

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusBanned   UserStatus = "banned"
)

func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusInactive || s == UserStatusBanned
}

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleUser
}

// User is a storefront account with its orders embedded by id.
type User struct {
	UID         string           `json:"uid"`
	Email       string           `json:"email"`
	DisplayName string           `json:"displayName"`
	PhotoURL    string           `json:"photoURL,omitempty"`
	Phone       string           `json:"phone,omitempty"`
	Gender      string           `json:"gender,omitempty"`
	Dob         string           `json:"dob,omitempty"`
	Address     string           `json:"address,omitempty"`
	Role        UserRole         `json:"role"`
	Status      UserStatus       `json:"status,omitempty"`
	CreatedAt   Timestamp        `json:"createdAt"`
	UpdatedAt   Timestamp        `json:"updatedAt"`
	Orders      map[string]Order `json:"orders,omitempty"`
	Cart        json.RawMessage  `json:"cart,omitempty"`
}

// EffectiveStatus treats a missing status as active.
func (u User) EffectiveStatus() UserStatus {
	if u.Status == "" {
		return UserStatusActive
	}
	return u.Status
}

// Contact is the snapshot copied onto flattened orders.
func (u User) Contact() UserInfo {
	return UserInfo{ID: u.UID, DisplayName: u.DisplayName, Email: u.Email, Phone: u.Phone}
}

type userAlias User

// UnmarshalJSON decodes embedded orders one by one so that a single broken
// order does not hide the whole account.
func (u *User) UnmarshalJSON(data []byte) error {
	aux := struct {
		*userAlias
		Orders map[string]json.RawMessage `json:"orders"`
	}{userAlias: (*userAlias)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	u.Orders = nil
	if len(aux.Orders) == 0 {
		return nil
	}
	u.Orders = make(map[string]Order, len(aux.Orders))
	for id, raw := range aux.Orders {
		var o Order
		if err := json.Unmarshal(raw, &o); err != nil {
			continue
		}
		if o.ID == "" {
			o.ID = id
		}
		u.Orders[id] = o
	}
	return nil
}
