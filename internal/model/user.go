package model

type UserCreate struct {
	FullName string
	Email    string
	Bio      string
	Photo    string
}

type User struct {
	ID        int64
	PushToken string
	Notify    bool
	UserCreate
}

type UserUpdate struct {
	FullName *string
	Bio      *string
	Photo    *string
	Notify   *bool
}

type UserSearchFilter struct {
	Query string
	Limit int
	Page  int
}
