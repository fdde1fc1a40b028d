package model

// RosterMember 训练营花名册成员，只读种子数据
type RosterMember struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Cohort    string `json:"cohort"`
	Role      string `json:"role"`
}
