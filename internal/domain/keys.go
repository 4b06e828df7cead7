package domain

type CtxKey string

const (
	KeyUserID  CtxKey = "UserID"
	KeyIsAdmin CtxKey = "IsAdmin"
)
