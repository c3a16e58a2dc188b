package utils

// context key
type ctxKey string

const CtxUserKey ctxKey = "user"
