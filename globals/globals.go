package globals

import (
	"context"
	"os"
)

var (
	JwtSecret = []byte(os.Getenv("TOKEN_SECRET"))
)

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const ClaimsKey ContextKey = "claims"

var Ctx = context.Background()
