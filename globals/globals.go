package globals

import (
	"context"
)

// JwtSecret is populated by db.Init once the environment is loaded; reading
// it at package init would race godotenv.
var JwtSecret []byte

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

var Ctx = context.Background()
