package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional transaction so service
// calls can run inside a caller-owned tx without a second signature.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}
