package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context carries a request context and, when inside a transaction, its handle.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

func From(ctx context.Context) Context { return Context{Ctx: ctx} }

// DB returns the transaction when present, otherwise fallback, bound to Ctx.
func (c Context) DB(fallback *gorm.DB) *gorm.DB {
	tx := c.Tx
	if tx == nil {
		tx = fallback
	}
	ctx := c.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return tx.WithContext(ctx)
}
