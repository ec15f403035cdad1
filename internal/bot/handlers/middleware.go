// Package handlers contains the Telegram update handlers, their registration
// logic and middleware.
package handlers

import (
	"context"
	"fmt"
	"runtime/debug"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Recover creates a middleware that stops a panicking handler from taking
// down the update loop. The panic is logged with its stack.
func Recover(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					log := deps.Logger.With("middleware", "Recover")
					log.ErrorContext(ctx, "Handler panicked",
						"update_id", update.ID,
						"error", fmt.Sprint(r),
						"stack", string(debug.Stack()))
				}
			}()
			next(ctx, bot, update)
		}
	}
}
