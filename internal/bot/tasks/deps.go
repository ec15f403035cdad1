// Package tasks implements the scheduled housekeeping tasks of the bot.
package tasks

import (
	"log/slog"

	"github.com/edgard/halalbot/internal/config"
	"github.com/edgard/halalbot/internal/database"
)

// TaskDeps contains the dependencies shared by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.InteractionStore
	Config *config.Config
}
