// Package cli реализует команды клиента PlateSync.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/platesync/internal/client/auth"
	"github.com/iudanet/platesync/internal/client/iocli"
	"github.com/iudanet/platesync/internal/client/storage"
	"github.com/iudanet/platesync/internal/client/syncer"
	"github.com/iudanet/platesync/internal/client/thumbcache"
)

type Cli struct {
	io          iocli.IO
	authService *auth.Service
	engine      *syncer.Engine
	meals       storage.MealStorage
	cache       *thumbcache.Cache
}

func New(
	io iocli.IO,
	authService *auth.Service,
	engine *syncer.Engine,
	meals storage.MealStorage,
	cache *thumbcache.Cache,
) *Cli {
	return &Cli{
		io:          io,
		authService: authService,
		engine:      engine,
		meals:       meals,
		cache:       cache,
	}
}

// Run выполняет одну команду CLI
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "add":
		return c.runAdd(ctx)
	case "list":
		return c.runList(ctx)
	case "delete":
		return c.runDelete(ctx, args)
	case "sync":
		return c.runSync(ctx)
	case "thumbs":
		return c.runThumbs(ctx)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// requireAuth возвращает действующие данные авторизации или ошибку
// с подсказкой залогиниться
func (c *Cli) requireAuth(ctx context.Context) (*storage.AuthData, error) {
	authData, err := c.authService.CurrentAuth(ctx)
	if err != nil {
		if err == storage.ErrAuthNotFound {
			return nil, fmt.Errorf("not authenticated. Please run 'platesync login' first")
		}
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}

	if time.Now().Unix() >= authData.ExpiresAt {
		return nil, fmt.Errorf("access token has expired. Please login again")
	}

	return authData, nil
}

func (c *Cli) PrintUsage() {
	c.io.Println("PlateSync Client")
	c.io.Println()
	c.io.Println("Usage:")
	c.io.Println("  platesync [OPTIONS] COMMAND")
	c.io.Println()
	c.io.Println("Options:")
	c.io.Println("  --version        Show version information")
	c.io.Println("  --server URL     Server URL (default: http://localhost:8080)")
	c.io.Println("  --db PATH        Path to local database (default: platesync-client.db)")
	c.io.Println()
	c.io.Println("Commands:")
	c.io.Println("  register         Register new user")
	c.io.Println("  login            Login to server")
	c.io.Println("  logout           Logout (remove local session)")
	c.io.Println("  status           Show authentication and sync status")
	c.io.Println("  add              Add a meal entry")
	c.io.Println("  list             List meal entries")
	c.io.Println("  delete <id>      Delete a meal entry")
	c.io.Println("  sync             Drain the offline mutation queue")
	c.io.Println("  thumbs           Show thumbnail cache statistics")
	c.io.Println()
	c.io.Println("Examples:")
	c.io.Println("  platesync register")
	c.io.Println("  platesync add")
	c.io.Println("  platesync delete b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5")
	c.io.Println("  platesync --server https://example.com sync")
}
