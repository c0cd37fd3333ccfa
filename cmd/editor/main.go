package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"storefront-server/internal/editor"
	"storefront-server/internal/editor/snapshot"
	"storefront-server/internal/logger"
)

// A small interactive client for the draft engine: edits debounce into the
// remote store while every keystroke lands in the local sqlite snapshot, so a
// session can be killed and resumed without losing work.
func main() {
	_ = godotenv.Load()

	serverURL := flag.String("server", envOr("STOREFRONT_URL", "http://localhost:8080"), "storefront server base URL")
	token := flag.String("token", os.Getenv("STOREFRONT_TOKEN"), "access token")
	ownerID := flag.String("owner", os.Getenv("STOREFRONT_OWNER_ID"), "owner id, empty for anonymous")
	draftID := flag.String("draft", "", "resume an existing draft id")
	dbPath := flag.String("db", envOr("STOREFRONT_SNAPSHOT_DB", "draft-snapshot.db"), "local snapshot database path")
	logLevel := flag.String("log-level", envOr("LOG_LEVEL", "warn"), "log level")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: *logLevel, Encoding: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// When the snapshot database cannot be opened the session still works,
	// it just loses crash durability.
	var kv snapshot.KV
	sqliteKV, err := snapshot.NewSQLiteKV(*dbPath)
	if err != nil {
		log.Warn("Snapshot database unavailable, edits are not persisted locally",
			zap.String("path", *dbPath), zap.Error(err))
		kv = snapshot.NewMemoryKV()
	} else {
		defer sqliteKV.Close()
		kv = sqliteKV
	}

	client := editor.NewHTTPDraftClient(*serverURL, *token, log)
	ctrl := editor.NewController(editor.Config{
		Local:     snapshot.NewStore(kv, nil, log),
		Remote:    client,
		Publisher: client,
		OwnerID:   *ownerID,
		Logger:    log,
		OnStatusChange: func(status editor.SaveStatus, message string) {
			if message != "" {
				fmt.Printf("[%s] %s\n", status, message)
			}
		},
	})

	ctx := context.Background()
	if err := ctrl.Load(ctx, *draftID); err != nil {
		fmt.Printf("Loaded with degraded remote: %v\n", err)
	}
	if c := ctrl.Conflict(); c != nil {
		fmt.Println("Conflicting copies found:")
		fmt.Printf("  local : %q (saved %d)\n", c.Local.Name, c.Local.SavedAt)
		fmt.Printf("  remote: %q (saved %d)\n", c.Remote.Name, c.Remote.SavedAt)
		fmt.Println("Pick one with: resolve local | resolve remote")
	}

	fmt.Println("Commands: show, name <v>, desc <v>, price <cents>, category <v>, spec <k> <v>, save, publish, discard, resolve local|remote, status, quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 3)
		cmd := parts[0]

		switch cmd {
		case "quit", "exit":
			// Flush pending edits so nothing is lost between sessions.
			ctrl.FlushNow()
			return

		case "show":
			doc := ctrl.Document()
			fmt.Printf("name:        %s\n", doc.Name)
			fmt.Printf("description: %s\n", doc.Description)
			fmt.Printf("price_cents: %d\n", doc.PriceCents)
			fmt.Printf("category:    %s\n", doc.Category)
			for k, v := range doc.Specs {
				fmt.Printf("spec %s: %s\n", k, v)
			}
			fmt.Printf("saved_at:    %d\n", doc.SavedAt)

		case "status":
			status, msg := ctrl.Status()
			fmt.Printf("state=%v status=%s draft=%q remoteSavedAt=%d", ctrl.State(), status, ctrl.ActiveDraftID(), ctrl.RemoteSavedAt())
			if msg != "" {
				fmt.Printf(" (%s)", msg)
			}
			fmt.Println()

		case "name", "desc", "price", "category":
			if len(parts) < 2 {
				fmt.Println("Missing value")
				continue
			}
			value := strings.Join(parts[1:], " ")
			doc := ctrl.Document()
			switch cmd {
			case "name":
				doc.Name = value
			case "desc":
				doc.Description = value
			case "category":
				doc.Category = value
			case "price":
				cents, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					fmt.Printf("Invalid price: %v\n", err)
					continue
				}
				doc.PriceCents = cents
			}
			if _, err := ctrl.Edit(doc); err != nil {
				fmt.Printf("Edit rejected: %v\n", err)
			}

		case "spec":
			if len(parts) < 3 {
				fmt.Println("Usage: spec <key> <value>")
				continue
			}
			doc := ctrl.Document()
			doc.Specs[parts[1]] = parts[2]
			if _, err := ctrl.Edit(doc); err != nil {
				fmt.Printf("Edit rejected: %v\n", err)
			}

		case "save":
			ctrl.FlushNow()
			status, msg := ctrl.Status()
			fmt.Printf("[%s] %s\n", status, msg)

		case "publish":
			productID, err := ctrl.Publish(ctx)
			if err != nil {
				fmt.Printf("Publish failed: %v\n", err)
				continue
			}
			fmt.Printf("Published as product %s\n", productID)
			return

		case "discard":
			if err := ctrl.Discard(ctx); err != nil {
				fmt.Printf("Discard failed: %v\n", err)
				continue
			}
			fmt.Println("Draft discarded")
			return

		case "resolve":
			if len(parts) < 2 || (parts[1] != "local" && parts[1] != "remote") {
				fmt.Println("Usage: resolve local|remote")
				continue
			}
			choice := editor.KeepLocal
			if parts[1] == "remote" {
				choice = editor.KeepRemote
			}
			doc, err := ctrl.ResolveConflict(choice)
			if err != nil {
				fmt.Printf("Resolve failed: %v\n", err)
				continue
			}
			fmt.Printf("Continuing with %q\n", doc.Name)

		default:
			fmt.Printf("Unknown command %q\n", cmd)
		}
	}

	ctrl.FlushNow()
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
