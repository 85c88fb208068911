// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/recall"
	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

func main() {
	app := &cli.App{
		Name:  "recall",
		Usage: "Personal content library with semantic search and chat",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the item database directory",
				Value:   defaultDBPath(),
			},
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "User scope for every operation",
				EnvVars: []string{"RECALL_USER"},
				Value:   "default",
			},
			&cli.StringFlag{
				Name:  "qdrant-url",
				Usage: "Qdrant server URL (empty runs the in-process index)",
				EnvVars: []string{"RECALL_QDRANT_URL"},
			},
			&cli.StringFlag{
				Name:  "qdrant-collection",
				Usage: "Qdrant collection name",
			},
			&cli.StringFlag{
				Name:    "qdrant-api-key",
				Usage:   "Qdrant API key",
				EnvVars: []string{"RECALL_QDRANT_API_KEY"},
			},
			&cli.StringFlag{
				Name:  "ai-host",
				Usage: "OpenAI-compatible host for embeddings and chat",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
				Value: "embeddinggemma",
			},
			&cli.StringFlag{
				Name:  "chat-model",
				Usage: "Chat/annotation model name",
				Value: "qwen2.5:3b",
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "API key for the AI host",
				EnvVars: []string{"RECALL_API_KEY"},
			},
			&cli.BoolFlag{
				Name:  "offline",
				Usage: "Run without any AI services (digest embeddings only)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "save",
				Usage:     "Save content: a URL, a forwarded message or plain text",
				ArgsUsage: "<content>",
				Action:    saveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "notes",
						Aliases: []string{"n"},
						Usage:   "Personal notes to attach",
					},
					&cli.StringFlag{
						Name:  "platform",
						Usage: "Override the detected platform",
					},
				},
			},
			{
				Name:      "save-image",
				Usage:     "Save an uploaded image by URL",
				ArgsUsage: "<image-url>",
				Action:    saveImageCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "notes",
						Aliases: []string{"n"},
						Usage:   "Personal notes to attach",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search saved content",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum results",
						Value: 10,
					},
				},
			},
			{
				Name:      "chat",
				Usage:     "Chat about saved content (single turn, or interactive with no argument)",
				ArgsUsage: "[message]",
				Action:    chatCommand,
			},
			{
				Name:   "list",
				Usage:  "List saved items, newest first",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only items with this category label",
					},
					&cli.StringFlag{
						Name:  "platform",
						Usage: "Only items from this platform",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum items",
						Value: 20,
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Skip this many items",
					},
				},
			},
			{
				Name:   "categories",
				Usage:  "Show category labels with item counts",
				Action: categoriesCommand,
			},
			{
				Name:      "delete",
				Usage:     "Delete a saved item",
				ArgsUsage: "<item-id>",
				Action:    deleteCommand,
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild the vector index from the item store",
				Action: reindexCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".recall"
	}
	return home + "/.recall/db"
}

func openRecall(c *cli.Context) (*recall.Recall, error) {
	opts := []recall.Option{
		recall.WithAIConfig(ai.NewConfig(
			ai.WithHost(c.String("ai-host")),
			ai.WithEmbeddingModel(c.String("embedding-model")),
			ai.WithChatModel(c.String("chat-model")),
			ai.WithAPIKey(c.String("api-key")),
		)),
	}
	if c.Bool("offline") {
		opts = append(opts, recall.WithOffline())
	}
	if url := c.String("qdrant-url"); url != "" {
		opts = append(opts, recall.WithQdrant(url,
			c.String("qdrant-collection"), c.String("qdrant-api-key")))
	}
	return recall.Open(c.String("db"), opts...)
}

func saveCommand(c *cli.Context) error {
	content := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if content == "" {
		return fmt.Errorf("nothing to save: pass content as an argument")
	}

	r, err := openRecall(c)
	if err != nil {
		return err
	}
	defer r.Close()

	item, err := r.Save(c.Context, c.String("user"), &core.Submission{
		Content:  content,
		Notes:    c.String("notes"),
		Platform: core.Platform(c.String("platform")),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Saved %s\n", item.ID)
	printItem(item)
	return nil
}

func saveImageCommand(c *cli.Context) error {
	imageURL := c.Args().First()
	if imageURL == "" {
		return fmt.Errorf("missing image URL argument")
	}

	r, err := openRecall(c)
	if err != nil {
		return err
	}
	defer r.Close()

	item, err := r.SaveImage(c.Context, c.String("user"), imageURL, c.String("notes"))
	if err != nil {
		return err
	}

	fmt.Printf("Saved %s\n", item.ID)
	printItem(item)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("missing search query")
	}

	r, err := openRecall(c)
	if err != nil {
		return err
	}
	defer r.Close()

	items, err := r.Search(c.Context, c.String("user"), query, c.Int("limit"))
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	for _, item := range items {
		printItem(item)
	}
	return nil
}

func chatCommand(c *cli.Context) error {
	r, err := openRecall(c)
	if err != nil {
		return err
	}
	defer r.Close()

	userID := c.String("user")

	if message := strings.TrimSpace(strings.Join(c.Args().Slice(), " ")); message != "" {
		reply, items := r.Chat(c.Context, userID, message, nil)
		fmt.Println(reply)
		printSources(items)
		return nil
	}

	// Interactive loop keeping a rolling history.
	var history []core.ChatMessage
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Chatting about your saved content. Empty line quits.")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			break
		}

		reply, items := r.Chat(c.Context, userID, message, history)
		fmt.Println(reply)
		printSources(items)

		history = append(history,
			core.ChatMessage{Role: "user", Content: message},
			core.ChatMessage{Role: "assistant", Content: reply})
	}
	return scanner.Err()
}

func listCommand(c *cli.Context) error {
	r, err := openRecall(c)
	if err != nil {
		return err
	}
	defer r.Close()

	items, err := r.List(c.Context, storage.ListQuery{
		UserID:   c.String("user"),
		Category: c.String("category"),
		Platform: core.Platform(c.String("platform")),
		Limit:    c.Int("limit"),
		Offset:   c.Int("offset"),
	})
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No items.")
		return nil
	}

	for _, item := range items {
		printItem(item)
	}
	return nil
}

func categoriesCommand(c *cli.Context) error {
	r, err := openRecall(c)
	if err != nil {
		return err
	}
	defer r.Close()

	counts, err := r.Categories(c.Context, c.String("user"))
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		fmt.Println("No categories.")
		return nil
	}

	for category, count := range counts {
		fmt.Printf("%-24s %d\n", category, count)
	}
	return nil
}

func deleteCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("missing item ID argument")
	}

	r, err := openRecall(c)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := r.Delete(c.Context, id, c.String("user")); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", id)
	return nil
}

func reindexCommand(c *cli.Context) error {
	r, err := openRecall(c)
	if err != nil {
		return err
	}
	defer r.Close()

	return r.Reindex(c.Context, c.String("user"), os.Stderr)
}

func printItem(item *core.Item) {
	title := item.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Printf("%s  [%s/%s]  %s\n", item.ID, item.Platform, item.ContentType, title)
	if len(item.Categories) > 0 {
		fmt.Printf("    categories: %s\n", strings.Join(item.Categories, ", "))
	}
	if item.AISummary != "" {
		fmt.Printf("    %s\n", item.AISummary)
	}
	if item.SourceURL != "" {
		fmt.Printf("    %s\n", item.SourceURL)
	}
}

func printSources(items []*core.Item) {
	if len(items) == 0 {
		return
	}
	fmt.Println("\nSources:")
	for _, item := range items {
		title := item.Title
		if title == "" {
			title = item.ID
		}
		fmt.Printf("  - [%s] %s\n", item.Platform, title)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
