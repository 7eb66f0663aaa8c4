// Package main provides an interactive CLI for the flight booking engine:
// a scripted demo that exercises every tool, and a chat mode backed by an
// OpenAI-compatible model.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/skywardair/skyward"
	"github.com/skywardair/skyward/assistant"
	"github.com/skywardair/skyward/dispatch"
	"github.com/skywardair/skyward/seed"
)

// ANSI color codes
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorWhite   = "\033[37m"
	colorBold    = "\033[1m"
	colorDim     = "\033[2m"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr,
			"%sError: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}

func run() error {
	flights, err := loadInventory()
	if err != nil {
		return err
	}

	engine, err := skyward.NewEngine(flights)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	registry := dispatch.NewRegistry()
	engine.RegisterAllTools(registry)

	rl, err := readline.New(
		colorCyan +
			"Enter selection (or 'q' to quit): " +
			colorReset)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	type menuItem struct {
		name        string
		description string
		run         func(ctx context.Context) error
	}

	menuItems := []menuItem{
		{
			name:        "Scripted Demo",
			description: "Run every tool through a booking lifecycle",
			run: func(ctx context.Context) error {
				return runDemo(ctx, registry)
			},
		},
		{
			name:        "Interactive Chat",
			description: "Chat with the booking assistant",
			run: func(ctx context.Context) error {
				return runInteractiveChat(ctx, registry)
			},
		},
	}

	if os.Getenv("SKYWARD_OPENAI_KEY") == "" {
		fmt.Fprintf(os.Stderr,
			"%sWARNING: SKYWARD_OPENAI_KEY environment variable "+
				"is not set!%s\n",
			colorYellow, colorReset)
		fmt.Fprintf(os.Stderr,
			"%sInteractive chat will fail. The scripted demo "+
				"still works.%s\n",
			colorYellow, colorReset)
		fmt.Fprintln(os.Stderr)
	}

	fmt.Printf("%s%sSkyward Booking CLI:%s\n",
		colorBold, colorYellow, colorReset)
	fmt.Printf("%s%s%s\n",
		colorYellow, strings.Repeat("=", 20), colorReset)
	for i, item := range menuItems {
		fmt.Printf("  %s%d.%s %s%s%s - %s\n",
			colorCyan, i+1, colorReset,
			colorWhite, item.name, colorReset,
			item.description)
	}
	fmt.Println()

	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Printf("\n%sGoodbye!%s\n",
					colorGreen, colorReset)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "q" || input == "Q" {
			fmt.Printf("%sGoodbye!%s\n", colorGreen, colorReset)
			return nil
		}

		num, err := strconv.Atoi(input)
		if err != nil || num < 1 || num > len(menuItems) {
			fmt.Printf(
				"%sInvalid selection. Please enter 1-%d.%s\n\n",
				colorRed, len(menuItems), colorReset)
			continue
		}

		ctx, cancel := context.WithCancel(context.Background())

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			fmt.Printf(
				"\n%sReceived interrupt, cancelling...%s\n",
				colorYellow, colorReset)
			cancel()
		}()

		item := menuItems[num-1]
		fmt.Printf("\n%sRunning: %s%s\n",
			colorGreen, item.name, colorReset)
		if err := item.run(ctx); err != nil {
			fmt.Fprintf(os.Stderr,
				"%sError: %v%s\n", colorRed, err, colorReset)
		}

		signal.Stop(sigCh)
		cancel()

		fmt.Printf("\n%s%s%s\n\n",
			colorDim, strings.Repeat("-", 60), colorReset)
	}
}

// loadInventory reads the seed file named by SKYWARD_SEED_FILE, falling
// back to the built-in inventory.
func loadInventory() ([]*skyward.Flight, error) {
	path := os.Getenv("SKYWARD_SEED_FILE")
	if path == "" {
		return seed.DefaultInventory(), nil
	}
	flights, err := seed.FromFile(path)
	if err != nil {
		return nil, err
	}
	fmt.Printf("%sLoaded %d flights from %s%s\n",
		colorDim, len(flights), path, colorReset)
	return flights, nil
}

// demoScript is the raw tool-call sequence the scripted demo replays: a
// full booking lifecycle ending with the ledger summary.
var demoScript = []string{
	`{"tool": "search_flights", "args": {"origin": "NYC", "destination": "TYO", "departure_date": "2026-09-15"}}`,
	`{"tool": "check_flight_availability", "args": {"flight_id": "JL005", "passengers": 2}}`,
	`{"tool": "book_flight", "args": {"flight_id": "JL005", "passengers": 2, "cabin_class": "business", "passenger_name": "Alice Chen", "passenger_email": "alice@example.com"}}`,
	`{"tool": "view_booking", "args": {"booking_id": "BK1000"}}`,
	`{"tool": "cancel_booking", "args": {"booking_id": "BK1000", "passenger_email": "alice@example.com"}}`,
	`{"tool": "booking_summary", "args": {}}`,
}

func runDemo(ctx context.Context, registry *dispatch.Registry) error {
	for i, call := range demoScript {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Printf("\n%s--- Step %d ---%s\n",
			colorMagenta, i+1, colorReset)
		fmt.Printf("%s%s%s\n", colorBlue, call, colorReset)

		results, err := registry.Execute(ctx, call)
		if err != nil {
			return fmt.Errorf("demo step %d failed: %w", i+1, err)
		}
		for _, result := range results {
			color := colorGreen
			if result.Err != nil {
				color = colorRed
			}
			fmt.Printf("%s%s%s\n",
				color, prettyJSON(result.Payload()), colorReset)
			if result.Duration > 0 {
				fmt.Printf("%s    Duration: %s%s\n",
					colorDim, result.Duration, colorReset)
			}
		}
	}
	return nil
}

// prettyJSON indents a JSON document for terminal display, returning the
// input unchanged if it does not parse.
func prettyJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return s
	}
	return buf.String()
}

// toolPrinter echoes executed tool calls during the chat so the user can
// see what the model is doing.
type toolPrinter struct{}

func (toolPrinter) OnToolCall(result *dispatch.CallResult) {
	fmt.Printf("%s[Tool: %s]%s\n", colorBlue, result.Name, colorReset)
	if result.Args != nil {
		if args, err := json.Marshal(result.Args); err == nil {
			fmt.Printf("%s    Args: %s%s\n",
				colorDim, args, colorReset)
		}
	}
	if result.Err != nil {
		fmt.Printf("%s    Error: %v%s\n",
			colorRed, result.Err, colorReset)
		return
	}
	fmt.Printf("%s    Output: %s%s\n",
		colorDim, result.Payload(), colorReset)
}

func runInteractiveChat(
	ctx context.Context,
	registry *dispatch.Registry,
) error {
	model, err := createModel()
	if err != nil {
		return err
	}

	registry.Subscribe(toolPrinter{})
	chat := assistant.New(model, registry)

	fmt.Println()
	fmt.Printf("%s%s%s\n",
		colorYellow, strings.Repeat("=", 80), colorReset)
	fmt.Printf("%s%sSKYWARD BOOKING CHAT%s\n",
		colorBold, colorYellow, colorReset)
	fmt.Printf("%s%s%s\n",
		colorYellow, strings.Repeat("=", 80), colorReset)
	fmt.Println()
	fmt.Printf(
		"%sYou are now chatting with the Skyward booking assistant.%s\n",
		colorWhite, colorReset)
	fmt.Printf(
		"%sType your message and press Enter. "+
			"Type 'exit' to end the chat.%s\n",
		colorDim, colorReset)
	fmt.Println()

	rl, err := readline.New(
		colorCyan + colorBold + "You: " + colorReset)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Printf("\n%sChat cancelled.%s\n",
					colorYellow, colorReset)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			fmt.Printf(
				"\n%sEnding chat session. Goodbye!%s\n",
				colorGreen, colorReset)
			return nil
		}

		select {
		case <-ctx.Done():
			fmt.Printf("\n%sChat cancelled.%s\n",
				colorYellow, colorReset)
			return ctx.Err()
		default:
		}

		answer, err := chat.SendMessage(ctx, input)
		if err != nil {
			fmt.Fprintf(os.Stderr,
				"\n%sError processing message: %v%s\n",
				colorRed, err, colorReset)
			continue
		}
		fmt.Printf("%s%sAssistant:%s %s%s%s\n\n",
			colorBold, colorGreen, colorReset,
			colorGreen, answer, colorReset)
	}
}

// createModel builds the chat model from environment configuration.
// SKYWARD_OPENAI_KEY is required; SKYWARD_OPENAI_BASE_URL and
// SKYWARD_OPENAI_MODEL allow pointing at any OpenAI-compatible endpoint.
func createModel() (*openai.LLM, error) {
	key := os.Getenv("SKYWARD_OPENAI_KEY")
	if key == "" {
		return nil, fmt.Errorf(
			"SKYWARD_OPENAI_KEY environment variable is not set")
	}

	opts := []openai.Option{openai.WithToken(key)}
	if baseURL := os.Getenv("SKYWARD_OPENAI_BASE_URL"); baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	if modelName := os.Getenv("SKYWARD_OPENAI_MODEL"); modelName != "" {
		opts = append(opts, openai.WithModel(modelName))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}
	return model, nil
}
