package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wordduel/wordduel/internal/client"
	"github.com/wordduel/wordduel/internal/config"
	"github.com/wordduel/wordduel/internal/engine"
)

// ANSI backgrounds for the three settled feedback categories; blank cells
// stay uncolored. These mirror the green/yellow/red scheme of the web grid.
const (
	colorCorrect = "\033[42;30m"
	colorPresent = "\033[43;30m"
	colorAbsent  = "\033[41;30m"
	colorReset   = "\033[0m"
)

func main() {
	cfg := config.LoadClient()
	// Keep the board readable: only warnings and up unless asked otherwise.
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "warn")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	stdin := bufio.NewScanner(os.Stdin)
	name := cfg.PlayerName
	for name == "" {
		fmt.Print("Your name: ")
		if !stdin.Scan() {
			return
		}
		name = strings.TrimSpace(stdin.Text())
	}

	c, err := client.New(cfg.ServerURL, name)
	if err != nil {
		log.Fatal().Err(err).Msg("bad client configuration")
	}

	keys := make(chan string)
	go readKeys(stdin, keys)
	go renderLoop(c)

	fmt.Printf("Hello %s, finding you an opponent...\n", name)
	if err := c.Run(context.Background(), keys); err != nil {
		fmt.Println("\nConnection lost. The match cannot continue.")
		log.Fatal().Err(err).Msg("client exited")
	}
}

// readKeys turns each entered line into a series of key presses followed by
// enter, so typing "crane" and hitting return plays the whole guess. The
// input gate drops anything that is not valid in the current state.
func readKeys(stdin *bufio.Scanner, keys chan<- string) {
	for stdin.Scan() {
		line := strings.TrimSpace(stdin.Text())
		for _, r := range line {
			keys <- string(r)
		}
		keys <- client.KeyEnter
	}
	close(keys)
}

func renderLoop(c *client.Client) {
	for range c.Updates() {
		state, _, ok := c.Store().Snapshot()
		if !ok {
			continue
		}
		render(c, state)
	}
}

func render(c *client.Client, state engine.State) {
	me := c.Session().PlayerID()
	fmt.Println()
	for _, id := range state.PlayerIDs {
		label := state.PlayerNames[id]
		if id == me {
			label += " (you)"
		}
		fmt.Println(label)
		printBoard(client.BoardFor(state, id))
	}

	switch {
	case !state.GameOver:
		fmt.Println("Type a five-letter word and press return.")
	case state.Winner == me:
		fmt.Printf("You won! Your word was %q.\n", state.SecretWords[me])
	case state.Winner != "":
		fmt.Printf("%s won. Your word was %q.\n", state.PlayerNames[state.Winner], state.SecretWords[me])
	default:
		fmt.Printf("Draw. Your word was %q.\n", state.SecretWords[me])
	}
}

func printBoard(b client.Board) {
	for row := 0; row < engine.MaxGuesses; row++ {
		for col := 0; col < engine.WordLength; col++ {
			cell := b[row][col]
			ch := byte(' ')
			if cell.Char != 0 {
				ch = cell.Char
			}
			fmt.Printf("%s %c %s", colorFor(cell.Feedback), ch, colorReset)
		}
		fmt.Println()
	}
}

func colorFor(f engine.Feedback) string {
	switch f {
	case engine.FeedbackCorrect:
		return colorCorrect
	case engine.FeedbackPresent:
		return colorPresent
	case engine.FeedbackAbsent:
		return colorAbsent
	default:
		return ""
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
