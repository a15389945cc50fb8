package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gordonklaus/portaudio"
	"github.com/joho/godotenv"
	"github.com/lukasbauer/interviewer/internal/app"
	"github.com/lukasbauer/interviewer/internal/llm"
)

func main() {
	_ = godotenv.Load()

	cfg := app.LoadConfigFromEnv()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	// Initialize Sentry for error monitoring
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: getEnvironment(),
		})
		if err != nil {
			logger.Printf("sentry init failed: %v", err)
		} else {
			logger.Printf("sentry initialized")
			defer sentry.Flush(2 * time.Second)
		}
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		fatal(cfg.SentryDSN, logger, "init app: %v", err)
	}
	defer a.Close()

	if err := portaudio.Initialize(); err != nil {
		fatal(cfg.SentryDSN, logger, "init audio: %v", err)
	}
	defer portaudio.Terminate()

	persona, err := a.Persona()
	if err != nil {
		fatal(cfg.SentryDSN, logger, "%v", err)
	}

	difficulty := promptDifficulty(os.Stdin)
	persona = persona + "\n\n" + llm.InterviewDirective(difficulty)

	session, err := a.NewSession(persona, difficulty)
	if err != nil {
		fatal(cfg.SentryDSN, logger, "init session: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Interview is beginning. Say hello!")
	if err := session.Run(ctx); err != nil && ctx.Err() == nil {
		fatal(cfg.SentryDSN, logger, "session %s: %v", session.ID(), err)
	}
}

// promptDifficulty reads a difficulty label from the terminal. Empty input
// falls back to a moderate interview.
func promptDifficulty(in *os.File) string {
	fmt.Print("How hard should this interview be (e.g. easy, moderate, challenging)? ")
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "moderate"
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "moderate"
	}
	return line
}

func fatal(sentryDSN string, logger *log.Logger, format string, args ...any) {
	err := fmt.Errorf(format, args...)
	if sentryDSN != "" {
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
	}
	logger.Fatal(err)
}
