package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/di"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	assistant := color.New(color.FgGreen)
	banner := color.New(color.FgCyan, color.Bold)

	onChunk := func(chunk output.StreamChunk) {
		if chunk.Content != "" {
			assistant.Print(chunk.Content)
		}
		if chunk.Done {
			fmt.Println()
		}
	}

	container, err := di.NewContainer(ctx, onChunk)
	if err != nil {
		return err
	}
	defer container.Close()

	// One thread per process run; history accumulates across turns.
	threadID := uuid.NewString()

	banner.Println("Leave-request assistant. Describe what you need; 'exit' to quit.")
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("\nyou> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return nil
		}
		task := strings.TrimSpace(line)
		if task == "" {
			continue
		}
		switch strings.ToLower(task) {
		case "exit", "quit", "bye":
			banner.Println("Goodbye.")
			return nil
		}

		result, err := container.Executor.Execute(ctx, threadID, task)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			color.Red("turn failed: %v", err)
			continue
		}
		// The streaming callback already printed the answer.
		container.Logger.Debug("turn complete", "iterations", result.Iterations)
	}
}
