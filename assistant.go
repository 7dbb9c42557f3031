package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexjean/devify/internal/assistant"
	"github.com/alexjean/devify/internal/catalog"
	"github.com/spf13/cobra"
)

func newAskCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the portfolio assistant a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			gen, _, err := newAI(cmd.Context(), cfg, ctx.logger)
			if err != nil {
				return err
			}

			adapter := assistant.NewQueryAdapter(gen, catalog.Default(), ctx.logger,
				assistant.WithTimeout(cfg.AI.Timeout))
			answer := adapter.Ask(cmd.Context(), strings.Join(args, " "))
			if answer.Skipped {
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer.Text)
			return nil
		},
	}
}

func newGreetCommand(ctx *commandContext) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "greet",
		Short: "Synthesize the spoken greeting into a WAV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			_, synth, err := newAI(cmd.Context(), cfg, ctx.logger)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}

			greeter := assistant.NewGreeter(synth, ctx.logger,
				assistant.WithTimeout(cfg.AI.Timeout),
				assistant.WithVoice(cfg.AI.Voice))
			player := assistant.WAVPlayer{
				W: f,
				Before: func(clip *assistant.Clip) {
					fmt.Fprintf(cmd.OutOrStdout(), "Writing %s (%s)\n", out, clip.Duration())
				},
			}
			greetErr := greeter.Greet(cmd.Context(), player)
			closeErr := f.Close()
			if greetErr != nil {
				os.Remove(out)
				return greetErr
			}
			return closeErr
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "greeting.wav", "Output WAV file")
	return cmd
}
