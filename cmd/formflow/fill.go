package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/session"
)

func newFillCmd(a *app, extra ...tui.Option) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Log in and fill the form in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := append([]tui.Option{
				tui.WithOutput(cmd.ErrOrStderr()),
				tui.WithLogger(a.logger),
			}, extra...)
			if plain {
				opts = append(opts, tui.WithStyles(tui.PlainStyles()))
			}
			renderer, err := tui.New(opts...)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			flow := session.NewFlow(a.client(), session.WithFlowLogger(a.logger))
			state, err := renderer.Login(ctx, flow)
			if err != nil {
				return err
			}

			ctrl, err := controller.New(*state.Form,
				controller.WithSink(a.sink()),
				controller.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			submission, err := renderer.Fill(ctx, ctrl)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(submission.Payload()); err != nil {
				return fmt.Errorf("write submission: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors")
	return cmd
}
