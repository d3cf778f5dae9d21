package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		section  int
		renderer string
		output   string
	)
	cmd := &cobra.Command{
		Use:   "render <form.json>",
		Short: "Render one section of a local form document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read form: %w", err)
			}
			form, err := formflow.DecodeForm(body)
			if err != nil {
				return err
			}
			if section < 1 || section > len(form.Sections) {
				return fmt.Errorf("section %d out of range (form has %d)", section, len(form.Sections))
			}

			reg, err := formflow.NewRendererRegistry(formflow.RendererOptions{
				HTML: a.htmlOptions(),
				TUI:  []tui.Option{tui.WithStyles(tui.PlainStyles())},
			})
			if err != nil {
				return err
			}
			r, err := reg.Resolve(renderer)
			if err != nil {
				return err
			}
			themeCfg, err := a.theme()
			if err != nil {
				return err
			}
			out, err := r.RenderSection(cmd.Context(), form, render.RenderOptions{
				Index:  section - 1,
				Values: model.NewValues(form),
				Action: "/form",
				Theme:  themeCfg,
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Section %d written to %s\n", section, output)
			return nil
		},
	}
	cmd.Flags().IntVar(&section, "section", 1, "section number, starting at 1")
	cmd.Flags().StringVar(&renderer, "renderer", "html", "renderer name (html, tui)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
