package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	formflow "github.com/goliatone/go-formflow"
)

var errCheckFailed = errors.New("one or more forms failed the check")

func newCheckCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <form.json>...",
		Short: "Validate local form documents against the form contract",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := false
			for _, path := range args {
				form, err := checkFile(path)
				if err != nil {
					failed = true
					fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
					continue
				}
				fields := 0
				for _, section := range form.Sections {
					fields += len(section.Fields)
				}
				fmt.Fprintf(out, "ok   %s (%d sections, %d fields)\n", path, len(form.Sections), fields)
			}
			if failed {
				return errCheckFailed
			}
			return nil
		},
	}
}

func checkFile(path string) (formflow.FormStructure, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return formflow.FormStructure{}, err
	}
	return formflow.DecodeForm(body)
}
