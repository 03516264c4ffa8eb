package main

import (
	"github.com/spf13/cobra"
	"github.com/vitalvas/navkit/navmux"
)

type matchResult struct {
	Matched bool              `yaml:"matched"`
	Params  map[string]string `yaml:"params,omitempty"`
}

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <template> <path>",
		Short: "Match a dispatch path against a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := navmux.TemplateKey(args[0])
			if err != nil {
				return err
			}

			m, err := navmux.Compile(key)
			if err != nil {
				return err
			}

			params, ok := m.Params(args[1])
			return writeYAML(cmd.OutOrStdout(), matchResult{Matched: ok, Params: params})
		},
	}
}
