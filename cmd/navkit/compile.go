package main

import (
	"github.com/spf13/cobra"
	"github.com/vitalvas/navkit/navmux"
)

type compileResult struct {
	Template string   `yaml:"template"`
	Key      string   `yaml:"key"`
	Regexp   string   `yaml:"regexp"`
	Params   []string `yaml:"params"`
}

func newCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile <template>",
		Short: "Print the regular expression and parameter names of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := navmux.TemplateKey(args[0])
			if err != nil {
				return err
			}

			m, err := navmux.Compile(key)
			if err != nil {
				return err
			}

			params := make([]string, 0, len(m.Names()))
			for _, name := range m.Names() {
				if name != "" {
					params = append(params, name)
				}
			}

			return writeYAML(cmd.OutOrStdout(), compileResult{
				Template: args[0],
				Key:      key,
				Regexp:   m.String(),
				Params:   params,
			})
		},
	}
}
