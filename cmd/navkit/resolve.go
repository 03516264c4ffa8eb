package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/vitalvas/navkit/navconfig"
	"github.com/vitalvas/navkit/navmux"
)

type resolveResult struct {
	Target string              `yaml:"target"`
	URL    string              `yaml:"url"`
	Path   string              `yaml:"path"`
	Route  string              `yaml:"route,omitempty"`
	Params map[string]string   `yaml:"params,omitempty"`
	Query  map[string][]string `yaml:"query,omitempty"`
	Error  string              `yaml:"error,omitempty"`
}

func newResolveCmd(root *rootOptions) *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "resolve <target>",
		Short: "Resolve a navigation target against a route manifest",
		Long: `resolve loads a YAML or TOML route manifest, registers its routes on a
router positioned at the manifest origin, and dispatches the target.
The output names the matched route and its parameters, or the error key
the router would hand to its error handlers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath == "" {
				return errors.New("--config is required")
			}

			cfg, err := navconfig.Load(cfgPath)
			if err != nil {
				return err
			}

			result, err := resolve(cmd, cfg, root, args[0])
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "routes.yaml", "route manifest path (.yaml, .yml or .toml)")

	return cmd
}

func resolve(cmd *cobra.Command, cfg *navconfig.Config, root *rootOptions, target string) (*resolveResult, error) {
	history, err := cfg.History()
	if err != nil {
		return nil, err
	}

	opts := append([]navmux.Option{
		navmux.WithHistory(history),
		navmux.WithLogger(root.logger(cmd.ErrOrStderr())),
	}, cfg.RouterOptions()...)
	r := navmux.New(opts...)

	result := &resolveResult{Target: target}

	matched := navmux.HandlerFunc(func(req *navmux.Request, _ *navmux.Response, _ navmux.Next) error {
		result.Route = req.Route().Template()
		result.Params = req.Params
		return nil
	})
	for _, tpl := range cfg.Routes {
		if err := r.Get(tpl, matched); err != nil {
			return nil, err
		}
	}

	r.HandleError(navmux.KeyDefault, func(err any, _ *navmux.Request, _ *navmux.Response) {
		result.Error = navmux.ErrorKey(err)
	})

	res, err := r.Dispatch(cmd.Context(), target, nil)
	if err != nil {
		return nil, err
	}

	req := res.Request()
	result.URL = req.URL.String()
	result.Path = req.Path
	if len(req.Query) > 0 {
		result.Query = req.Query
	}
	return result, nil
}
