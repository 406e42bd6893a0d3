package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/karvel/templnet/pkg/uritemplate"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	expandBase       string
	expandParams     []string
	expandParamsFile string
	expandJSON       bool
)

var expandCmd = &cobra.Command{
	Use:   "expand TEMPLATE",
	Short: "Expand a URI template with parameter values",
	Long: `Expand parses TEMPLATE and substitutes parameter values into it.

Values come from repeated --param key=value flags and/or a YAML or JSON
file given with --params-file; a --param flag overrides the same key from
the file. Parameters the template references but that are not bound are
omitted from the result.`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().StringVar(&expandBase, "base", "", "Absolute base URL to resolve against")
	expandCmd.Flags().StringArrayVarP(&expandParams, "param", "p", nil, "Parameter binding as key=value (repeatable)")
	expandCmd.Flags().StringVar(&expandParamsFile, "params-file", "", "YAML or JSON file with parameter bindings")
	expandCmd.Flags().BoolVar(&expandJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(expandCmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
	params := make(map[string]string)

	if expandParamsFile != "" {
		fileParams, err := loadParamsFile(expandParamsFile)
		if err != nil {
			return err
		}
		for k, v := range fileParams {
			params[k] = v
		}
	}

	for _, kv := range expandParams {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			return fmt.Errorf("invalid --param %q: expected key=value", kv)
		}
		params[key] = value
	}

	var base *url.URL
	if expandBase != "" {
		u, err := url.Parse(expandBase)
		if err != nil {
			return fmt.Errorf("invalid --base %q: %w", expandBase, err)
		}
		base = u
	}

	tpl, err := uritemplate.Parse(args[0])
	if err != nil {
		return err
	}

	u, err := tpl.Populate(base, params)
	if err != nil {
		return err
	}

	if expandJSON {
		type expandResult struct {
			Template   string   `json:"template"`
			Parameters []string `json:"parameters"`
			URI        string   `json:"uri"`
		}
		data, err := sonic.MarshalIndent(expandResult{
			Template:   tpl.Raw(),
			Parameters: tpl.Parameters(),
			URI:        u.String(),
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), u.String())
	return nil
}

// loadParamsFile reads parameter bindings from a YAML or JSON file, chosen
// by file extension.
func loadParamsFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	params := make(map[string]string)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &params); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".json":
		if err := sonic.Unmarshal(data, &params); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported params file extension %q (want .yaml, .yml or .json)", ext)
	}
	return params, nil
}
