package cmd

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func init() {
	RegisterCommand(&Command{
		Name:  "config",
		Short: "Validate and print the layout",
		Long: `Load the layout (--config FILE, ./tapdemo.yaml, or the built-in default),
validate it and print it with defaults applied.`,
		Usage: "tapdemo config",
		Run:   runConfig,
	})
}

func runConfig(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument %q", args[0])
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, string(out))
	fmt.Fprintf(stdout, "# OK: %d surfaces\n", len(cfg.Surfaces))
	return nil
}
