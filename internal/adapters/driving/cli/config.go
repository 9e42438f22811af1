package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smohring/contao-cearch-pro/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a single setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Changes a setting and persists it immediately.

Known keys:
  index.data_dir         directory holding the SQLite index
  index.languages        stopword languages, comma separated (de, en)
  search.max_distance    default edit distance for fuzzy search
  search.default_limit   default result limit
  verbose                always enable verbose output`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Printf("Configuration file: %s\n", configStore.Path())
	cmd.Println()
	cmd.Println("[Index]")
	cmd.Printf("  Data dir: %s\n", orDefault(configStore.GetString(file.KeyDataDir), "~/.cearch/data"))
	languages := configStore.GetStringSlice(file.KeyLanguages)
	if len(languages) == 0 {
		languages = []string{"de", "en"}
	}
	cmd.Printf("  Languages: %s\n", strings.Join(languages, ", "))
	cmd.Println()
	cmd.Println("[Search]")
	cmd.Printf("  Max distance: %d\n", orDefaultInt(configStore.GetInt(file.KeyMaxDistance), 2))
	if limit := configStore.GetInt(file.KeyDefaultLimit); limit > 0 {
		cmd.Printf("  Default limit: %d\n", limit)
	} else {
		cmd.Printf("  Default limit: unlimited\n")
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	val, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown or unset key %q", args[0])
	}
	cmd.Printf("%v\n", val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	var value any = raw
	switch key {
	case file.KeyLanguages, file.KeyTransforms:
		value = strings.Split(raw, ",")
	case file.KeyMaxDistance, file.KeyDefaultLimit:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s expects a number: %w", key, err)
		}
		value = n
	case file.KeyVerbose:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s expects true or false: %w", key, err)
		}
		value = b
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}
	cmd.Printf("Set %s = %s\n", key, raw)
	return nil
}

func orDefault(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}

func orDefaultInt(val, fallback int) int {
	if val == 0 {
		return fallback
	}
	return val
}
