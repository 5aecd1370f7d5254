package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/kanacards/internal"
	"codeberg.org/snonux/kanacards/internal/script"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kanacards [category...]",
		Short: "Japanese kana flash cards",
		Long: `kanacards shows Japanese words as flash cards, one slot per character.

Tap a character to cycle it between katakana, hiragana and romaji, tap the
card background to switch every character at once, and hold the card to
move on to the next word. Words come from a shared sheet, a local deck file
or the offline cache of the last download.

Examples:
  kanacards                        # Launch the GUI and pick categories from the menu
  kanacards animals food           # Start with two categories selected
  kanacards --terminal animals     # Use the terminal front end
  kanacards --deck words.txt       # Study a local word list
  kanacards --list-categories      # Print the deck's categories and exit`,
		Args:    cobra.ArbitraryArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

// DefaultCachePath returns where the offline deck cache lives
func DefaultCachePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "kanacards", "deck.db")
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.kanacards.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn or error")

	// Local flags
	cmd.Flags().BoolVarP(&flags.Terminal, "terminal", "t", false, "Use the terminal front end instead of the GUI")
	cmd.Flags().BoolVar(&flags.ListCategories, "list-categories", false, "Print the deck's categories and exit")
	cmd.Flags().BoolVar(&flags.ExportDeck, "export-deck", false, "Print the deck as JSON and exit")
	cmd.Flags().BoolVar(&flags.ArchiveCache, "archive-cache", false, "Move the offline cache aside before loading the deck")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List OpenAI chat models usable for meaning lookups and exit")

	// Deck flags
	cmd.Flags().StringVarP(&flags.DeckFile, "deck", "d", "", "Load words from a local file (.json, .yaml or plain text)")
	cmd.Flags().StringVar(&flags.Endpoint, "endpoint", flags.Endpoint, "URL of the JSON word sheet")
	cmd.Flags().StringVar(&flags.CachePath, "cache", DefaultCachePath(), "Offline deck cache database")
	cmd.Flags().BoolVar(&flags.Offline, "offline", false, "Do not contact the endpoint, use the cache only")

	// Card flags
	cmd.Flags().StringSliceVar(&flags.Modes, "modes", flags.Modes, "Scripts a character cycles through, in order")
	cmd.Flags().DurationVar(&flags.LongPress, "long-press", flags.LongPress, "How long to hold the card for the next word")
	cmd.Flags().DurationVar(&flags.MenuTimeout, "menu-timeout", flags.MenuTimeout, "Hide the category menu after this much inactivity")
	cmd.Flags().Int64Var(&flags.Seed, "seed", 0, "Shuffle seed (0 picks a random one)")

	// Meaning lookup flags
	cmd.Flags().StringVar(&flags.MeaningModel, "meaning-model", flags.MeaningModel, "OpenAI chat model for meaning lookups")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("ui.terminal", cmd.Flags().Lookup("terminal"))
	viper.BindPFlag("deck.file", cmd.Flags().Lookup("deck"))
	viper.BindPFlag("deck.endpoint", cmd.Flags().Lookup("endpoint"))
	viper.BindPFlag("deck.cache", cmd.Flags().Lookup("cache"))
	viper.BindPFlag("deck.offline", cmd.Flags().Lookup("offline"))
	viper.BindPFlag("card.modes", cmd.Flags().Lookup("modes"))
	viper.BindPFlag("card.long_press", cmd.Flags().Lookup("long-press"))
	viper.BindPFlag("menu.timeout", cmd.Flags().Lookup("menu-timeout"))
	viper.BindPFlag("study.seed", cmd.Flags().Lookup("seed"))
	viper.BindPFlag("meaning.model", cmd.Flags().Lookup("meaning-model"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".kanacards" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".kanacards")
	}

	// Environment variables
	viper.SetEnvPrefix("KANACARDS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// ResolveFlags copies the effective configuration back into flags. An
// explicitly set flag wins over the environment, which wins over the config
// file, which wins over the flag default.
func ResolveFlags(flags *Flags) error {
	flags.LogLevel = viper.GetString("log.level")
	flags.Terminal = viper.GetBool("ui.terminal")
	flags.DeckFile = viper.GetString("deck.file")
	flags.Endpoint = viper.GetString("deck.endpoint")
	flags.CachePath = viper.GetString("deck.cache")
	flags.Offline = viper.GetBool("deck.offline")
	flags.Modes = viper.GetStringSlice("card.modes")
	flags.LongPress = viper.GetDuration("card.long_press")
	flags.MenuTimeout = viper.GetDuration("menu.timeout")
	flags.Seed = viper.GetInt64("study.seed")
	flags.MeaningModel = viper.GetString("meaning.model")

	if _, err := ParseLogLevel(flags.LogLevel); err != nil {
		return err
	}
	if _, err := script.ParseModes(flags.Modes); err != nil {
		return fmt.Errorf("invalid --modes: %w", err)
	}
	if flags.LongPress <= 0 {
		return fmt.Errorf("invalid --long-press %v: must be positive", flags.LongPress)
	}
	if flags.MenuTimeout <= 0 {
		return fmt.Errorf("invalid --menu-timeout %v: must be positive", flags.MenuTimeout)
	}

	return nil
}

// ParseLogLevel maps a level name to a slog level
func ParseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("meaning.openai_key")
}
