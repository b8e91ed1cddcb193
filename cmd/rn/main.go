package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"rn-go/internal/app"
	"rn-go/internal/config"
	"rn-go/internal/rename"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "Apply", "Export").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// reportReceipt prints the outcome of a commit, including the non-blocking
// ledger notice when the rename applied but the debit or history write
// failed.
func reportReceipt(receipt *rename.CommitReceipt, files int) {
	if !receipt.Applied {
		fmt.Println("Nothing to do: batch is empty or no rule is active.")
		return
	}
	fmt.Printf("Renamed %d file(s), %d credit(s) used, %d remaining\n", files, receipt.Debited, receipt.Balance)
	if receipt.LedgerErr != nil {
		fmt.Fprintf(os.Stderr, "warning: rename applied but ledger update failed: %v\n", receipt.LedgerErr)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rn",
	Short: "Batch file renamer with credit-metered commits",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Generate a new user ID
		userID := uuid.New().String()

		cfg := config.NewConfig(userID, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("User ID:  %s\n", userID)
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("User ID:  %s\n", cfg.UserID)
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:  %s\n", cfg.LogDir)
		fmt.Printf("Database: %s\n", cfg.Database.Type)
		fmt.Printf("Sink:     %s\n", cfg.Sink.Type)
		return nil
	},
}

// files command
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage the batch",
}

var filesAddCmd = &cobra.Command{
	Use:   "add PATH...",
	Short: "Add files to the batch",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AddFiles")
		if err != nil {
			return err
		}
		defer a.Close()

		count, err := a.AddFiles(args)
		if err != nil {
			return fmt.Errorf("adding files: %w", err)
		}

		fmt.Printf("Added %d file(s), batch now holds %d\n", count, len(a.Files()))
		return nil
	},
}

var filesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List batch files",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListFiles")
		if err != nil {
			return err
		}
		defer a.Close()

		files := a.Files()
		if len(files) == 0 {
			fmt.Println("Batch is empty.")
			return nil
		}

		for _, f := range files {
			marker := " "
			if f.CurrentName != f.OriginalName {
				marker = "*"
			}
			fmt.Printf("%s %-12s  %-40s  %d bytes\n", marker, f.ID[:8], f.CurrentName, f.Size)
		}
		if a.ExportReady() {
			fmt.Println("\nExport is ready.")
		}
		return nil
	},
}

var filesRmCmd = &cobra.Command{
	Use:   "rm FILE_ID",
	Short: "Remove a file from the batch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RemoveFile")
		if err != nil {
			return err
		}
		defer a.Close()

		a.RemoveFile(resolveFileID(a, args[0]))
		fmt.Printf("Batch now holds %d file(s)\n", len(a.Files()))
		return nil
	},
}

var filesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ClearBatch")
		if err != nil {
			return err
		}
		defer a.Close()

		a.ClearBatch()
		fmt.Println("Batch cleared.")
		return nil
	},
}

// resolveFileID allows the short id prefix shown by `files list`.
func resolveFileID(a *app.App, arg string) string {
	for _, f := range a.Files() {
		if f.ID == arg || strings.HasPrefix(f.ID, arg) {
			return f.ID
		}
	}
	return arg
}

// resolveRuleID allows a short id prefix or a one-based position.
func resolveRuleID(rules rename.RuleSet, arg string) string {
	list := rules.Rules()
	for i, r := range list {
		if r.ID == arg || strings.HasPrefix(r.ID, arg) || fmt.Sprintf("%d", i+1) == arg {
			return r.ID
		}
	}
	return arg
}

// rule command
var ruleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage rename rules",
}

var ruleAddCmd = &cobra.Command{
	Use:   "add KIND",
	Short: "Append a rule (prefix, suffix, replace, numbering, date)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AddRule")
		if err != nil {
			return err
		}
		defer a.Close()

		r, err := a.AddRule(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Added %s rule at position %d (id %s)\n", r.Kind, a.Rules().Position(r.ID), r.ID[:8])
		return nil
	},
}

var ruleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rules in application order",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListRules")
		if err != nil {
			return err
		}
		defer a.Close()

		rules := a.Rules().Rules()
		if len(rules) == 0 {
			fmt.Println("No rules defined.")
			return nil
		}

		for i, r := range rules {
			state := " "
			if !r.Active {
				state = "-"
			}
			fmt.Printf("%s %2d. %-10s %-12s %s\n", state, i+1, r.Kind, r.ID[:8], describeRule(r))
		}
		return nil
	},
}

// describeRule renders the settings that matter for the rule's kind.
func describeRule(r rename.Rule) string {
	c := r.Config
	switch r.Kind {
	case rename.KindPrefix, rename.KindSuffix:
		return fmt.Sprintf("text=%q", c.Text)
	case rename.KindReplace:
		return fmt.Sprintf("search=%q replacement=%q", c.Search, c.Replacement)
	case rename.KindNumbering:
		return fmt.Sprintf("start=%d step=%d digits=%d", c.Start, c.Step, c.Digits)
	case rename.KindDate:
		return fmt.Sprintf("format=%q position=%s", c.Format, c.Position)
	}
	return ""
}

var ruleSetCmd = &cobra.Command{
	Use:   "set RULE KEY VALUE",
	Short: "Set a rule option (text, search, replacement, start, step, digits, format, position)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SetRuleOption")
		if err != nil {
			return err
		}
		defer a.Close()

		id := resolveRuleID(a.Rules(), args[0])
		if err := a.SetRuleOption(id, args[1], args[2]); err != nil {
			return err
		}
		fmt.Println("Rule updated.")
		return nil
	},
}

var ruleMvCmd = &cobra.Command{
	Use:   "mv RULE up|down",
	Short: "Move a rule within the order",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("MoveRule")
		if err != nil {
			return err
		}
		defer a.Close()

		id := resolveRuleID(a.Rules(), args[0])
		if err := a.MoveRule(id, args[1]); err != nil {
			return err
		}
		fmt.Printf("Rule now at position %d\n", a.Rules().Position(id))
		return nil
	},
}

var ruleToggleCmd = &cobra.Command{
	Use:   "toggle RULE",
	Short: "Activate or deactivate a rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ToggleRule")
		if err != nil {
			return err
		}
		defer a.Close()

		a.ToggleRule(resolveRuleID(a.Rules(), args[0]))
		fmt.Println("Rule toggled.")
		return nil
	},
}

var ruleRmCmd = &cobra.Command{
	Use:   "rm RULE",
	Short: "Remove a rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RemoveRule")
		if err != nil {
			return err
		}
		defer a.Close()

		a.RemoveRule(resolveRuleID(a.Rules(), args[0]))
		fmt.Printf("%d rule(s) remain\n", a.Rules().Len())
		return nil
	},
}

// apply command
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Rename the batch (consumes one credit per file)",
	RunE: func(cmd *cobra.Command, args []string) error {
		presetName, _ := cmd.Flags().GetString("preset")

		a, err := newApp("Apply")
		if err != nil {
			return err
		}
		defer a.Close()

		var receipt *rename.CommitReceipt
		if presetName != "" {
			receipt, err = a.ApplyPreset(presetName)
		} else {
			receipt, err = a.Apply()
		}
		if err != nil {
			var insufficient *rename.InsufficientCreditsError
			if errors.As(err, &insufficient) {
				return fmt.Errorf("insufficient credits: you need %d, have %d", insufficient.Required, insufficient.Balance)
			}
			return err
		}

		reportReceipt(receipt, len(a.Files()))
		return nil
	},
}

// preset command
var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage rule presets",
}

var presetSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save the current rules as a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SavePreset")
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.SavePreset(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Preset %q saved (%d rules, id %s)\n", p.Name, p.Rules.Len(), p.ID[:8])
		return nil
	},
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListPresets")
		if err != nil {
			return err
		}
		defer a.Close()

		presets, err := a.ListPresets()
		if err != nil {
			return err
		}

		if len(presets) == 0 {
			fmt.Println("No presets saved.")
			return nil
		}

		for _, p := range presets {
			fmt.Printf("%-12s  %-24s  %d rule(s)\n", p.ID[:8], p.Name, p.Rules.Len())
		}
		return nil
	},
}

var presetRmCmd = &cobra.Command{
	Use:   "rm PRESET_ID",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeletePreset")
		if err != nil {
			return err
		}
		defer a.Close()

		presets, err := a.ListPresets()
		if err != nil {
			return err
		}
		id := args[0]
		for _, p := range presets {
			if p.ID == id || strings.HasPrefix(p.ID, id) || p.Name == id {
				id = p.ID
				break
			}
		}

		if err := a.DeletePreset(id); err != nil {
			return err
		}
		fmt.Println("Preset deleted.")
		return nil
	},
}

// export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the renamed batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Export")
		if err != nil {
			return err
		}
		defer a.Close()

		name, err := a.Export(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Exported %s\n", name)
		return nil
	},
}

// credits command
var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Manage the credit balance",
}

var creditsBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the credit balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Balance")
		if err != nil {
			return err
		}
		defer a.Close()

		balance, err := a.Balance()
		if err != nil {
			return err
		}

		fmt.Printf("Balance: %d credit(s)\n", balance)
		return nil
	},
}

var creditsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show credit movements, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("History")
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.History()
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No credit history.")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%s  %+5d  %s\n", e.UsedAt.Format("2006-01-02 15:04:05"), e.Amount, e.Reason)
		}
		return nil
	},
}

var creditsRedeemCmd = &cobra.Command{
	Use:   "redeem [CODE]",
	Short: "Redeem a voucher code",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Redeem")
		if err != nil {
			return err
		}
		defer a.Close()

		var code string
		if len(args) == 1 {
			code = args[0]
		} else {
			code, err = promptVoucher()
			if err != nil {
				return err
			}
		}

		balance, err := a.Redeem(code)
		if err != nil {
			return err
		}

		fmt.Printf("Voucher accepted. Balance: %d credit(s)\n", balance)
		return nil
	},
}

// promptVoucher reads a voucher code without echoing it on a terminal,
// falling back to a plain line read for piped input.
func promptVoucher() (string, error) {
	fmt.Fprint(os.Stderr, "Voucher code: ")
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading voucher code: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading voucher code: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// files subcommands
	filesCmd.AddCommand(filesAddCmd)
	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesRmCmd)
	filesCmd.AddCommand(filesClearCmd)

	// rule subcommands
	ruleCmd.AddCommand(ruleAddCmd)
	ruleCmd.AddCommand(ruleListCmd)
	ruleCmd.AddCommand(ruleSetCmd)
	ruleCmd.AddCommand(ruleMvCmd)
	ruleCmd.AddCommand(ruleToggleCmd)
	ruleCmd.AddCommand(ruleRmCmd)

	// preset subcommands
	presetCmd.AddCommand(presetSaveCmd)
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetRmCmd)

	// credits subcommands
	creditsCmd.AddCommand(creditsBalanceCmd)
	creditsCmd.AddCommand(creditsHistoryCmd)
	creditsCmd.AddCommand(creditsRedeemCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(ruleCmd)
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringP("preset", "p", "", "Apply a saved preset instead of the live rules")
	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(creditsCmd)
}
