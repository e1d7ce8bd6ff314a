package cmd

import (
	"errors"
	"fmt"

	"github.com/brogergvhs/mangascraper/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// completeLabels offers existing profile labels for the first argument.
func completeLabels(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	list, err := config.ListConfigs()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	labels := make([]string, 0, len(list))
	for _, c := range list {
		labels = append(labels, c.Label)
	}

	return labels, cobra.ShellCompDirectiveNoFileComp
}

// pickProfile lets the user choose a profile, starting on the active one.
func pickProfile(label string) (string, error) {
	list, err := config.ListConfigs()
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", errors.New("no configs yet, run `mangascraper config init` first")
	}

	items := make([]string, 0, len(list))
	cursor := 0
	for i, c := range list {
		if c.Active {
			cursor = i
			items = append(items, c.Label+"  (active)")
			continue
		}
		items = append(items, c.Label)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     items,
		CursorPos: cursor,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", errors.New("selection cancelled")
	}

	return list[idx].Label, nil
}

var configSwitchCmd = &cobra.Command{
	Use:               "switch [label]",
	Short:             "Make another config profile active",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeLabels,
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string
		if len(args) == 1 {
			label = args[0]
		} else {
			var err error
			if label, err = pickProfile("Switch to config"); err != nil {
				return err
			}
		}

		if active, _ := config.CurrentLabel(); active == label {
			fmt.Printf("%s is already active\n", label)
			return nil
		}

		if err := config.SwitchConfig(label); err != nil {
			return err
		}

		fmt.Println("Switched to:", label)
		return nil
	},
}

var configRenameCmd = &cobra.Command{
	Use:               "rename <label> [new_label]",
	Short:             "Rename a config profile, asking for the new name if it is not given",
	Args:              cobra.RangeArgs(1, 2),
	ValidArgsFunction: completeLabels,
	RunE: func(cmd *cobra.Command, args []string) error {
		oldLabel := args[0]
		if _, err := config.ConfigPathByLabel(oldLabel); err != nil {
			return err
		}

		var newLabel string
		if len(args) == 2 {
			newLabel = args[1]
		} else {
			prompt := promptui.Prompt{
				Label:    fmt.Sprintf("New name for %s", oldLabel),
				Validate: config.CheckLabel,
			}

			var err error
			if newLabel, err = prompt.Run(); err != nil {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := config.RenameConfig(oldLabel, newLabel); err != nil {
			return err
		}

		fmt.Printf("Renamed config %q to %q\n", oldLabel, newLabel)
		if active, _ := config.CurrentLabel(); active == newLabel {
			fmt.Println("It is still the active config.")
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSwitchCmd, configRenameCmd)
	configRemoveCmd.ValidArgsFunction = completeLabels
	configEditCmd.ValidArgsFunction = completeLabels
}
