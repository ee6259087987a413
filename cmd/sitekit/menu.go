package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/helixml/sitekit"
	"github.com/helixml/sitekit/domain/navigation"
)

func menuCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Inspect and edit the navigation menus",
	}
	cmd.AddCommand(menuTreeCmd(flags))
	cmd.AddCommand(menuValidateCmd(flags))
	cmd.AddCommand(menuMoveCmd(flags))
	cmd.AddCommand(menuActivateCmd(flags))
	cmd.AddCommand(menuDeactivateCmd(flags))
	cmd.AddCommand(menuDeleteCmd(flags))
	return cmd
}

func menuTreeCmd(flags *globalFlags) *cobra.Command {
	var location string
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the menu forest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			locations := navigation.Locations()
			if location != "" {
				l, err := navigation.ParseLocation(location)
				if err != nil {
					return err
				}
				locations = []navigation.Location{l}
			}
			return run(cmd, flags, "menu.tree", func(ctx context.Context, client *sitekit.Client, _ *slog.Logger) error {
				out := cmd.OutOrStdout()
				for _, l := range locations {
					tree, err := client.Navigation.Tree(ctx, l)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "[%s]\n", l)
					printNodes(out, tree, 1)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "Only this location (header or footer)")
	return cmd
}

func printNodes(w io.Writer, nodes []navigation.Node, depth int) {
	for _, n := range nodes {
		item := n.Item
		state := ""
		if !item.IsActive() {
			state = " (inactive)"
		}
		fmt.Fprintf(w, "%s%d. %s / %s  %s  [%s]%s\n",
			strings.Repeat("  ", depth), item.SortOrder(),
			item.Label().Primary(), item.Label().Secondary(), item.Path(), item.ID(), state)
		printNodes(w, n.Children, depth+1)
	}
}

func menuValidateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the menu table for broken invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "menu.validate", func(ctx context.Context, client *sitekit.Client, logger *slog.Logger) error {
				violations, err := client.Navigation.Validate(ctx)
				if err != nil {
					return err
				}
				for _, v := range violations {
					fmt.Fprintln(cmd.OutOrStdout(), v.String())
				}
				if len(violations) > 0 {
					return fmt.Errorf("menu table has %d violation(s)", len(violations))
				}
				logger.InfoContext(ctx, "menu table is consistent")
				return nil
			})
		},
	}
}

func menuMoveCmd(flags *globalFlags) *cobra.Command {
	var parent string
	var root bool
	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move a menu item under another parent, or to the root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (parent == "") == !root {
				return errors.New("exactly one of --parent and --root is required")
			}
			var parentID *string
			if !root {
				parentID = &parent
			}
			return run(cmd, flags, "menu.move", func(ctx context.Context, client *sitekit.Client, _ *slog.Logger) error {
				moved, err := client.Navigation.Reparent(ctx, args[0], parentID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "moved %s to sort order %d\n", moved.ID(), moved.SortOrder())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "New parent item ID")
	cmd.Flags().BoolVar(&root, "root", false, "Make the item a root")
	return cmd
}

func menuActivateCmd(flags *globalFlags) *cobra.Command {
	var location string
	cmd := &cobra.Command{
		Use:   "activate ID",
		Short: "Activate a menu item in a location; its subtree follows the location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := navigation.ParseLocation(location)
			if err != nil {
				return err
			}
			return run(cmd, flags, "menu.activate", func(ctx context.Context, client *sitekit.Client, _ *slog.Logger) error {
				item, err := client.Navigation.ActivateInLocation(ctx, args[0], l)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "activated %s in %s\n", item.ID(), item.Location())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&location, "location", string(navigation.LocationHeader), "Location (header or footer)")
	return cmd
}

func menuDeactivateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate ID",
		Short: "Hide a menu item without deleting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "menu.deactivate", func(ctx context.Context, client *sitekit.Client, _ *slog.Logger) error {
				item, err := client.Navigation.Deactivate(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deactivated %s\n", item.ID())
				return nil
			})
		},
	}
}

func menuDeleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a menu item and all of its descendants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, "menu.delete", func(ctx context.Context, client *sitekit.Client, _ *slog.Logger) error {
				n, err := client.Navigation.DeleteSubtree(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d item(s)\n", n)
				return nil
			})
		},
	}
}
