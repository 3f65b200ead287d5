package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/serrano-dashboard/internal/catalog"
	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/layout"
)

func newLayoutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show or change the persisted dashboard layout",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the layout in render order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printLayout(a.layoutStore().LoadOrDefault(cmd.Context()))
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <widget-id>",
		Short: "Enable or disable a widget",
		Args:  cobra.ExactArgs(1),
		RunE: a.mutate(func(l dto.DashboardLayout, args []string) (dto.DashboardLayout, error) {
			if err := knownWidget(args[0]); err != nil {
				return l, err
			}
			return layout.Toggle(l, args[0]), nil
		}),
	}

	size := &cobra.Command{
		Use:   "size <widget-id> <sm|md|lg>",
		Short: "Override a widget's card size",
		Args:  cobra.ExactArgs(2),
		RunE: a.mutate(func(l dto.DashboardLayout, args []string) (dto.DashboardLayout, error) {
			if err := knownWidget(args[0]); err != nil {
				return l, err
			}
			s := dto.Size(args[1])
			if !s.Valid() {
				return l, fmt.Errorf("invalid size %q", args[1])
			}
			return layout.SetSize(l, args[0], s), nil
		}),
	}

	move := &cobra.Command{
		Use:   "move <widget-id> <index>",
		Short: "Move a widget to a position in the render order",
		Args:  cobra.ExactArgs(2),
		RunE: a.mutate(func(l dto.DashboardLayout, args []string) (dto.DashboardLayout, error) {
			if err := knownWidget(args[0]); err != nil {
				return l, err
			}
			idx, err := strconv.Atoi(args[1])
			if err != nil {
				return l, fmt.Errorf("invalid index %q", args[1])
			}
			return layout.Move(l, args[0], idx), nil
		}),
	}

	scope := &cobra.Command{
		Use:   "scope <serrano|market|both>",
		Short: "Change the viewing scope",
		Args:  cobra.ExactArgs(1),
		RunE: a.mutate(func(l dto.DashboardLayout, args []string) (dto.DashboardLayout, error) {
			s := dto.Scope(args[0])
			if !s.Valid() {
				return l, fmt.Errorf("invalid scope %q", args[0])
			}
			return layout.SetScope(l, s), nil
		}),
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printLayout(a.layoutStore().Reset(cmd.Context()))
		},
	}

	cmd.AddCommand(show, toggle, size, move, scope, reset)
	return cmd
}

type layoutChange func(l dto.DashboardLayout, args []string) (dto.DashboardLayout, error)

// mutate loads the layout, applies change, saves and prints the result.
func (a *app) mutate(change layoutChange) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s := a.layoutStore()
		next, err := change(s.LoadOrDefault(cmd.Context()), args)
		if err != nil {
			return err
		}
		return a.printLayout(s.Save(cmd.Context(), next))
	}
}

func knownWidget(id string) error {
	if !catalog.Default().Has(id) {
		return fmt.Errorf("unknown widget %q", id)
	}
	return nil
}

func (a *app) printLayout(l dto.DashboardLayout) error {
	c := catalog.Default()
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "scope: %s\n", l.Scope)
	for i, id := range l.Order {
		state := "off"
		if l.IsEnabled(id) {
			state = "on"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, id, state, layout.SizeOf(c, l, id))
	}
	return tw.Flush()
}
