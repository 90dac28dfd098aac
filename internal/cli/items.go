package cli

import (
	"fmt"
	"strconv"

	"itens-cli/internal/model"
	"itens-cli/internal/viewstate"

	"github.com/spf13/cobra"
)

// itemPage and itemRow keep the wire JSON shape and add a text table.
type itemPage model.ListResult

func (p itemPage) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(p.Items))
	for _, it := range p.Items {
		rows = append(rows, []string{strconv.Itoa(it.ID), it.Name, viewstate.FormatPrice(it.Price)})
	}
	rows = append(rows, []string{"", fmt.Sprintf("page %d of %d", p.Page, p.TotalPages), fmt.Sprintf("%d items", p.Total)})
	return []string{"ID", "Name", "Price"}, rows
}

type itemRow model.Item

func (it itemRow) Table() ([]string, [][]string) {
	return []string{"ID", "Name", "Price"}, [][]string{{strconv.Itoa(it.ID), it.Name, viewstate.FormatPrice(it.Price)}}
}

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item", "itens"},
		Short:   "List, create, update and delete items",
	}
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsCreateCmd(app))
	cmd.AddCommand(newItemsUpdateCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))
	return cmd
}

func newItemsListCmd(app *App) *cobra.Command {
	var (
		page     int
		pageSize int
		sortBy   string
		order    string
		search   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := viewstate.New()
			if page < 1 {
				return writeErr(cmd, fmt.Errorf("invalid --page: %d (must be >= 1)", page))
			}
			if !model.ValidPageSize(pageSize) {
				return writeErr(cmd, fmt.Errorf("invalid --page-size: %d (want one of %v)", pageSize, model.PageSizes))
			}
			field, err := model.ParseSortField(sortBy)
			if err != nil {
				return writeErr(cmd, err)
			}
			dir, err := model.ParseSortDirection(order)
			if err != nil {
				return writeErr(cmd, err)
			}
			st.Page = page
			st.PageSize = pageSize
			st.SortField = field
			st.SortDirection = dir
			st.SearchApplied = search

			c, err := app.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := c.List(cmd.Context(), viewstate.BuildQuery(st))
			if err != nil {
				return writeErr(cmd, apiError(c.BaseURL(), err))
			}
			return writeOut(cmd, app, itemPage(res))
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&pageSize, "page-size", viewstate.DefaultPageSize, "Items per page (5|10|20|50)")
	cmd.Flags().StringVar(&sortBy, "sort", string(model.SortByID), "Sort field (id|name|price)")
	cmd.Flags().StringVar(&order, "order", string(model.Asc), "Sort direction (asc|desc)")
	cmd.Flags().StringVar(&search, "search", "", "Match id or part of the name")
	return cmd
}

func newItemsCreateCmd(app *App) *cobra.Command {
	var name, price string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := viewstate.ParseDraft(viewstate.Draft{Name: name, Price: price})
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := app.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			it, err := c.Create(cmd.Context(), in)
			if err != nil {
				return writeErr(cmd, apiError(c.BaseURL(), err))
			}
			return writeOut(cmd, app, itemRow(it))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&price, "price", "", "Item price (e.g. 49.90)")
	return cmd
}

func newItemsUpdateCmd(app *App) *cobra.Command {
	var name, price string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace an item's name and price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := viewstate.ParseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			in, err := viewstate.ParseDraft(viewstate.Draft{Name: name, Price: price})
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := app.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			it, err := c.Update(cmd.Context(), id, in)
			if err != nil {
				return writeErr(cmd, apiError(c.BaseURL(), err))
			}
			return writeOut(cmd, app, itemRow(it))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&price, "price", "", "Item price (e.g. 49.90)")
	return cmd
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := viewstate.ParseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := app.client()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.Delete(cmd.Context(), id); err != nil {
				return writeErr(cmd, apiError(c.BaseURL(), err))
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}
