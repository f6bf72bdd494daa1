package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/go-dbal/tablemodel"
)

// options collected from the command flags
type options struct {
	table   string
	columns []tablemodel.Projection
	filters []tablemodel.Filter
	order   []tablemodel.Order
	limit   *tablemodel.Limit
	mode    tablemodel.ReturnMode
	data    map[string]interface{}
	changes map[string]interface{}
}

type command struct {
	name  string
	usage string
	// flags lists the optional flags the command accepts besides -table
	flags []string
	run   func(ctx context.Context, model *tablemodel.Model, opts options, out *output) error
}

var commands = []command{
	{
		name:  "columns",
		usage: "print the introspected columns of the table",
		run: func(ctx context.Context, model *tablemodel.Model, opts options, out *output) error {
			columns := make([]interface{}, 0, len(model.Schema().ColumnNames()))
			for _, name := range model.Schema().ColumnNames() {
				column, _ := model.Schema().Column(name)
				columns = append(columns, column)
			}
			return out.json(columns)
		},
	},
	{
		name:  "read",
		usage: "select rows",
		flags: []string{"columns", "where", "order", "limit", "mode"},
		run: func(ctx context.Context, model *tablemodel.Model, opts options, out *output) error {
			rows, err := model.Read(ctx, tablemodel.Query{
				Columns: opts.columns,
				Filters: opts.filters,
				Limit:   opts.limit,
				Order:   opts.order,
				Mode:    opts.mode,
			})
			if err != nil {
				return err
			}
			if rows == nil {
				rows = []*tablemodel.Row{}
			}
			out.summary(len(rows), "row", "read")
			return out.json(rows)
		},
	},
	{
		name:  "create",
		usage: "insert one row built from -data",
		flags: []string{"data"},
		run: func(ctx context.Context, model *tablemodel.Model, opts options, out *output) error {
			result, err := model.Create(ctx, opts.data)
			if err != nil {
				return err
			}
			return out.json(result)
		},
	},
	{
		name:  "update",
		usage: "set -data on the rows matching -where",
		flags: []string{"data", "where"},
		run: func(ctx context.Context, model *tablemodel.Model, opts options, out *output) error {
			affected, err := model.Update(ctx, opts.data, opts.filters)
			if err != nil {
				return err
			}
			out.summary(int(affected), "row", "updated")
			return out.json(map[string]int64{"affected": affected})
		},
	},
	{
		name:  "delete",
		usage: "delete the rows matching -where",
		flags: []string{"where"},
		run: func(ctx context.Context, model *tablemodel.Model, opts options, out *output) error {
			affected, err := model.Delete(ctx, opts.filters)
			if err != nil {
				return err
			}
			out.summary(int(affected), "row", "deleted")
			return out.json(map[string]int64{"affected": affected})
		},
	},
	{
		name:  "copy",
		usage: "duplicate the rows matching -where, applying -changes to each copy",
		flags: []string{"where", "order", "limit", "changes"},
		run: func(ctx context.Context, model *tablemodel.Model, opts options, out *output) error {
			results, err := model.Copy(ctx, opts.filters, opts.limit, opts.order, opts.changes)
			if err != nil {
				return err
			}
			if results == nil {
				results = []tablemodel.CreateResult{}
			}
			out.summary(len(results), "copy", "created")
			return out.json(results)
		},
	},
}

func lookupCommand(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

func (cmd command) accepts(name string) bool {
	for _, f := range cmd.flags {
		if f == name {
			return true
		}
	}
	return false
}

// parse reads the command flags, JSON arguments are decoded with json.Number so
// integers keep their precision
func (cmd command) parse(args []string, stderr io.Writer) (opts options, err error) {
	var columns, where, order, limit, mode, data, changes string

	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.table, "table", "", "Table name (required)")
	if cmd.accepts("columns") {
		fs.StringVar(&columns, "columns", "", `Comma separated projections, e.g. "id,name:label"`)
	}
	if cmd.accepts("where") {
		fs.StringVar(&where, "where", "", `JSON filter list, e.g. '[["id","eq",5]]'`)
	}
	if cmd.accepts("order") {
		fs.StringVar(&order, "order", "", `JSON order list, e.g. '["name",["id","DESC"]]'`)
	}
	if cmd.accepts("limit") {
		fs.StringVar(&limit, "limit", "", `JSON limit, a count or [offset,count]`)
	}
	if cmd.accepts("mode") {
		fs.StringVar(&mode, "mode", "raw", "Return mode: raw, simple or coerced")
	}
	if cmd.accepts("data") {
		fs.StringVar(&data, "data", "", `JSON object of column values, e.g. '{"name":"x"}'`)
	}
	if cmd.accepts("changes") {
		fs.StringVar(&changes, "changes", "", "JSON object of column values applied to every copy")
	}

	if err = fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("%s: unexpected arguments %s", cmd.name, strings.Join(fs.Args(), " "))
	}
	if opts.table == "" {
		return opts, fmt.Errorf("%s: -table is required", cmd.name)
	}

	opts.columns = tablemodel.ParseProjections(columns)

	if where != "" {
		var raw []interface{}
		if err = decodeJSON(where, &raw); err != nil {
			return opts, fmt.Errorf("%s: -where: %w", cmd.name, err)
		}
		if opts.filters, err = tablemodel.ParseFilters(raw); err != nil {
			return opts, fmt.Errorf("%s: -where: %w", cmd.name, err)
		}
	}

	if order != "" {
		var raw []interface{}
		if err = decodeJSON(order, &raw); err != nil {
			return opts, fmt.Errorf("%s: -order: %w", cmd.name, err)
		}
		if opts.order, err = tablemodel.ParseOrders(raw); err != nil {
			return opts, fmt.Errorf("%s: -order: %w", cmd.name, err)
		}
	}

	if limit != "" {
		var raw interface{}
		if err = decodeJSON(limit, &raw); err != nil {
			return opts, fmt.Errorf("%s: -limit: %w", cmd.name, err)
		}
		if opts.limit, err = tablemodel.ParseLimitStrict(raw); err != nil {
			return opts, fmt.Errorf("%s: -limit: %w", cmd.name, err)
		}
	}

	if mode != "" {
		if opts.mode, err = tablemodel.ParseReturnMode(mode); err != nil {
			return opts, fmt.Errorf("%s: -mode: %w", cmd.name, err)
		}
	}

	if data != "" {
		if err = decodeJSON(data, &opts.data); err != nil {
			return opts, fmt.Errorf("%s: -data: %w", cmd.name, err)
		}
	}

	if changes != "" {
		if err = decodeJSON(changes, &opts.changes); err != nil {
			return opts, fmt.Errorf("%s: -changes: %w", cmd.name, err)
		}
	}

	return opts, nil
}

func decodeJSON(s string, v interface{}) error {
	decoder := json.NewDecoder(strings.NewReader(s))
	decoder.UseNumber()
	return decoder.Decode(v)
}

// output writes results as JSON to stdout and summaries to stderr
type output struct {
	stdout io.Writer
	stderr io.Writer
}

func (out *output) json(v interface{}) error {
	encoder := json.NewEncoder(out.stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (out *output) summary(count int, noun, verb string) {
	if count != 1 {
		noun = inflection.Plural(noun)
	}
	fmt.Fprintf(out.stderr, "%d %s %s\n", count, noun, verb)
}
