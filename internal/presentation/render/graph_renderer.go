package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"contract-dependency-graph/internal/domain/entity"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Output formats
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

var (
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	addressStyle       = color.New(color.FgCyan)
	warningStyle       = color.New(color.FgYellow)
)

// GraphRenderer writes dependency graphs to an output stream
type GraphRenderer struct {
	out   io.Writer
	color bool
}

// NewGraphRenderer creates a new graph renderer
func NewGraphRenderer(out io.Writer, color bool) *GraphRenderer {
	return &GraphRenderer{
		out:   out,
		color: color,
	}
}

// Render writes graph in the requested format
func (r *GraphRenderer) Render(graph *entity.DependencyGraph, format string) error {
	switch format {
	case FormatJSON, "":
		return r.RenderJSON(graph)
	case FormatTable:
		return r.RenderTable(graph)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// RenderJSON writes the graph as indented JSON
func (r *GraphRenderer) RenderJSON(graph *entity.DependencyGraph) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(graph)
}

// RenderTable writes the graph as a summary followed by two tables
func (r *GraphRenderer) RenderTable(graph *entity.DependencyGraph) error {
	fmt.Fprintln(r.out, r.paint(sectionHeaderStyle, "Dependency graph"))
	fmt.Fprintf(r.out, "  Contract:     %s\n", r.paint(addressStyle, graph.ContractAddress.String()))
	fmt.Fprintf(r.out, "  Deployer:     %s\n", r.paint(addressStyle, graph.Deployer.String()))
	fmt.Fprintf(r.out, "  Creation tx:  %s\n", graph.CreationTxHash)
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, r.paint(sectionHeaderStyle, "Deployer contracts"))
	contracts := r.newTable("#", "Address")
	for i, address := range graph.DeployerContracts {
		contracts.AppendRow(table.Row{i + 1, address.String()})
	}
	r.renderOrEmpty(contracts, len(graph.DeployerContracts))
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, r.paint(sectionHeaderStyle, "Frequent callers"))
	callers := r.newTable("#", "Address", "Calls")
	for i, caller := range graph.FrequentCallers {
		callers.AppendRow(table.Row{i + 1, caller.Address.String(), strconv.Itoa(caller.Count)})
	}
	r.renderOrEmpty(callers, len(graph.FrequentCallers))

	if graph.Degraded() {
		fmt.Fprintln(r.out)
		lookups := make([]string, 0, len(graph.LookupErrors))
		for lookup := range graph.LookupErrors {
			lookups = append(lookups, lookup)
		}
		sort.Strings(lookups)
		for _, lookup := range lookups {
			fmt.Fprintln(r.out, r.paint(warningStyle, fmt.Sprintf("warning: %s lookup failed: %s", lookup, graph.LookupErrors[lookup])))
		}
	}

	return nil
}

func (r *GraphRenderer) newTable(headers ...interface{}) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row(headers))
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
	})
	return t
}

func (r *GraphRenderer) renderOrEmpty(t table.Writer, rows int) {
	if rows == 0 {
		fmt.Fprintln(r.out, "  (none)")
		return
	}
	t.Render()
}

func (r *GraphRenderer) paint(c *color.Color, s string) string {
	if !r.color {
		return s
	}
	return c.Sprint(s)
}
