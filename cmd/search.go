package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/emuctl/config"
	"github.com/s0up4200/emuctl/emu"
	"github.com/s0up4200/emuctl/filter"
)

// searchFlags holds the search command flags
type searchFlags struct {
	preset string
	filter string
	sort   string
	sel    []string
	limit  int
	params []string
	exact  []string
	asc    []string
	desc   []string
	where  string
}

var sf searchFlags

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [resource]",
	Short: "Search a resource with filter, sort and select expressions",
	Long: `Run a structured query against a resource collection.

The filter and sort arguments are JSON in the EMu query grammar. --exact and
--asc/--desc build simple expressions without writing JSON. --where filters
the returned records locally with an expr expression.

Examples:
  emuctl search eparties --exact data.NamLast=Smith --asc data.NamFirst --select data.NamFirst,data.NamLast --limit 10
  emuctl search eparties --filter '{"AND":[{"data.NamLast":{"exact":{"value":"Smith"}}}]}'
  emuctl search --preset smiths --where 'iprefix(data.NamFirst, "j")'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	f := searchCmd.Flags()
	f.StringVarP(&sf.preset, "preset", "p", "", "use a search preset from config")
	f.StringVar(&sf.filter, "filter", "", "filter expression (JSON)")
	f.StringVar(&sf.sort, "sort", "", "sort expression (JSON)")
	f.StringSliceVar(&sf.sel, "select", nil, "fields to return")
	f.IntVar(&sf.limit, "limit", 0, "maximum number of matches")
	f.StringArrayVar(&sf.params, "param", nil, "additional form field as key=value (repeatable)")
	f.StringArrayVar(&sf.exact, "exact", nil, "exact match as field=value, combined with AND (repeatable)")
	f.StringArrayVar(&sf.asc, "asc", nil, "sort field ascending (repeatable)")
	f.StringArrayVar(&sf.desc, "desc", nil, "sort field descending (repeatable)")
	f.StringVar(&sf.where, "where", "", "client-side expr filter applied to returned records")
}

func runSearch(cmd *cobra.Command, args []string) error {
	var preset *config.SearchPreset
	if sf.preset != "" {
		p, ok := cfg.Search.Presets[sf.preset]
		if !ok {
			return fmt.Errorf("preset '%s' not found in config", sf.preset)
		}
		preset = &p
	}

	resource := ""
	if len(args) == 1 {
		resource = args[0]
	} else if preset != nil {
		resource = preset.Resource
	}
	if resource == "" {
		return fmt.Errorf("no resource specified")
	}

	spec, err := buildSearchSpec(sf, preset)
	if err != nil {
		return err
	}

	where := sf.where
	if where == "" && preset != nil {
		where = preset.Where
	}

	// Compile before any request so a bad expression costs nothing
	var local filter.Filter
	if where != "" {
		local, err = filter.NewCompiler().Compile(where)
		if err != nil {
			return fmt.Errorf("invalid --where expression: %w", err)
		}
	}

	token, err := sessionToken(cmd.Context())
	if err != nil {
		return err
	}

	logger.Debug().Str("resource", resource).Str("form", spec.Encode()).Msg("Searching")

	result, err := client.Search(cmd.Context(), token, resource, spec)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if local != nil {
		res, err := filter.Apply(local, result)
		if err != nil {
			return fmt.Errorf("failed to apply --where: %w", err)
		}
		for _, evalErr := range res.Errors {
			logger.Warn().Err(evalErr).Msg("Record skipped")
		}
		logger.Info().Int("total", res.Total).Int("matched", res.Matched).Msg("Applied local filter")
		result = res.Value
	}

	return render(cmd.OutOrStdout(), result, outputFormat)
}

// buildSearchSpec merges a preset with command line flags. Flags win.
func buildSearchSpec(flags searchFlags, preset *config.SearchPreset) (emu.SearchSpec, error) {
	var spec emu.SearchSpec
	if preset != nil {
		spec = preset.Spec()
	}

	if flags.filter != "" && len(flags.exact) > 0 {
		return spec, fmt.Errorf("--filter and --exact cannot be combined")
	}
	if flags.sort != "" && (len(flags.asc) > 0 || len(flags.desc) > 0) {
		return spec, fmt.Errorf("--sort and --asc/--desc cannot be combined")
	}

	if flags.filter != "" {
		spec.Filter = flags.filter
	}
	if len(flags.exact) > 0 {
		clauses := make([]emu.Clause, 0, len(flags.exact))
		for _, kv := range flags.exact {
			field, value, err := splitPair("--exact", kv)
			if err != nil {
				return spec, err
			}
			clauses = append(clauses, emu.Exact(field, value))
		}
		f, err := emu.FilterJSON(emu.And(clauses...))
		if err != nil {
			return spec, err
		}
		spec.Filter = f
	}

	if flags.sort != "" {
		spec.Sort = flags.sort
	}
	if len(flags.asc) > 0 || len(flags.desc) > 0 {
		keys := make([]emu.Sort, 0, len(flags.asc)+len(flags.desc))
		for _, field := range flags.asc {
			keys = append(keys, emu.Asc(field))
		}
		for _, field := range flags.desc {
			keys = append(keys, emu.Desc(field))
		}
		s, err := emu.SortJSON(keys...)
		if err != nil {
			return spec, err
		}
		spec.Sort = s
	}

	if len(flags.sel) > 0 {
		spec.Select = flags.sel
	}
	if flags.limit < 0 {
		return spec, fmt.Errorf("--limit must not be negative")
	}
	if flags.limit > 0 {
		spec.Limit = flags.limit
	}

	if len(flags.params) > 0 {
		spec.Params = url.Values{}
		for _, kv := range flags.params {
			key, value, err := splitPair("--param", kv)
			if err != nil {
				return spec, err
			}
			spec.Params.Add(key, value)
		}
	}

	return spec, nil
}

func splitPair(flag, kv string) (string, string, error) {
	key, value, ok := strings.Cut(kv, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("invalid %s value %q (want key=value)", flag, kv)
	}
	return strings.TrimSpace(key), value, nil
}
