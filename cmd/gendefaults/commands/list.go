package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/gendefaults/defaults"
	"github.com/teranos/gendefaults/errors"
)

// listedConstant is one row of gendefaults list.
type listedConstant struct {
	Entry       string   `json:"entry" yaml:"entry"`
	LongName    string   `json:"long_name" yaml:"long_name"`
	EE          bool     `json:"ee" yaml:"ee"`
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Value       string   `json:"value" yaml:"value"`
	OnlyOn      []string `json:"only_on,omitempty" yaml:"only_on,omitempty"`
	Overrides   []string `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	Description string   `json:"description" yaml:"description"`
}

func newListCmd(a *app) *cobra.Command {
	var (
		platform string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the loaded definitions",
		Long: `List prints every constant of the definitions file.

With --platform the type and value are resolved for that platform and
constants filtered out by only_on are hidden.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.settings(cmd)
			if err != nil {
				return err
			}
			reg, err := defaults.LoadRegistry(cfg.Input)
			if err != nil {
				return err
			}

			rows, err := listConstants(reg, defaults.Platform(platform))
			if err != nil {
				return err
			}
			return writeList(cmd.OutOrStdout(), rows, format)
		},
	}

	cmd.Flags().StringP("input", "i", "", "Definitions file")
	cmd.Flags().StringVarP(&platform, "platform", "p", "", "Resolve types and values for this platform")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json, yaml")
	return cmd
}

func listConstants(reg *defaults.Registry, p defaults.Platform) ([]listedConstant, error) {
	var rows []listedConstant
	for _, e := range reg.Entries() {
		if p != "" && !e.AppliesTo(p) {
			continue
		}
		for _, c := range e.Constants {
			row := listedConstant{
				Entry:       e.Name,
				LongName:    e.LongName,
				EE:          e.EE,
				Name:        c.Name,
				Type:        c.Type.String(),
				Value:       rawString(c.Value),
				OnlyOn:      platformStrings(c.OnlyOn),
				Description: c.Description,
			}
			if c.Overrides != nil {
				for o := c.Overrides.Oldest(); o != nil; o = o.Next() {
					row.Overrides = append(row.Overrides, string(o.Key))
				}
			}

			if p != "" {
				if !c.AppliesTo(p) {
					continue
				}
				t, v, err := c.Resolve(p)
				if err != nil {
					return nil, errors.Wrapf(err, "entry %s", e.Name)
				}
				row.Type = t.String()
				row.Value = v.String()
				if v.Unit() != "" {
					row.Value += " " + v.Unit()
				}
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func writeList(w io.Writer, rows []listedConstant, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal constants to JSON")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case "yaml":
		data, err := yaml.Marshal(rows)
		if err != nil {
			return errors.Wrap(err, "failed to marshal constants to YAML")
		}
		_, err = w.Write(data)
		return err

	case "table":
		data := pterm.TableData{{"Entry", "Constant", "Type", "Value", "EE", "Only on", "Overrides"}}
		for _, r := range rows {
			ee := ""
			if r.EE {
				ee = "yes"
			}
			data = append(data, []string{
				r.Entry, r.Name, r.Type, r.Value, ee,
				strings.Join(r.OnlyOn, ","), strings.Join(r.Overrides, ","),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
	}
	return errors.WithHint(errors.Newf("unsupported format: %s", format), "supported: table, json, yaml")
}

func rawString(v defaults.RawValue) string {
	s := fmt.Sprint(v.Scalar)
	if v.Unit != "" {
		s += " " + v.Unit
	}
	return s
}

func platformStrings(ps []defaults.Platform) []string {
	if len(ps) == 0 {
		return nil
	}
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}
