package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NissesSenap/plotstyle/internal/checker"
	"github.com/NissesSenap/plotstyle/internal/config"
	"github.com/NissesSenap/plotstyle/internal/export"
	"github.com/NissesSenap/plotstyle/internal/preview"
	"github.com/NissesSenap/plotstyle/internal/schema"
	"github.com/NissesSenap/plotstyle/internal/storage"
	"github.com/NissesSenap/plotstyle/internal/style"
	"github.com/NissesSenap/plotstyle/internal/watch"
)

// ErrProblems is returned by check and watch when a style has errors
var ErrProblems = errors.New("style has errors")

type GetCmd struct {
	Keys  []string `arg:"" name:"key" help:"Setting keys to print"`
	Style string   `help:"Read from a stored style" placeholder:"NAME"`
	File  string   `help:"Read from a style file" type:"path" placeholder:"PATH"`
}

func (c *GetCmd) Run(cli *CLI) error {
	if c.Style != "" && c.File == "" {
		return c.fromStore(cli)
	}

	table, err := cli.activeTable(c.File, "")
	if err != nil {
		return err
	}
	for _, key := range c.Keys {
		s, err := table.Lookup(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.Out(), "%s : %s\n", s.Key, s.Value)
	}
	return nil
}

func (c *GetCmd) fromStore(cli *CLI) error {
	store, err := cli.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, key := range c.Keys {
		s, err := store.GetSetting(cli.Context(), c.Style, key)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.Out(), "%s : %s\n", s.Key, s.Value)
	}
	return nil
}

type DumpCmd struct {
	Format string `help:"Output format (rc, yaml, toml, json)" default:"rc"`
	Style  string `help:"Dump a stored style" placeholder:"NAME"`
	File   string `help:"Dump a style file" type:"path" placeholder:"PATH"`
}

func (c *DumpCmd) Run(cli *CLI) error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	table, err := cli.activeTable(c.File, c.Style)
	if err != nil {
		return err
	}
	return export.Encode(cli.Out(), table, format)
}

type CheckCmd struct {
	Files   []string `arg:"" name:"file" type:"path" help:"Style files to check"`
	Lenient bool     `help:"Accept duplicate keys and malformed lines with a warning"`
}

func (c *CheckCmd) Run(cli *CLI) error {
	var opts []style.ParseOption
	if c.Lenient {
		opts = append(opts, style.Lenient())
	}

	pool := checker.NewPool(c.Files, cli.cfg.Check.MaxConcurrent,
		checker.WithLogger(cli.Logger()),
		checker.WithParseOptions(opts...))
	reports, checkErr := pool.CheckAll(cli.Context(), schema.Builtin())

	failed := false
	for _, report := range reports {
		for _, p := range report.Problems {
			fmt.Fprintf(cli.Out(), "%s: %s\n", report.Path, p)
		}
		if report.HasErrors() {
			failed = true
		}
	}

	errs := pool.Errors()
	paths := make([]string, 0, len(errs))
	for path := range errs {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		fmt.Fprintf(cli.Out(), "%s: %v\n", path, errs[path])
	}

	if checkErr != nil {
		return checkErr
	}
	if failed {
		return ErrProblems
	}
	return nil
}

type ImportCmd struct {
	Name   string `arg:"" help:"Name to store the style under"`
	File   string `arg:"" type:"existingfile" help:"Style file to import"`
	Format string `help:"Input format (rc, yaml, toml, json); guessed from the extension when empty"`
}

func (c *ImportCmd) Run(cli *CLI) error {
	format, err := c.format()
	if err != nil {
		return err
	}

	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	table, err := export.Decode(f, format, style.WithSource(c.File))
	if err != nil {
		return err
	}

	store, err := cli.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec := &storage.StyleRecord{Name: c.Name, Source: c.File}
	if err := store.SaveStyle(cli.Context(), rec, table); err != nil {
		return err
	}
	cli.Logger().Info("imported style", "name", rec.Name, "settings", rec.SettingCount)
	fmt.Fprintf(cli.Out(), "imported %s (%d settings)\n", rec.Name, rec.SettingCount)
	return nil
}

func (c *ImportCmd) format() (export.Format, error) {
	if c.Format != "" {
		return export.ParseFormat(c.Format)
	}
	ext := strings.TrimPrefix(filepath.Ext(c.File), ".")
	if format, err := export.ParseFormat(ext); err == nil {
		return format, nil
	}
	return export.FormatRC, nil
}

type ListCmd struct{}

func (c *ListCmd) Run(cli *CLI) error {
	store, err := cli.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.ListStyles(cli.Context())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cli.Out(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSETTINGS\tIMPORTED\tSOURCE")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", rec.Name, rec.SettingCount, rec.ImportedAt.Format(time.RFC3339), rec.Source)
	}
	return tw.Flush()
}

type ExportCmd struct {
	Name   string `arg:"" help:"Stored style name"`
	Format string `help:"Output format (rc, yaml, toml, json)" default:"rc"`
}

func (c *ExportCmd) Run(cli *CLI) error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	table, err := cli.activeTable("", c.Name)
	if err != nil {
		return err
	}
	return export.Encode(cli.Out(), table, format)
}

type DeleteCmd struct {
	Name string `arg:"" help:"Stored style name"`
}

func (c *DeleteCmd) Run(cli *CLI) error {
	store, err := cli.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteStyle(cli.Context(), c.Name); err != nil {
		return err
	}
	fmt.Fprintf(cli.Out(), "deleted %s\n", c.Name)
	return nil
}

type FindCmd struct {
	Key string `arg:"" help:"Setting key"`
}

func (c *FindCmd) Run(cli *CLI) error {
	store, err := cli.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	values, err := store.FindSettings(cli.Context(), c.Key)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(cli.Out(), "%s: %s : %s\n", name, c.Key, values[name])
	}
	return nil
}

type PreviewCmd struct {
	Engine string `help:"Rendering engine (gonum, chart)"`
	Format string `help:"Image format (png, svg)"`
	Output string `help:"Output file, - for stdout" placeholder:"PATH"`
	Style  string `help:"Preview a stored style" placeholder:"NAME"`
	File   string `help:"Preview a style file" type:"path" placeholder:"PATH"`
}

func (c *PreviewCmd) Run(cli *CLI) error {
	cfg := cli.cfg.Preview
	opts := preview.Options{
		Engine: firstNonEmpty(c.Engine, cfg.Engine),
		Format: firstNonEmpty(c.Format, cfg.Format),
		Series: cfg.Series,
		Points: cfg.Points,
	}
	output := c.Output
	if output == "" {
		output = withExt(cfg.Output, opts.Format)
	}

	table, err := cli.activeTable(c.File, c.Style)
	if err != nil {
		return err
	}

	// Render fully before touching the output so a failure leaves no file
	var buf bytes.Buffer
	if err := preview.Render(cli.Context(), &buf, table, opts); err != nil {
		return err
	}

	if output == "-" {
		_, err := buf.WriteTo(cli.Out())
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cli.Out(), "wrote %s\n", output)
	return nil
}

// withExt replaces the extension of path with format
func withExt(path, format string) string {
	if path == "" || path == "-" {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + format
}

type WatchCmd struct {
	File    string `arg:"" type:"path" help:"Style file to watch"`
	Lenient bool   `help:"Accept duplicate keys and malformed lines with a warning"`
}

func (c *WatchCmd) Run(cli *CLI) error {
	var parseOpts []style.ParseOption
	if c.Lenient {
		parseOpts = append(parseOpts, style.Lenient())
	}

	rules := schema.Builtin()
	w, err := watch.New(c.File, func(table *style.Table, err error) {
		if err != nil {
			fmt.Fprintf(cli.Out(), "%s: %v\n", c.File, err)
			return
		}
		problems := rules.Check(table)
		for _, p := range problems {
			fmt.Fprintf(cli.Out(), "%s: %s\n", c.File, p)
		}
		if len(problems) == 0 {
			fmt.Fprintf(cli.Out(), "%s: ok (%d settings)\n", c.File, table.Len())
		}
	},
		watch.WithReloadRate(cli.cfg.Watch.ReloadsPerSecond),
		watch.WithLogger(cli.Logger()),
		watch.WithParseOptions(parseOpts...))
	if err != nil {
		return err
	}

	cli.Logger().Info("watching style file", "path", w.Path())
	return w.Run(cli.Context())
}

type ConfigCmd struct {
	Init bool `help:"Write the effective configuration to the config file"`
}

func (c *ConfigCmd) Run(cli *CLI) error {
	if c.Init {
		if err := cli.cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cli.Out(), "wrote %s\n", config.ConfigPath())
		return nil
	}

	enc := yaml.NewEncoder(cli.Out())
	enc.SetIndent(2)
	if err := enc.Encode(cli.cfg); err != nil {
		return err
	}
	return enc.Close()
}

type VersionCmd struct{}

func (c *VersionCmd) Run(cli *CLI) error {
	fmt.Fprintf(cli.Out(), "plotstyle version: %s\n", Version)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
