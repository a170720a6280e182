package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gentsgo/gents/internal/config"
	"github.com/gentsgo/gents/internal/externs"
	"github.com/gentsgo/gents/internal/logger"
	"github.com/gentsgo/gents/internal/modulemeta"
	"github.com/gentsgo/gents/pkg/gents"
)

var (
	outputDir       string
	root            string
	debug           bool
	convertFiles    []string
	externFiles     []string
	externsMapPath  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gents [files...]",
		Short: "Promote Closure-style doc-comment types into TypeScript syntax",
		RunE:  run,
	}
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for emitted .ts files")
	rootCmd.Flags().StringVar(&root, "root", "", "Root directory sources are resolved relative to")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Emit info-level diagnostics in addition to warnings and errors")
	rootCmd.Flags().StringArrayVar(&convertFiles, "convert", nil, "Source file to convert (in addition to positional arguments)")
	rootCmd.Flags().StringArrayVar(&externFiles, "externs", nil, "Ambient-declaration file: parsed for symbols, never emitted")
	rootCmd.Flags().StringVar(&externsMapPath, "externsMap", "", "Path to a JSON externs-to-TypeScript type map")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfgFile, err := loadProjectConfig()
	if err != nil {
		return err
	}
	applyConfigDefaults(cmd, cfgFile)

	inputs := append(append([]string{}, args...), convertFiles...)
	if len(inputs) == 0 {
		return fmt.Errorf("no input files provided")
	}

	sources, err := readSources(inputs)
	if err != nil {
		return err
	}
	externSources, err := readSources(externFiles)
	if err != nil {
		return err
	}

	externsMap, err := loadExternsMap()
	if err != nil {
		return err
	}

	filesToEmit := map[string]bool{}
	for _, src := range sources {
		filesToEmit[src.Name] = true
	}

	gentsCfg := gents.DefaultConfig()
	gentsCfg.ExternsMap = externsMap
	gentsCfg.Debug = debug
	if cfgFile.RewriteVarToLet != nil {
		gentsCfg.RewriteVarToLet = *cfgFile.RewriteVarToLet
	}

	emitted, diagnostics := gents.Transpile(filesToEmit, sources, externSources, gentsCfg)
	logger.PrintToStderr(diagnostics)

	if outputDir != "" {
		if err := writeOutputs(emitted); err != nil {
			return err
		}
	}

	if len(emitted) == 0 && len(sources) > 0 {
		return fmt.Errorf("transpilation failed: every input file failed")
	}
	return nil
}

func loadProjectConfig() (config.File, error) {
	path := ".gents.toml"
	text, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config.File{}, nil
		}
		return config.File{}, err
	}
	return config.Load(string(text))
}

// applyConfigDefaults fills in flags the user didn't set explicitly from
// .gents.toml. Flags always win: this only touches a variable whose flag
// was not given on the command line.
func applyConfigDefaults(cmd *cobra.Command, f config.File) {
	flags := cmd.Flags()
	if !flags.Changed("output") {
		outputDir = f.OutputDir
	}
	if !flags.Changed("root") {
		root = f.Root
	}
	if !flags.Changed("externsMap") {
		externsMapPath = f.ExternsMapPath
	}
	if !flags.Changed("debug") {
		debug = f.Debug
	}
	if !flags.Changed("externs") {
		externFiles = f.Externs
	}
}

func readSources(paths []string) ([]modulemeta.Source, error) {
	sources := make([]modulemeta.Source, 0, len(paths))
	for _, p := range paths {
		resolved := p
		if root != "" && !filepath.IsAbs(p) {
			resolved = filepath.Join(root, p)
		}
		text, err := os.ReadFile(resolved)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", resolved, err)
		}
		sources = append(sources, modulemeta.Source{Name: p, Text: string(text)})
	}
	return sources, nil
}

func loadExternsMap() (externs.Map, error) {
	if externsMapPath == "" {
		return externs.Map{}, nil
	}
	text, err := os.ReadFile(externsMapPath)
	if err != nil {
		if os.IsNotExist(err) {
			return externs.Map{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", externsMapPath, err)
	}
	return externs.Load(string(text))
}

func writeOutputs(emitted map[string]string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	for basename, text := range emitted {
		outPath := filepath.Join(outputDir, basename+".ts")
		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			return err
		}
	}
	return nil
}
