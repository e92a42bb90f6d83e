package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thiremani/blockc/block"
	"github.com/thiremani/blockc/board"
	"github.com/thiremani/blockc/compiler"
	"github.com/thiremani/blockc/diag"
	"gopkg.in/yaml.v3"
)

var C_SUFFIX = ".c"

var (
	cfg        config
	boardName  string
	strLen     int
	outPath    string
	noCache    bool
	strict     bool
	boardFiles []string
)

var rootCmd = &cobra.Command{
	Use:   "blockc",
	Short: "blockc turns block workspaces into C programs",
	Long: `blockc generates a complete C translation unit from a block workspace
(a YAML or JSON tree of typed blocks) for a Propeller board.

Commands:
  build    Generate C source from a workspace file
  kinds    List the block kinds the generator knows
  boards   List the board profiles
  version  Print version information
`,
	SilenceUsage: true,
}

var buildCmd = &cobra.Command{
	Use:   "build <workspace>",
	Short: "Generate C source from a workspace file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the block kinds the generator knows",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printKinds(cmd.OutOrStdout(), compiler.Builtins())
	},
}

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List the board profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		extra, err := loadBoards(boardFiles)
		if err != nil {
			return err
		}
		printBoards(cmd.OutOrStdout(), extra)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func init() {
	cfg = loadConfig()

	rootCmd.PersistentFlags().StringVarP(&boardName, "board", "b", "", "board profile (default $BLOCKC_BOARD or the workspace's board)")
	rootCmd.PersistentFlags().StringSliceVar(&boardFiles, "boards", nil, "extra board profile files")
	buildCmd.Flags().IntVar(&strLen, "strlen", cfg.StrLen, "default length of char buffers")
	buildCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <workspace>.c, - for stdout)")
	buildCmd.Flags().BoolVar(&noCache, "no-cache", cfg.NoCache, "always regenerate, do not read or write the cache")
	buildCmd.Flags().BoolVar(&strict, "strict", false, "fail when generation reports errors")

	rootCmd.AddCommand(buildCmd, kindsCmd, boardsCmd, versionCmd)
}

func loadBoards(files []string) ([]*board.Profile, error) {
	var extra []*board.Profile
	for _, f := range files {
		ps, err := board.Load(f)
		if err != nil {
			return nil, err
		}
		extra = append(extra, ps...)
	}
	return extra, nil
}

// resolveBoard picks the board: flag, then workspace, then environment.
// Unlike compiler.Generate it does not fall back to the default board; a
// name no profile matches is an error.
func resolveBoard(ws *block.Workspace, extra []*board.Profile) (*board.Profile, error) {
	name := boardName
	if name == "" {
		name = ws.Board
	}
	if name == "" {
		name = cfg.Board
	}
	return board.Lookup(name, extra...)
}

func runBuild(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	input := args[0]

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read workspace: %w", err)
	}
	ws, err := block.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	extra, err := loadBoards(boardFiles)
	if err != nil {
		return err
	}
	prof, err := resolveBoard(ws, extra)
	if err != nil {
		return err
	}

	var cache *outputCache
	var shortHash, fullHash string
	if !noCache {
		cache = newOutputCache(cfg.CacheDir)
		profData, err := yaml.Marshal(prof)
		if err != nil {
			return fmt.Errorf("encode board profile: %w", err)
		}
		shortHash, fullHash = cacheKey(data, profData, strLen)
	}

	var entry *cacheEntry
	if cache != nil {
		e, ok, err := cache.Get(shortHash, fullHash)
		if err != nil {
			fmt.Fprintf(errOut, "⚠️ cache unavailable: %v\n", err)
			cache = nil
		} else if ok {
			fmt.Fprintf(errOut, "Using cached output: %s\n", shortHash)
			entry = e
		}
	}
	if entry == nil {
		res := compiler.Generate(ws, compiler.Options{Board: prof, StrLen: strLen})
		entry = &cacheEntry{Hash: fullHash, Board: prof.Name, Source: res.Source}
		for _, d := range res.Diagnostics {
			entry.Diagnostics = append(entry.Diagnostics, d.Error())
		}
		if cache != nil {
			if err := cache.Put(shortHash, entry); err != nil {
				fmt.Fprintf(errOut, "⚠️ cache not updated: %v\n", err)
			}
		}
	}

	failed := 0
	for _, d := range entry.Diagnostics {
		if strings.HasPrefix(d, diag.Error.String()) {
			failed++
		}
		fmt.Fprintf(errOut, "⚠️ %s: %s\n", input, d)
	}

	dest := outPath
	if dest == "" {
		dest = strings.TrimSuffix(input, filepath.Ext(input)) + C_SUFFIX
	}
	if dest == "-" {
		io.WriteString(out, entry.Source)
	} else {
		if err := os.WriteFile(dest, []byte(entry.Source), 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(errOut, "✅ Generated %s for %s\n", dest, prof.Name)
	}
	if strict && failed > 0 {
		return fmt.Errorf("%s: generation reported %d errors", input, failed)
	}
	return nil
}

func printKinds(w io.Writer, r *compiler.Registry) {
	for _, k := range r.Kinds() {
		shape := "statement"
		switch {
		case k.Root:
			shape = "root"
		case k.Value:
			shape = "value"
		}
		fields := make([]string, 0, len(k.Fields))
		for _, f := range k.Fields {
			fields = append(fields, f.Name+":"+f.Kind)
		}
		fmt.Fprintf(w, "%-26s %-9s %-8s %s\n", k.Type, shape, k.Source, strings.Join(fields, " "))
	}
}

func printBoards(w io.Writer, extra []*board.Profile) {
	seen := map[string]bool{}
	for _, p := range extra {
		seen[p.Name] = true
		fmt.Fprintf(w, "%-16s %s (%s)\n", p.Name, p.Title, strings.Join(p.Features, ", "))
	}
	for _, name := range board.Names() {
		if seen[name] {
			continue
		}
		p, _ := board.Builtin(name)
		fmt.Fprintf(w, "%-16s %s (%s)\n", p.Name, p.Title, strings.Join(p.Features, ", "))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
