// Command cedar resolves gloss-language quotes in translation-notes tables
// to the original-language words they translate, using word-aligned corpora.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/CedarNotes/core/align"
	"github.com/FocuswithJustin/CedarNotes/internal/logging"
	"github.com/FocuswithJustin/CedarNotes/internal/server"
	"github.com/FocuswithJustin/CedarNotes/internal/source"
)

const version = "0.1.0"

// CLI defines the command-line interface for cedar.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format"`

	Resolve ResolveCmd `cmd:"" help:"Resolve quotes in a notes table to original-language words"`
	Serve   ServeCmd   `cmd:"" help:"Start the REST API server"`
	Cache   CacheGroup `cmd:"" help:"Cached document operations"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// SourceFlags locate the document repositories shared by resolve and serve.
type SourceFlags struct {
	Server     string `name:"server" default:"https://git.door43.org" env:"CEDAR_SERVER" help:"Repository server base URL"`
	Org        string `name:"org" default:"unfoldingWord" env:"CEDAR_ORG" help:"Repository organization"`
	Branch     string `name:"branch" default:"master" env:"CEDAR_BRANCH" help:"Repository branch"`
	GlossRepo  string `name:"gloss" default:"en_ult" help:"Gloss-language corpus repository"`
	HebrewRepo string `name:"hebrew" default:"hbo_uhb" help:"Hebrew corpus repository"`
	GreekRepo  string `name:"greek" default:"el-x-koine_ugnt" help:"Greek corpus repository"`
	CacheDir   string `name:"cache-dir" env:"CEDAR_CACHE_DIR" help:"Document cache directory" type:"path"`
}

func (f *SourceFlags) sourceConfig() source.Config {
	cacheDir := f.CacheDir
	if cacheDir == "" {
		cacheDir = defaultCacheDir()
	}
	return source.Config{
		Server:   f.Server,
		Org:      f.Org,
		Branch:   f.Branch,
		Gloss:    corpusFromRepo(f.GlossRepo),
		Hebrew:   corpusFromRepo(f.HebrewRepo),
		Greek:    corpusFromRepo(f.GreekRepo),
		CacheDir: cacheDir,
	}
}

func (f *SourceFlags) alignConfig() align.Config {
	return align.Config{
		GlossCorpus:  corpusFromRepo(f.GlossRepo).Abbrev,
		HebrewCorpus: corpusFromRepo(f.HebrewRepo).Abbrev,
		GreekCorpus:  corpusFromRepo(f.GreekRepo).Abbrev,
	}
}

// corpusFromRepo derives the index abbreviation from a repository name
// such as "en_ult" or "el-x-koine_ugnt".
func corpusFromRepo(repo string) source.Corpus {
	abbrev := repo
	if i := strings.LastIndex(repo, "_"); i >= 0 && i < len(repo)-1 {
		abbrev = repo[i+1:]
	}
	return source.Corpus{Repo: repo, Abbrev: abbrev}
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".cedar-cache"
	}
	return filepath.Join(base, "cedar")
}

func setupLogging() {
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))
}

// ResolveCmd resolves the Quote column of a notes table for one book.
type ResolveCmd struct {
	Book   string `arg:"" help:"Canonical book identifier (e.g. TIT, GEN)"`
	Input  string `name:"input" short:"i" default:"-" help:"Notes TSV file (- for stdin)"`
	Output string `name:"output" short:"o" default:"-" help:"Output file (- for stdout)"`

	SourceFlags
}

func (c *ResolveCmd) Run() error {
	setupLogging()

	content, err := readInput(c.Input)
	if err != nil {
		return err
	}

	svc, err := source.NewService(c.sourceConfig())
	if err != nil {
		return err
	}
	defer svc.Close()

	resolver := align.NewResolver(c.alignConfig(), svc)
	result, err := resolver.ResolveQuotes(context.Background(), c.Book, content)
	if err != nil {
		return err
	}

	for _, diag := range result.Errors {
		fmt.Fprintln(os.Stderr, diag)
	}
	logging.Info("resolution complete", "book", c.Book, "passed", result.Passed, "failed", result.Failed)

	return writeOutput(c.Output, strings.Join(result.Output, "\n")+"\n")
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeOutput(path, content string) error {
	if path == "-" {
		_, err := io.WriteString(os.Stdout, content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// ServeCmd starts the REST API server.
type ServeCmd struct {
	Addr string `name:"addr" default:":8080" env:"CEDAR_ADDR" help:"Listen address"`

	SourceFlags
}

func (c *ServeCmd) Run() error {
	setupLogging()

	svc, err := source.NewService(c.sourceConfig())
	if err != nil {
		return err
	}
	defer svc.Close()

	s := server.New(svc, c.alignConfig())
	return s.ListenAndServe(c.Addr)
}

// CacheGroup contains cached-document operations.
type CacheGroup struct {
	Info  CacheInfoCmd  `cmd:"" help:"List cached documents"`
	Purge CachePurgeCmd `cmd:"" help:"Remove all cached documents"`
}

// CacheInfoCmd lists cached documents.
type CacheInfoCmd struct {
	SourceFlags
}

func (c *CacheInfoCmd) Run() error {
	setupLogging()

	svc, err := source.NewService(c.sourceConfig())
	if err != nil {
		return err
	}
	defer svc.Close()

	entries, err := svc.Entries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("cache is empty")
		return nil
	}

	var total int64
	for _, e := range entries {
		fmt.Printf("%s\t%d bytes\t%s\n", e.URL, e.SizeBytes, e.FetchedAt.Format("2006-01-02 15:04:05"))
		total += e.SizeBytes
	}
	fmt.Printf("%d documents, %d bytes\n", len(entries), total)
	return nil
}

// CachePurgeCmd removes all cached documents.
type CachePurgeCmd struct {
	SourceFlags
}

func (c *CachePurgeCmd) Run() error {
	setupLogging()

	svc, err := source.NewService(c.sourceConfig())
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Purge(); err != nil {
		return err
	}
	fmt.Println("cache purged")
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("cedar version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("cedar"),
		kong.Description("CedarNotes - original-language quote resolution for translation notes"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
