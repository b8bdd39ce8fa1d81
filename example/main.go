// FILE: lixenwraith/ini/example/main.go
package main

import (
	"container/list"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/lixenwraith/ini"
)

// AppConfig is the typed view of the example configuration.
type AppConfig struct {
	Name   string `ini:"name"`
	Debug  bool   `ini:"debug"`
	Server struct {
		Host    string        `ini:"host"`
		Port    int           `ini:"port"`
		Timeout time.Duration `ini:"timeout"`
	} `ini:"server"`
	Database struct {
		URL      string   `ini:"url"`
		MaxConns int      `ini:"max_conns"`
		Replicas []string `ini:"replicas"`
	} `ini:"database"`
}

const configFilePath = "example.ini"

func main() {
	// =========================================================================
	// PART 1: BUILDING A DOCUMENT BY HAND
	// Typed values are encoded into text as they are stored.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 1: Writing a document...")

	defer func() {
		log.Println("---")
		log.Println("🧹 Cleaning up...")
		os.Remove(configFilePath)
	}()

	doc := ini.New()
	must(doc.Get("name").Set("example app"))
	must(doc.Get("debug").Set(false))

	server := doc.Get("server")
	must(server.MustKey("host").Set("localhost"))
	must(server.MustKey("port").Set(8080))
	must(server.MustKey("timeout").Set("30s"))

	replicas := list.New()
	replicas.PushBack("db-2.internal")
	replicas.PushBack("db-3.internal")

	database := doc.Get("database")
	must(database.MustKey("url").Set("postgres://db-1.internal/app"))
	must(database.MustKey("max_conns").Set(uint16(25)))
	must(ini.PutSeq(database.MustKey("replicas"), func(yield func(string) bool) {
		for e := replicas.Front(); e != nil; e = e.Next() {
			if !yield(e.Value.(string)) {
				return
			}
		}
	}))

	if err := doc.SaveFile(configFilePath, ini.DefaultSaveOptions()); err != nil {
		log.Fatalf("❌ Failed to save: %v", err)
	}
	log.Printf("✅ Saved %d keys to %s:\n%s", doc.Count(), configFilePath, doc)

	// =========================================================================
	// PART 2: THE BUILDER
	// Defaults < file < command line. Validators run last.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 2: Building with defaults, file and overrides...")

	defaults := &AppConfig{Name: "unnamed"}
	defaults.Server.Host = "0.0.0.0"
	defaults.Server.Port = 80
	defaults.Database.MaxConns = 10

	args := []string{"--server.port=9090", "--debug"}
	log.Printf("   (Command line: %s)", strings.Join(args, " "))

	var cfg AppConfig
	err := ini.NewBuilder().
		WithDefaults(defaults).
		WithFile(configFilePath).
		WithArgs(args).
		WithValidator(func(d *ini.Document) error {
			if port := d.Get("server").MustKey("port").Int(0); port < 1 || port > 65535 {
				return fmt.Errorf("port %d out of range", port)
			}
			return nil
		}).
		BuildAndScan(&cfg)
	if err != nil {
		log.Fatalf("❌ Build failed: %v", err)
	}

	log.Printf("   Name: %s, Debug: %v", cfg.Name, cfg.Debug)
	log.Printf("   Server: %s:%d (timeout %s)", cfg.Server.Host, cfg.Server.Port, cfg.Server.Timeout)
	log.Printf("   Database: %s (max_conns=%d, replicas=%v)", cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.Replicas)

	// =========================================================================
	// PART 3: TOLERANT READING
	// Malformed values never fail; they decode to zero values or defaults.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 3: Reading hand-edited text...")

	edited, err := ini.LoadString(`; edited by hand
retries=3 attempts
verbose=yes
missing=
[limits]
ratio=0.75
`)
	if err != nil {
		log.Fatalf("❌ Failed to parse: %v", err)
	}
	log.Printf("   retries=%d (number prefix), verbose=%v (only \"true\" is true)",
		edited.Get("retries").Int(0), edited.Get("verbose").Bool(false))
	log.Printf("   missing=%d (default used), ratio=%g",
		edited.Get("missing").Int(5), edited.Get("limits").MustKey("ratio").Float64(0))

	if _, err := edited.Get("retries").Key("x"); errors.Is(err, ini.ErrKindConflict) {
		log.Printf("   retries cannot become a section: %v", err)
	}

	// =========================================================================
	// PART 4: OTHER FORMATS
	// The same document exported as YAML and read through koanf.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 4: Converting and sharing...")

	var yamlOut strings.Builder
	if err := doc.Export(&yamlOut, ini.FormatYAML); err != nil {
		log.Fatalf("❌ Export failed: %v", err)
	}
	log.Printf("   As YAML:\n%s", yamlOut.String())

	k := koanf.New(".")
	if err := k.Load(file.Provider(configFilePath), ini.Parser()); err != nil {
		log.Fatalf("❌ koanf load failed: %v", err)
	}
	log.Printf("   koanf sees database.max_conns=%d, server.host=%s",
		k.Int("database.max_conns"), k.String("server.host"))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
