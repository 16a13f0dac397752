package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/guardstation/internal/content"
	"github.com/guardstation/internal/db"
	"github.com/guardstation/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the published site content to stdout or a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeDB, err := openStore()
		if err != nil {
			return err
		}
		defer closeDB()

		doc, err := store.Load(cmd.Context())
		if err != nil {
			return err
		}
		raw, err := encodeDocument(doc, exportFormat)
		if err != nil {
			return err
		}

		if exportOut == "" || exportOut == "-" {
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		}
		if err := os.WriteFile(exportOut, raw, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOut, err)
		}
		logger.Info("exported site content", zap.String("file", exportOut), zap.Int("pages", len(doc.Pages)))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the published site content with a JSON or YAML document",
	Long: `Reads a document in the export format and publishes it as-is.
Files ending in .yaml or .yml are parsed as YAML; "-" reads JSON from stdin.
Existing drafts are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		doc, err := decodeDocument(raw, args[0])
		if err != nil {
			return err
		}

		store, closeDB, err := openStore()
		if err != nil {
			return err
		}
		defer closeDB()

		if err := store.Save(cmd.Context(), doc); err != nil {
			return err
		}
		logger.Info("imported site content", zap.String("file", args[0]), zap.Int("pages", len(doc.Pages)))
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop the published site content so the built-in default is served",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeDB, err := openStore()
		if err != nil {
			return err
		}
		defer closeDB()

		if err := store.Reset(cmd.Context()); err != nil {
			return err
		}
		logger.Info("site content reset to default")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json or yaml")
}

func openStore() (*service.ContentStore, func(), error) {
	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return service.NewContentStore(gdb, logger), closeDB, nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return raw, nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func decodeDocument(raw []byte, path string) (*content.SiteContent, error) {
	if isYAMLPath(path) {
		return content.DecodeYAML(raw)
	}
	return content.Decode(raw)
}

func encodeDocument(doc *content.SiteContent, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		raw, err := content.Encode(doc)
		if err != nil {
			return nil, err
		}
		var out bytes.Buffer
		if err := json.Indent(&out, raw, "", "  "); err != nil {
			return nil, err
		}
		out.WriteByte('\n')
		return out.Bytes(), nil
	case "yaml", "yml":
		return content.EncodeYAML(doc)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
