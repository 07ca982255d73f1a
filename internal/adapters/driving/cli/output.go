package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

// resolveFormat validates the --format flag. An empty format means table
// on a terminal and JSON otherwise.
func resolveFormat(cmd *cobra.Command, format string) (string, error) {
	switch format {
	case formatJSON, formatYAML, formatTable:
		return format, nil
	case "":
		if isTerminal(cmd.OutOrStdout()) {
			return formatTable, nil
		}
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, yaml or table)", format)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeStructured prints v as JSON or YAML. YAML keys follow the JSON
// field names.
func writeStructured(cmd *cobra.Command, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if format != formatYAML {
		cmd.Println(string(data))
		return nil
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to convert output: %w", err)
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Print(string(out))
	return nil
}
